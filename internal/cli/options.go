package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spektr-org/trendboard/dataset"
)

func init() {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "List the filter options of the dataset",
		Args:  cobra.NoArgs,
		Run:   runOptions,
	}

	cmd.Flags().StringP("format", "f", formatText, "Output format: json, pretty or text")

	RootCmd.AddCommand(cmd)
}

func runOptions(cmd *cobra.Command, args []string) {
	format, _ := cmd.Flags().GetString("format")

	cfg := loadConfig()
	logger := newLogger(cfg)
	ds, err := openDataset(cmd.Context(), cfg.Dataset, logger)
	if err != nil {
		exitErr("load dataset", err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case formatText:
		err = writeOptionsText(out, ds.FilterOptions())
	case formatJSON, formatPretty:
		err = writeJSON(out, ds.FilterOptions(), format)
	default:
		err = fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		exitErr("options", err)
	}
}

func writeOptionsText(w io.Writer, opts []dataset.FilterOption) error {
	for _, o := range opts {
		if _, err := fmt.Fprintf(w, "%s (%d): %s\n", o.Label, len(o.Values), strings.Join(o.Values, ", ")); err != nil {
			return err
		}
	}
	return nil
}
