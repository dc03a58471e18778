package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spektr-org/trendboard/dataset"
	"github.com/spektr-org/trendboard/engine"
)

// filter flag name → filterable column
var filterFlags = []struct {
	flag   string
	column string
}{
	{"platform", engine.DimPlatform},
	{"region", engine.DimRegion},
	{"content-type", engine.DimContentType},
	{"engagement-level", engine.DimEngagementLevel},
}

func init() {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the dashboard for a filter selection",
		Long: `Run one dashboard pass and print the KPIs and all five views.

A filter flag that is not given selects every value of its column. Flags
may be repeated or comma-separated:

  trendboard summary --platform TikTok,YouTube --region USA --format text`,
		Args: cobra.NoArgs,
		Run:  runSummary,
	}

	for _, f := range filterFlags {
		cmd.Flags().StringSlice(f.flag, nil, engine.LabelForDimension(f.column)+" values to include (default: all)")
	}
	cmd.Flags().Int("top", 0, "Rows in the top hashtags view (default: dashboard.top_hashtags)")
	cmd.Flags().StringP("format", "f", formatText, "Output format: json, pretty, text or csv")
	cmd.Flags().StringP("out", "o", "", "Write output to file instead of stdout")

	RootCmd.AddCommand(cmd)
}

func runSummary(cmd *cobra.Command, args []string) {
	format, _ := cmd.Flags().GetString("format")
	if !validFormat(format) {
		exitErr("summary", fmt.Errorf("unknown format %q", format))
	}
	top, _ := cmd.Flags().GetInt("top")

	cfg := loadConfig()
	if top <= 0 {
		top = cfg.Dashboard.TopHashtags
	}
	logger := newLogger(cfg)

	ds, err := openDataset(cmd.Context(), cfg.Dataset, logger)
	if err != nil {
		exitErr("load dataset", err)
	}

	spec := filterSpecFromFlags(cmd.Flags(), ds)
	payload := ds.Build(spec, engine.WithTopHashtags(top), engine.WithLogger(logger))

	w, closeOut := outputWriter(cmd)
	defer closeOut()
	if err := writePayload(w, payload, format); err != nil {
		exitErr("write output", err)
	}
}

// filterSpecFromFlags starts from the default selection and replaces each
// column whose flag was set.
func filterSpecFromFlags(flags *pflag.FlagSet, ds *dataset.Dataset) engine.FilterSpec {
	spec := ds.DefaultFilterSpec()
	for _, f := range filterFlags {
		if !flags.Changed(f.flag) {
			continue
		}
		values, _ := flags.GetStringSlice(f.flag)
		switch f.column {
		case engine.DimPlatform:
			spec.Platform = values
		case engine.DimRegion:
			spec.Region = values
		case engine.DimContentType:
			spec.ContentType = values
		case engine.DimEngagementLevel:
			spec.EngagementLevel = values
		}
	}
	return spec
}

func outputWriter(cmd *cobra.Command) (io.Writer, func()) {
	path, _ := cmd.Flags().GetString("out")
	if path == "" {
		return cmd.OutOrStdout(), func() {}
	}
	f, err := os.Create(path)
	if err != nil {
		exitErr("create output file", err)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			exitErr("close output file", err)
		}
	}
}
