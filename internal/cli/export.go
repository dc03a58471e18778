package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/spektr-org/trendboard/config"
	"github.com/spektr-org/trendboard/dataset"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the configured dataset as a canonical posts CSV",
		Long: `Load the configured dataset with the usual validation and write it back
out with the canonical header. Together with import this moves a table
between CSV, SQLite and PostgreSQL:

  trendboard export --config sqlite.yaml -o posts.csv`,
		Args: cobra.NoArgs,
		Run:  runExport,
	}

	cmd.Flags().StringP("out", "o", "", "Write output to file instead of stdout")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg)

	w, closeOut := outputWriter(cmd)
	defer closeOut()
	n, err := exportCSV(cmd.Context(), cfg.Dataset, logger, w)
	if err != nil {
		exitErr("export", err)
	}
	logger.Info("dataset exported", "posts", n)
}

// exportCSV writes every post of the configured dataset to w in source
// order and returns the number written.
func exportCSV(ctx context.Context, cfg config.DatasetConfig, logger *slog.Logger, w io.Writer) (int, error) {
	ds, err := openDataset(ctx, cfg, logger)
	if err != nil {
		return 0, err
	}
	if err := dataset.WriteCSV(w, ds.Posts()); err != nil {
		return 0, err
	}
	return ds.Len(), nil
}
