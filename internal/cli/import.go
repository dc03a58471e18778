package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spektr-org/trendboard/dataset"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import a posts CSV into a SQLite or PostgreSQL table",
		Long: `Validate a posts CSV and write it into a table, creating the table if
needed. Rows are inserted in one transaction; any bad row aborts the import.

  trendboard import data/sample_posts.csv --driver sqlite --dsn posts.db`,
		Args: cobra.ExactArgs(1),
		Run:  runImport,
	}

	cmd.Flags().String("driver", dataset.DriverSQLite, "Target driver: sqlite or postgres")
	cmd.Flags().String("dsn", "", "SQLite file path or PostgreSQL connection string (required)")
	cmd.Flags().String("table", dataset.DefaultTable, "Target table")
	_ = cmd.MarkFlagRequired("dsn")

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	driver, _ := cmd.Flags().GetString("driver")
	dsn, _ := cmd.Flags().GetString("dsn")
	table, _ := cmd.Flags().GetString("table")

	n, err := importCSV(cmd.Context(), args[0], driver, dsn, table)
	if err != nil {
		exitErr("import", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d posts into %s:%s\n", n, driver, table)
}

// importCSV loads path through the same validation as startup, then writes
// every post into table.
func importCSV(ctx context.Context, path, driver, dsn, table string) (int, error) {
	ds, err := dataset.Load(ctx, dataset.FileSource{Path: path})
	if err != nil {
		return 0, err
	}

	db, err := dataset.OpenDB(ctx, driver, dsn)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	if err := dataset.CreateTable(ctx, db, driver, table); err != nil {
		return 0, err
	}
	return dataset.InsertPosts(ctx, db, driver, table, ds.Posts())
}
