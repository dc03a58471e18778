// Package cli implements the trendboard commands.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/spektr-org/trendboard/config"
	"github.com/spektr-org/trendboard/dataset"
	"github.com/spektr-org/trendboard/logging"
)

const version = "0.3.0"

var (
	configPath string
	dataPath   string
	logLevel   string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:     "trendboard",
	Short:   "Social media trends dashboard",
	Long:    "Loads a posts dataset once and serves filterable engagement KPIs and charts over HTTP or on the command line.",
	Version: version,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (default: built-in settings plus $TRENDBOARD_* overrides)")
	RootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Dataset path, overrides dataset.path")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level, overrides log.level")
}

// loadConfig resolves the configuration and applies command-line overrides.
func loadConfig() config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitErr("config", err)
	}
	if dataPath != "" {
		cfg.Dataset.Path = dataPath
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		exitErr("config", err)
	}
	return cfg
}

func newLogger(cfg config.Config) *slog.Logger {
	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		exitErr("logger", err)
	}
	slog.SetDefault(logger)
	return logger
}

// openDataset loads the configured dataset. SQL connections are closed
// once the posts are in memory.
func openDataset(ctx context.Context, cfg config.DatasetConfig, logger *slog.Logger) (*dataset.Dataset, error) {
	var src dataset.Source
	switch cfg.Driver {
	case config.DriverCSV:
		src = dataset.FileSource{Path: cfg.Path}
	case config.DriverSQLite, config.DriverPostgres:
		dsn := cfg.Path
		if cfg.Driver == config.DriverPostgres {
			dsn = cfg.DSN
		}
		db, err := dataset.OpenDB(ctx, cfg.Driver, dsn)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		src = dataset.SQLSource{DB: db, Driver: cfg.Driver, Table: cfg.Table}
	default:
		return nil, fmt.Errorf("unsupported dataset driver %q", cfg.Driver)
	}

	ds, err := dataset.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	logger.Info("dataset loaded", "source", ds.Source(), "posts", ds.Len())
	return ds, nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
