// Package config loads trendboard settings: built-in defaults, then an
// optional YAML file, then TRENDBOARD_* environment overrides. The result
// is validated before use.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Dataset drivers.
const (
	DriverCSV      = "csv"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TRENDBOARD_"

// Config is the full application configuration.
type Config struct {
	Dataset   DatasetConfig   `yaml:"dataset"`
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

// DatasetConfig selects where posts are loaded from. Path is the CSV file
// or SQLite database; DSN is the PostgreSQL connection string.
type DatasetConfig struct {
	Driver string `yaml:"driver" validate:"oneof=csv sqlite postgres"`
	Path   string `yaml:"path" validate:"required_unless=Driver postgres"`
	DSN    string `yaml:"dsn" validate:"required_if=Driver postgres"`
	Table  string `yaml:"table" validate:"omitempty,max=63"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr" validate:"required,hostname_port"`
	ReadTimeout  time.Duration `yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"gt=0"`
	Mode         string        `yaml:"mode" validate:"oneof=debug release test"` // gin mode
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

type DashboardConfig struct {
	TopHashtags int `yaml:"top_hashtags" validate:"min=1,max=100"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Dataset: DatasetConfig{
			Driver: DriverCSV,
			Path:   "data/sample_posts.csv",
			Table:  "posts",
		},
		Server: ServerConfig{
			Addr:         ":8050",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			Mode:         "release",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Dashboard: DashboardConfig{
			TopHashtags: 10,
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := loadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("load config env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func loadEnv(cfg *Config) error {
	strs := map[string]*string{
		"DATASET_DRIVER": &cfg.Dataset.Driver,
		"DATASET_PATH":   &cfg.Dataset.Path,
		"DATASET_DSN":    &cfg.Dataset.DSN,
		"DATASET_TABLE":  &cfg.Dataset.Table,
		"SERVER_ADDR":    &cfg.Server.Addr,
		"SERVER_MODE":    &cfg.Server.Mode,
		"LOG_LEVEL":      &cfg.Log.Level,
		"LOG_FORMAT":     &cfg.Log.Format,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"SERVER_READ_TIMEOUT":  &cfg.Server.ReadTimeout,
		"SERVER_WRITE_TIMEOUT": &cfg.Server.WriteTimeout,
	}
	for name, dst := range durations {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
			}
			*dst = d
		}
	}

	if v, ok := os.LookupEnv(EnvPrefix + "TOP_HASHTAGS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sTOP_HASHTAGS: %w", EnvPrefix, err)
		}
		cfg.Dashboard.TopHashtags = n
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report yaml keys rather than Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks every field constraint and reports all violations.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s (got %v)", field, fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s (got %v)", field, fe.Tag(), fe.Value()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
