package engine

import (
	"log/slog"
	"time"
)

// ============================================================================
// ENGINE OPTIONS — Functional options for Build()
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

// Observer receives one notification per completed pipeline pass.
// Implementations must be safe for concurrent use.
type Observer interface {
	ObservePipeline(total, filtered int, empty bool, elapsed time.Duration)
}

type config struct {
	TopHashtags int
	Logger      *slog.Logger
	Observer    Observer
}

// WithTopHashtags sets the row limit of the top hashtags view.
func WithTopHashtags(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.TopHashtags = n
		}
	}
}

// WithLogger sets the logger used for pipeline diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithObserver registers a pipeline observer (metrics).
func WithObserver(o Observer) Option {
	return func(c *config) {
		c.Observer = o
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		TopHashtags: DefaultTopHashtags,
		Logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
