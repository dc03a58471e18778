// Package server exposes the dashboard pipeline over HTTP with gin.
//
// Routes:
//
//	GET  /healthz                 liveness and dataset size
//	GET  /metrics                 Prometheus exposition
//	GET  /api/options             filter option lists and default selection
//	GET  /api/dashboard           filters as repeated query params
//	POST /api/dashboard           filters as a JSON body
//	GET  /api/dashboard/default   every option selected
//
// The dataset is loaded once before New and only read afterwards, so
// handlers run concurrently without locking.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spektr-org/trendboard/dataset"
	"github.com/spektr-org/trendboard/engine"
)

// Config holds the HTTP settings the server needs.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Mode         string // gin mode; empty leaves the current mode
	TopHashtags  int
}

// Server serves one immutable dataset.
type Server struct {
	cfg     Config
	ds      *dataset.Dataset
	logger  *slog.Logger
	metrics *Metrics
	router  *gin.Engine
}

// New builds a server and its routes. Collectors are registered with reg,
// which also backs /metrics.
func New(cfg Config, ds *dataset.Dataset, logger *slog.Logger, reg *prometheus.Registry) *Server {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:     cfg,
		ds:      ds,
		logger:  logger,
		metrics: NewMetrics(reg),
	}
	s.metrics.SetDatasetRows(ds.Len())

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(logger, s.metrics))

	r.GET("/healthz", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	api := r.Group("/api")
	api.GET("/options", s.options)
	api.GET("/dashboard", s.dashboardQuery)
	api.POST("/dashboard", s.dashboardJSON)
	api.GET("/dashboard/default", s.dashboardDefault)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics { return s.metrics }

// HTTPServer wraps the router in an *http.Server with the configured
// address and timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
	}
}

// build runs one pipeline pass with the request-scoped logger.
func (s *Server) build(c *gin.Context, spec engine.FilterSpec, topHashtags int) *engine.DashboardPayload {
	if topHashtags <= 0 {
		topHashtags = s.cfg.TopHashtags
	}
	return s.ds.Build(spec,
		engine.WithTopHashtags(topHashtags),
		engine.WithLogger(s.logger.With("request_id", RequestIDFrom(c))),
		engine.WithObserver(s.metrics),
	)
}
