// Package server exposes the estimators over a JSON HTTP API.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ontax-dev/ontax/internal/incometax"
	"github.com/ontax-dev/ontax/internal/propertytax"
	"github.com/ontax-dev/ontax/internal/refstore"
	"github.com/ontax-dev/ontax/internal/report"
)

// RequestIDHeader carries the per-request ID.
const RequestIDHeader = "X-Request-ID"

// Options configure a Server.
type Options struct {
	Defaults propertytax.Options // applied when a request omits year or include_education
	Version  string
	Release  bool // gin release mode
}

// Server is the HTTP API. Reference tables are loaded before construction
// and shared read-only between requests.
type Server struct {
	router    *gin.Engine
	tables    *refstore.Tables
	estimator *propertytax.Estimator
	income    incometax.Calculator
	renderers *report.Registry
	opts      Options
}

// New creates a Server over the given tables.
func New(tables *refstore.Tables, opts Options) *Server {
	if opts.Release {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router:    gin.New(),
		tables:    tables,
		estimator: propertytax.NewEstimator(tables.Assessments, tables.Rates),
		income:    incometax.Default(),
		renderers: report.DefaultRegistry(),
		opts:      opts,
	}
	s.router.Use(gin.Recovery(), requestLogger())
	s.setupRoutes()
	return s
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until the listener fails.
func (s *Server) Run(addr string) error {
	slog.Info("serving", "addr", addr, "assessments", s.tables.Assessments.Len(), "rates", s.tables.Rates.Len())
	return s.router.Run(addr)
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	api.GET("/status", s.getStatus)
	api.POST("/property/estimate", s.estimateProperty)
	api.POST("/property/report", s.reportProperty)
	api.POST("/income/estimate", s.estimateIncome)
	api.POST("/income/report", s.reportIncome)
}

// requestLogger assigns a request ID and logs each request once it completes.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)

		start := time.Now()
		c.Next()

		slog.Info("request",
			"request_id", id,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
