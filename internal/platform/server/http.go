// Package server builds the HTTP and gRPC servers the catalog runs.
package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/abgdnv/gocatalog/internal/platform/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// HTTPConfig has the configuration for the HTTP server.
type HTTPConfig struct {
	Port           int
	MaxHeaderBytes int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	ReadHeader     time.Duration
}

// RouterConfig tunes the middleware stack of NewChiRouter.
type RouterConfig struct {
	// MaxBodyBytes limits request bodies, 0 disables the limit.
	MaxBodyBytes int64
	// Metrics is optional.
	Metrics *web.Metrics
}

// NewHTTPServer creates and configures a new HTTP server instance.
func NewHTTPServer(cfg HTTPConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ReadHeaderTimeout: cfg.ReadHeader,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}
}

// NewChiRouter creates a new Chi router with a set of
// middleware for request ID injection, structured logging, recovery, CORS and metrics.
// Unknown routes and methods are answered with a JSON error body.
func NewChiRouter(logger *slog.Logger, cfg RouterConfig) *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(web.RequestIDInjector)
	mux.Use(web.StructuredLogger(logger))
	if cfg.Metrics != nil {
		mux.Use(cfg.Metrics.Middleware)
	}
	mux.Use(web.Recoverer(logger))
	mux.Use(web.CORS)
	if cfg.MaxBodyBytes > 0 {
		mux.Use(middleware.RequestSize(cfg.MaxBodyBytes))
	}

	mux.NotFound(web.NotFound(logger))
	mux.MethodNotAllowed(web.MethodNotAllowed(logger))
	return mux
}
