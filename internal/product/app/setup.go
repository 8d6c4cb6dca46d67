// Package app contains the application setup for the catalog service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/gocatalog/internal/config"
	"github.com/abgdnv/gocatalog/internal/platform/server"
	"github.com/abgdnv/gocatalog/internal/platform/web"
	"github.com/abgdnv/gocatalog/internal/product/service"
	"github.com/abgdnv/gocatalog/internal/product/store"
	"github.com/abgdnv/gocatalog/internal/product/transport/rest"
	"github.com/abgdnv/gocatalog/internal/ui"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthServiceName is the service name reported by the gRPC health endpoint.
const HealthServiceName = "catalog"

type Dependencies struct {
	ProductService service.ProductService
	Store          store.ProductStore
	Logger         *slog.Logger
	Registry       *prometheus.Registry
	Metrics        *web.Metrics
	Health         *health.Server
}

// SetupDependencies builds the catalog store, optionally seeded, and everything that observes it.
func SetupDependencies(cfg *config.Config, logger *slog.Logger) *Dependencies {
	var seed []store.Product
	if cfg.Catalog.Seed {
		seed = store.SampleProducts()
	}
	productStore := store.NewInMemoryStore(seed...)
	logger.Info("Catalog store initialized", "products", productStore.Count())

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "catalog_products",
			Help: "Number of products currently in the catalog",
		}, func() float64 {
			return float64(productStore.Count())
		}),
	)
	var metrics *web.Metrics
	if cfg.Metrics.Enabled {
		metrics = web.NewMetrics(registry)
	}

	hs := health.NewServer()
	hs.SetServingStatus(HealthServiceName, healthpb.HealthCheckResponse_SERVING)

	return &Dependencies{
		ProductService: service.NewService(productStore),
		Store:          productStore,
		Logger:         logger,
		Registry:       registry,
		Metrics:        metrics,
		Health:         hs,
	}
}

// SetupHttpHandler initializes the router and routes for the catalog application.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := server.NewChiRouter(deps.Logger, server.RouterConfig{
		MaxBodyBytes: cfg.HTTPServer.MaxBodyBytes,
		Metrics:      deps.Metrics,
	})
	wireRoutes(mux, deps, cfg)
	return mux
}

// wireRoutes sets up the HTTP routes for the catalog application.
func wireRoutes(mux *chi.Mux, deps *Dependencies, cfg *config.Config) {
	productHandler := rest.NewHandler(deps.ProductService, deps.Logger)
	productHandler.RegisterRoutes(mux)

	page := ui.Handler()
	mux.Get("/", page.ServeHTTP)
	mux.Get("/app.js", page.ServeHTTP)

	if cfg.Metrics.Enabled {
		mux.Handle(cfg.Metrics.Path, promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}
}

// SetupHttpServer creates and configures an HTTP server for the catalog application.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {

	mux := SetupHttpHandler(deps, cfg)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}

// SetupGrpcServer initializes the gRPC server exposing the health service.
func SetupGrpcServer(deps *Dependencies, reflectionEnabled bool) *grpc.Server {
	return server.NewGRPCServer(reflectionEnabled, server.HealthRegistration(deps.Health))
}
