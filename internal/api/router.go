package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"bank-records/internal/api/handler"
	mw "bank-records/internal/api/middleware"
	"bank-records/internal/config"

	_ "bank-records/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const requestTimeout = 60 * time.Second

// DetailsRoutes is implemented by handler.DetailsHandler for every product kind.
type DetailsRoutes interface {
	CreateDetails(w http.ResponseWriter, r *http.Request)
	FetchDetails(w http.ResponseWriter, r *http.Request)
	UpdateDetails(w http.ResponseWriter, r *http.Request)
	DeleteDetails(w http.ResponseWriter, r *http.Request)
}

// Metrics is where the HTTP middleware registers its collectors and where /metrics reads
// from.
type Metrics struct {
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

func DefaultMetrics() Metrics {
	return Metrics{Registerer: prometheus.DefaultRegisterer, Gatherer: prometheus.DefaultGatherer}
}

// SetupRouter builds the HTTP surface. ctx bounds background work such as the rate
// limiter's janitor.
func SetupRouter(ctx context.Context, details DetailsRoutes, info *handler.InfoHandler, cfg *config.Config, metrics Metrics, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(ctx, router, cfg, metrics, logger)
	setupMetricsEndpoint(router, cfg, metrics, logger)
	setupDetailsRoutes(router, details, info)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)

	return router
}

func setupMiddleware(ctx context.Context, router *chi.Mux, cfg *config.Config, metrics Metrics, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(requestTimeout))
	router.Use(mw.NewRateLimiterMiddleware(ctx, cfg.Server.RateLimit, logger).Middleware)
	router.Use(mw.NewHTTPMetrics(metrics.Registerer).Middleware)
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, metrics Metrics, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.HandlerFor(metrics.Gatherer, promhttp.HandlerOpts{}))
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupDetailsRoutes(router chi.Router, details DetailsRoutes, info *handler.InfoHandler) {
	router.Route("/api", func(r chi.Router) {
		r.Post("/create", details.CreateDetails)
		r.Get("/fetch", details.FetchDetails)
		r.Put("/update", details.UpdateDetails)
		r.Delete("/delete", details.DeleteDetails)

		r.Get("/build-info", info.BuildInfo)
		r.Get("/runtime-version", info.RuntimeVersion)
		r.Get("/contact-info", info.ContactInfo)
	})
}
