package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mrops-br/product-ms/internal/infrastructure/config"
	"github.com/mrops-br/product-ms/internal/infrastructure/http/handler"
	"github.com/mrops-br/product-ms/internal/infrastructure/http/middleware"
	"github.com/mrops-br/product-ms/internal/infrastructure/telemetry"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

const meterName = "product-ms"

// Server represents the HTTP server
type Server struct {
	router    *chi.Mux
	config    *config.ServerConfig
	handler   *handler.ProductHandler
	logger    *slog.Logger
	telemetry *telemetry.Telemetry
	server    *http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	cfg *config.ServerConfig,
	handler *handler.ProductHandler,
	logger *slog.Logger,
	telem *telemetry.Telemetry,
) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		config:    cfg,
		handler:   handler,
		logger:    logger,
		telemetry: telem,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:           s.instrument(s.router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// setupMiddleware configures the middleware chain
func (s *Server) setupMiddleware() {
	meter := s.telemetry.MeterProvider.Meter(meterName)

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(middleware.StructuredLogger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.ActiveRequestsMiddleware(meter))
	s.router.Use(middleware.DurationMillisecondsMiddleware(meter))
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.Group(func(r chi.Router) {
		r.Use(middleware.HTTPRouteContext())

		r.Route("/products", func(r chi.Router) {
			r.Post("/", s.handler.CreateProduct)
			r.Get("/", s.handler.ListProducts)
			r.Get("/name/{name}", s.handler.GetProductByName)
			r.Get("/category/{category}", s.handler.GetProductsByCategory)
			r.Get("/{id}", s.handler.GetProduct)
			r.Delete("/{id}", s.handler.DeleteProduct)
			r.Put("/{id}/stock", s.handler.UpdateStock)
			r.Put("/{id}/stock/reduce", s.handler.ReduceStock)
		})

		r.Route("/sellers/{sellerId}", func(r chi.Router) {
			r.Delete("/products", s.handler.DeleteSellerProducts)
			r.Delete("/deactivated/products", s.handler.DeleteDeactivatedSellerProducts)
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.Post("/", s.handler.AddSubscription)
			r.Get("/{buyerId}/{prodId}", s.handler.GetSubscription)
		})
	})

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	s.router.Get("/metrics", promhttp.HandlerFor(s.telemetry.Registry, promhttp.HandlerOpts{}).ServeHTTP)
}

// instrument wraps the router with otelhttp for HTTP traces and metrics
func (s *Server) instrument(h http.Handler) http.Handler {
	return otelhttp.NewHandler(h, "http-server",
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return fmt.Sprintf("%s %s", r.Method, r.URL.Path)
		}),
		otelhttp.WithTracerProvider(s.telemetry.TracerProvider),
		otelhttp.WithMeterProvider(s.telemetry.MeterProvider),
		otelhttp.WithMetricAttributesFn(func(r *http.Request) []attribute.KeyValue {
			return []attribute.KeyValue{
				attribute.String("http.route", middleware.RoutePattern(r)),
			}
		}),
	)
}

// Handler returns the instrumented router
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		slog.String("address", s.server.Addr),
	)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Stopping HTTP server")
	return s.server.Shutdown(ctx)
}
