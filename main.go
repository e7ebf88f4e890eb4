package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/mrops-br/product-ms/internal/app/service"
	"github.com/mrops-br/product-ms/internal/domain"
	"github.com/mrops-br/product-ms/internal/infrastructure/config"
	"github.com/mrops-br/product-ms/internal/infrastructure/http"
	"github.com/mrops-br/product-ms/internal/infrastructure/http/handler"
	"github.com/mrops-br/product-ms/internal/infrastructure/repository/gormdb"
	"github.com/mrops-br/product-ms/internal/infrastructure/repository/memory"
	"github.com/mrops-br/product-ms/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
)

func main() {
	cfg := config.LoadConfig()

	telem, err := newTelemetry(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}

	tracer := telem.TracerProvider.Tracer("product-ms")
	meter := telem.MeterProvider.Meter("product-ms")
	logger := telem.Logger

	logger.Info("Starting product-ms")

	store, err := newStore(cfg, tracer, logger)
	if err != nil {
		os.Exit(abortStartup(context.Background(), logger, "storage", err, telem.Shutdown))
	}

	productService := service.NewProductService(store.products, store.subscriptions, store.sequence, tracer, meter, logger)
	productHandler := handler.NewProductHandler(productService, logger)
	server := http.NewServer(&cfg.Server, productHandler, logger, telem)

	go func() {
		if err := server.Start(); err != nil {
			logger.Error("Server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.Server.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"product-ms": orderedShutdown(logger,
				shutdownStep{name: "http-server", stop: server.Shutdown},
				shutdownStep{name: "storage", stop: store.shutdown},
				shutdownStep{name: "telemetry", stop: telem.Shutdown},
			),
		},
	)

	exitCode := <-wait
	logger.Info("Server stopped", slog.Int("exit_code", exitCode))
	os.Exit(exitCode)
}

func newTelemetry(cfg *config.Config) (*telemetry.Telemetry, error) {
	if !cfg.OTLP.ExportEnabled {
		return telemetry.NewNoOpTelemetry(&cfg.OTLP)
	}
	return telemetry.NewTelemetry(&cfg.OTLP)
}

type storage struct {
	products      domain.ProductRepository
	subscriptions domain.SubscriptionRepository
	sequence      domain.ProductSequence
	shutdown      func(ctx context.Context) error
}

func newStore(cfg *config.Config, tracer trace.Tracer, logger *slog.Logger) (*storage, error) {
	if cfg.Database.Driver == "memory" {
		return &storage{
			products:      memory.NewProductRepository(tracer, logger),
			subscriptions: memory.NewSubscriptionRepository(tracer, logger),
			sequence:      memory.NewProductSequence(),
			shutdown:      func(context.Context) error { return nil },
		}, nil
	}

	db, err := gormdb.Open(cfg.Database.Driver, cfg.Database.DSN, logger)
	if err != nil {
		return nil, err
	}

	return &storage{
		products:      gormdb.NewProductRepository(db, tracer),
		subscriptions: gormdb.NewSubscriptionRepository(db, tracer),
		sequence:      gormdb.NewProductSequence(db),
		shutdown:      func(context.Context) error { return gormdb.Close(db) },
	}, nil
}
