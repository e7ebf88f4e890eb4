package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	gfshutdown "github.com/gelmium/graceful-shutdown"
)

// shutdownStep is one resource released at exit
type shutdownStep struct {
	name string
	stop func(ctx context.Context) error
}

// orderedShutdown releases steps one after another in the given order.
// gfshutdown runs map entries concurrently, so dependent resources must share one operation.
// A failing step is logged and the remaining steps still run.
func orderedShutdown(logger *slog.Logger, steps ...shutdownStep) gfshutdown.Operation {
	return func(ctx context.Context) error {
		var errs []error
		for _, step := range steps {
			logger.Info("Stopping", slog.String("component", step.name))
			if err := step.stop(ctx); err != nil {
				logger.Error("Failed to stop",
					slog.String("component", step.name),
					slog.String("error", err.Error()),
				)
				errs = append(errs, fmt.Errorf("%s: %w", step.name, err))
			}
		}
		return errors.Join(errs...)
	}
}

// abortStartup reports a failed startup step and flushes what was already started.
// It returns the process exit code.
func abortStartup(ctx context.Context, logger *slog.Logger, component string, cause error, flush func(ctx context.Context) error) int {
	logger.ErrorContext(ctx, "Failed to initialize",
		slog.String("component", component),
		slog.String("error", cause.Error()),
	)
	if err := flush(ctx); err != nil {
		logger.ErrorContext(ctx, "Failed to flush telemetry", slog.String("error", err.Error()))
	}
	return 1
}
