package telemetry

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mrops-br/product-ms/internal/infrastructure/config"
	"go.opentelemetry.io/otel/trace"
)

type routeKey struct{}

// WithHTTPRoute stores the matched chi pattern for request-scoped log lines
func WithHTTPRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, routeKey{}, route)
}

// HTTPRouteFromContext returns the pattern stored by WithHTTPRoute, or ""
func HTTPRouteFromContext(ctx context.Context) string {
	route, _ := ctx.Value(routeKey{}).(string)
	return route
}

// correlatingHandler tags catalog log records with the active span and route,
// so a log line can be joined to its trace in the backend.
type correlatingHandler struct {
	slog.Handler
}

func (h correlatingHandler) Handle(ctx context.Context, r slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	if route := HTTPRouteFromContext(ctx); route != "" {
		r.AddAttrs(slog.String("http.route", route))
	}
	return h.Handler.Handle(ctx, r)
}

func (h correlatingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return correlatingHandler{h.Handler.WithAttrs(attrs)}
}

func (h correlatingHandler) WithGroup(name string) slog.Handler {
	return correlatingHandler{h.Handler.WithGroup(name)}
}

// ParseLevel maps LOG_LEVEL to a slog level; unknown values mean debug
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelDebug
}

func initLogger(cfg *config.OTLPConfig) *slog.Logger {
	return newLogger(os.Stdout, cfg)
}

// newLogger writes JSON records labelled with the service and environment
func newLogger(w io.Writer, cfg *config.OTLPConfig) *slog.Logger {
	base := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(cfg.LogLevel)})
	return slog.New(correlatingHandler{base}).With(
		slog.String("service.name", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)
}
