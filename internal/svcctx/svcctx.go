// Package svcctx provides service context for dependency injection via context.
// This package is separate from server to avoid import cycles with endpoints.
package svcctx

import (
	"context"
	"log/slog"

	"github.com/labworks/labextract/internal/config"
	"github.com/labworks/labextract/internal/home"
	"github.com/labworks/labextract/internal/metrics"
	"github.com/labworks/labextract/internal/pipeline"
	"github.com/labworks/labextract/internal/result"
)

// Services holds all core services that flow through context.
// Components extract what they need via the individual extractors.
type Services struct {
	Processor *pipeline.Processor
	Sink      *result.Sink
	Persist   bool // Write results to Sink after extraction
	Metrics   *metrics.Recorder
	ConfigMgr *config.Manager
	Logger    *slog.Logger
	Home      *home.Dir
}

type servicesKey struct{}

type requestIDKey struct{}

// WithServices returns a new context with services attached.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// ServicesFrom extracts the full Services struct from context.
// Returns nil if not present.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// ProcessorFrom extracts the document processor from context.
func ProcessorFrom(ctx context.Context) *pipeline.Processor {
	if s := ServicesFrom(ctx); s != nil {
		return s.Processor
	}
	return nil
}

// SinkFrom extracts the result sink from context.
func SinkFrom(ctx context.Context) *result.Sink {
	if s := ServicesFrom(ctx); s != nil {
		return s.Sink
	}
	return nil
}

// PersistFrom reports whether new results should be written to the sink.
func PersistFrom(ctx context.Context) bool {
	if s := ServicesFrom(ctx); s != nil {
		return s.Persist && s.Sink != nil
	}
	return false
}

// MetricsFrom extracts the metrics recorder from context.
func MetricsFrom(ctx context.Context) *metrics.Recorder {
	if s := ServicesFrom(ctx); s != nil {
		return s.Metrics
	}
	return nil
}

// ConfigManagerFrom extracts the config manager from context.
func ConfigManagerFrom(ctx context.Context) *config.Manager {
	if s := ServicesFrom(ctx); s != nil {
		return s.ConfigMgr
	}
	return nil
}

// HomeFrom extracts the home directory from context.
func HomeFrom(ctx context.Context) *home.Dir {
	if s := ServicesFrom(ctx); s != nil {
		return s.Home
	}
	return nil
}

// WithRequestID returns a new context carrying the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the request id, or "" if none.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// LoggerFrom extracts the logger from context, tagged with the request id
// when one is present. Falls back to slog.Default().
func LoggerFrom(ctx context.Context) *slog.Logger {
	logger := slog.Default()
	if s := ServicesFrom(ctx); s != nil && s.Logger != nil {
		logger = s.Logger
	}
	if id := RequestIDFrom(ctx); id != "" {
		logger = logger.With("request_id", id)
	}
	return logger
}
