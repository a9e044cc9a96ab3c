package http

import (
	"context"
	"io"
	"log/slog"

	"github.com/example/group-scheduler/internal/logging"
)

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func handlerLogger(ctx context.Context, base *slog.Logger, handler, operation string) *slog.Logger {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = base
	}
	if logger == nil {
		logger = defaultLogger(nil)
	}
	return logger.With(
		slog.String("handler", handler),
		slog.String("operation", operation),
	)
}
