package pagewire

import (
	"context"
	"log/slog"
)

type loggerCtxKey struct{}

var discardLogger = slog.New(discardHandler{})

// logger returns the *slog.Logger stored in ctx by LoggingContext, or one
// that drops everything if there isn't one.
func logger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerCtxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return discardLogger
}

// LoggingContext returns a copy of ctx that carries logger. Everything in
// pagewire logs through the logger found on the context it's passed; without
// one, logs are discarded.
func LoggingContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, logger)
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool { return false }

func (discardHandler) Handle(context.Context, slog.Record) error { return nil }

func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler { return d }

func (d discardHandler) WithGroup(string) slog.Handler { return d }
