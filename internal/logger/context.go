package logger

import (
	"context"

	logrus "github.com/sirupsen/logrus"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// FromCtx returns an entry with request_id attached when the context has one.
func FromCtx(ctx context.Context, log logrus.FieldLogger) logrus.FieldLogger {
	if reqID := RequestIDFrom(ctx); reqID != "" {
		return log.WithField("request_id", reqID)
	}
	return log
}
