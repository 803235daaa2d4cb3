package controllerutils

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
)

type correlationIDKey struct{}

// WithCorrelationID stamps ctx and its logger with a fresh correlation ID,
// so every log line and outbound bind9client call emitted during one zone
// reconcile can be traced back to that single reconcile attempt. The record
// controllers do not call it, so dnsupdate calls carry no correlation ID.
func WithCorrelationID(ctx context.Context, log logr.Logger) (context.Context, logr.Logger) {
	id := uuid.NewString()
	ctx = context.WithValue(ctx, correlationIDKey{}, id)
	return ctx, log.WithValues("correlationID", id)
}

// CorrelationID returns the ID stamped by WithCorrelationID, or "" if none
// was set.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return id
}
