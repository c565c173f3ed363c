package api

import (
	"context"
	"time"
)

// QueryTimeout is the default timeout for database queries
const QueryTimeout = 10 * time.Second

// WithQueryTimeout creates a context with query timeout
func WithQueryTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, QueryTimeout)
}

type visitorContextKey struct{}

// WithVisitor stores the visitor id on the context
func WithVisitor(ctx context.Context, visitorID string) context.Context {
	return context.WithValue(ctx, visitorContextKey{}, visitorID)
}

// VisitorFromContext returns the visitor id set by VisitorMiddleware
func VisitorFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(visitorContextKey{}).(string)
	return id, ok && id != ""
}
