package session

import (
	"context"

	"github.com/google/uuid"
)

// SessionContext identifies the authenticated session attached to a request.
// Downstream authorization (case and appointment ownership checks) consumes
// it; this layer only answers whose session the request carries.
type SessionContext struct {
	SessionID uuid.UUID
	UserID    uuid.UUID
}

type contextKey struct{}

// WithSessionContext returns a context carrying the session identity.
func WithSessionContext(ctx context.Context, sc SessionContext) context.Context {
	return context.WithValue(ctx, contextKey{}, sc)
}

// FromContext extracts the session identity attached by the middleware.
func FromContext(ctx context.Context) (SessionContext, bool) {
	sc, ok := ctx.Value(contextKey{}).(SessionContext)
	return sc, ok
}
