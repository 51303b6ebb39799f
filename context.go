package portier

import (
	"context"

	"github.com/portier-io/portier/id"
)

type contextKey int

const (
	ctxKeyUserID contextKey = iota
	ctxKeyRequestIP
)

// WithUser returns a context carrying the requesting user's ID.
// Used by the HTTP middleware to thread identity to the engine.
func WithUser(ctx context.Context, userID id.UserID) context.Context {
	return context.WithValue(ctx, ctxKeyUserID, userID)
}

// UserFromContext extracts the requesting user's ID, if set.
func UserFromContext(ctx context.Context) (id.UserID, bool) {
	v, ok := ctx.Value(ctxKeyUserID).(id.UserID)
	return v, ok
}

// WithRequestIP returns a context carrying the client IP for decision
// logging.
func WithRequestIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestIP, ip)
}

func requestIPFromContext(ctx context.Context) string {
	v, ok := ctx.Value(ctxKeyRequestIP).(string)
	if !ok {
		return ""
	}
	return v
}
