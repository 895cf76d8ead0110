package session

import (
	"context"

	"github.com/plsfundme/portal/internal/model"
)

type sessionContextKey struct{}

func WithSession(ctx context.Context, sess *model.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// FromContext returns the session attached by Load. Anonymous requests get
// (nil, false).
func FromContext(ctx context.Context) (*model.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(*model.Session)
	if !ok || sess == nil {
		return nil, false
	}
	return sess, true
}
