package context

import (
	"context"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
)

// KeyUser is the key for storing the authenticated user.
const KeyUser ContextKey = "user"

// WithUser returns a new context carrying the authenticated user.
func WithUser(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, KeyUser, user)
}

// UserFromContext returns the authenticated user, or nil for anonymous requests.
func UserFromContext(ctx context.Context) *entity.User {
	if user, ok := ctx.Value(KeyUser).(*entity.User); ok {
		return user
	}

	return nil
}
