package auth

import (
	"context"

	"robotdemo/internal/models"
)

type ctxKey string

const (
	userKey ctxKey = "currentUser"
)

func WithUser(ctx context.Context, u models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromContext returns the user attached by LoadSession, if any.
func UserFromContext(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(userKey).(models.User)
	return u, ok
}

func IsAuthenticated(ctx context.Context) bool {
	_, ok := UserFromContext(ctx)
	return ok
}

func IsAdmin(ctx context.Context) bool {
	u, ok := UserFromContext(ctx)
	return ok && u.Role == models.RoleAdmin
}

// HasRole is false when unauthenticated. Admins satisfy every role.
func HasRole(ctx context.Context, required models.Role) bool {
	u, ok := UserFromContext(ctx)
	if !ok {
		return false
	}
	if u.Role == models.RoleAdmin {
		return true
	}
	return u.Role == required
}
