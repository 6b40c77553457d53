package common

import (
	"context"
)

// UserContext holds the authenticated identity resolved from a bearer token.
// Nil in a request context means the request carried no valid credentials.
type UserContext struct {
	UserID string
	Email  string
	Name   string
	Role   string
}

type contextKey int

const userContextKey contextKey = iota

// WithUserContext stores a UserContext in the request context.
func WithUserContext(ctx context.Context, uc *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, uc)
}

// UserContextFromContext retrieves the UserContext from context, or nil if absent.
func UserContextFromContext(ctx context.Context) *UserContext {
	uc, _ := ctx.Value(userContextKey).(*UserContext)
	return uc
}
