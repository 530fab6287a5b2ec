package strategy

import (
	"context"

	"gatehouse/cmd/identity"
)

type ctxKey struct{}

// WithUser attaches the resolved principal to ctx for downstream handlers.
func WithUser(ctx context.Context, u identity.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFromContext returns the principal the enforcement layer resolved for
// this request, if any.
func UserFromContext(ctx context.Context) (identity.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(identity.User)
	return u, ok
}
