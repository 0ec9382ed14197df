package httpx

import (
	"context"

	"github.com/aussiebroadwan/credmarket/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyUserID ctxKey = "user_id"
	CtxKeyStaff  ctxKey = "staff"
	CtxKeyClaims ctxKey = "claims"
)

// ContextWithClaims stores verified session claims on ctx.
func ContextWithClaims(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyStaff, c.Staff)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// ClaimsFromContext returns the session claims placed by AuthnMiddleware.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}

// UserIDFromContext returns the authenticated user id, or "".
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(CtxKeyUserID).(string)
	return id
}

func isStaff(ctx context.Context) bool {
	v, _ := ctx.Value(CtxKeyStaff).(bool)
	return v
}
