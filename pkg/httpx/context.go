package httpx

import (
	"context"

	"github.com/aussiebroadwan/invites/pkg/jwtx"
)

type ctxKey string

const CtxKeyClaims ctxKey = "claims"

// ContextWithClaims attaches verified access-token claims.
func ContextWithClaims(ctx context.Context, c jwtx.Claims) context.Context {
	return context.WithValue(ctx, CtxKeyClaims, c)
}

// ClaimsFromContext returns the claims attached by AuthnMiddleware.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}
