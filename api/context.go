package api

import (
	"context"
)

type keyType string

const principalKey keyType = "principal"

// ctxWithPrincipal adds the authenticated principal to the context
func ctxWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// principalFromCtx retrieves the principal from the context; nil means the
// request is anonymous.
func principalFromCtx(ctx context.Context) *Principal {
	if p, ok := ctx.Value(principalKey).(*Principal); ok {
		return p
	}
	return nil
}
