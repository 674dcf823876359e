package utils

import (
	"context"
	"telemed-service/internal/app/models"
	"telemed-service/internal/pkg/constvars"
)

func SetIdentityToContext(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, constvars.CONTEXT_IDENTITY_KEY, identity)
}

func GetIdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(constvars.CONTEXT_IDENTITY_KEY).(models.Identity)
	return identity, ok
}
