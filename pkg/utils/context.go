package utils

import (
	"context"

	"sports-booking/internal/data/entity"
)

type contextKey string

const actorKey contextKey = "actor"

// SetActorContext attaches the audit actor context to the request context.
func SetActorContext(ctx context.Context, actor entity.ActorContext) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActorContext returns the actor context recorded by the middleware. The
// zero value is returned when none was set; the audit trail stores it as-is.
func GetActorContext(ctx context.Context) (entity.ActorContext, bool) {
	actor, ok := ctx.Value(actorKey).(entity.ActorContext)
	return actor, ok
}
