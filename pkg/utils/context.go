package utils

import (
	"context"

	"yamdb/internal/permission"
)

type contextKey string

const (
	ActorKey     contextKey = "actor"
	RequestIDKey contextKey = "request_id"
)

// GetActorFromContext returns the authenticated actor, or nil for anonymous requests.
func GetActorFromContext(ctx context.Context) *permission.Actor {
	actor, _ := ctx.Value(ActorKey).(*permission.Actor)
	return actor
}

func SetActorContext(ctx context.Context, actor *permission.Actor) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}

func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(RequestIDKey).(string)
	return id, ok
}

func SetRequestIDContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}
