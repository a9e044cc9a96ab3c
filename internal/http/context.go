package http

import (
	"context"

	"github.com/example/group-scheduler/internal/application"
)

type contextKey string

const (
	principalContextKey contextKey = "principal"
	groupIDContextKey   contextKey = "groupID"
	memberIDContextKey  contextKey = "memberID"
	busyIDContextKey    contextKey = "busyID"
	eventIDContextKey   contextKey = "eventID"
)

// ContextWithPrincipal stores the authenticated principal on the context.
func ContextWithPrincipal(ctx context.Context, principal application.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

// PrincipalFromContext returns the authenticated principal, if present.
func PrincipalFromContext(ctx context.Context) (application.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(application.Principal)
	return principal, ok
}

func contextWithGroupID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, groupIDContextKey, id)
}

func groupIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(groupIDContextKey).(string)
	return id, ok
}

func contextWithMemberID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, memberIDContextKey, id)
}

func memberIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(memberIDContextKey).(string)
	return id, ok
}

func contextWithBusyID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, busyIDContextKey, id)
}

func busyIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(busyIDContextKey).(string)
	return id, ok
}

func contextWithEventID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, eventIDContextKey, id)
}

func eventIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(eventIDContextKey).(string)
	return id, ok
}
