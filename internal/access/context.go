package access

import (
	"context"

	"kosan/shared/constant"
)

// ActorFromContext rebuilds the request actor from the values the auth middleware
// stored on the context.
func ActorFromContext(ctx context.Context) Actor {
	id, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return Actor{ID: id, Role: role}
}
