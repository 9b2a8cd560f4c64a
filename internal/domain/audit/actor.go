package audit

import "context"

type actorKey struct{}

// WithActor attaches the resolved actor to the context. The HTTP layer does
// this once per request; everything recorded downstream carries it.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the actor attached to the context. An absent
// actor yields the zero Actor, never an error.
func ActorFromContext(ctx context.Context) Actor {
	if actor, ok := ctx.Value(actorKey{}).(Actor); ok {
		return actor
	}
	return Actor{}
}
