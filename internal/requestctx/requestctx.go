// Package requestctx holds the per-request values every layer may read:
// the request id for logs and audit rows, and the resolved actor.
package requestctx

import (
	"context"

	"hrconsole/internal/domain/auth"
)

type key int

const (
	requestIDKey key = iota
	actorKey
	traceKey
)

// Trace is filled in as the request moves inward, so outer middleware such
// as the access log can read what inner layers resolved.
type Trace struct {
	ActorID string
}

// WithTrace installs an empty Trace and returns it for the caller to read
// after the handler chain has run.
func WithTrace(ctx context.Context) (context.Context, *Trace) {
	trace := &Trace{}
	return context.WithValue(ctx, traceKey, trace), trace
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID returns "" outside a request.
func RequestID(ctx context.Context) string {
	value, _ := ctx.Value(requestIDKey).(string)
	return value
}

// WithActor attaches the actor built from the bearer token. A nil actor
// leaves ctx unchanged.
func WithActor(ctx context.Context, actor *auth.Actor) context.Context {
	if actor == nil {
		return ctx
	}
	if trace, ok := ctx.Value(traceKey).(*Trace); ok {
		trace.ActorID = actor.ID
	}
	return context.WithValue(ctx, actorKey, actor)
}

// Actor returns nil for anonymous requests.
func Actor(ctx context.Context) *auth.Actor {
	actor, _ := ctx.Value(actorKey).(*auth.Actor)
	return actor
}
