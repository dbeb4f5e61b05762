package observer

import (
	"context"
	"errors"

	"github.com/tailored-agentic-units/observers/observability"
)

// Notify calls fn once for every member of r as it stood when Notify was
// called. The pass runs over a clone, so fn may Add to or Remove from r
// without affecting which members this pass visits.
//
// Every member is visited even if earlier calls fail; failures are wrapped
// in *NotifyError and joined. Cancellation of ctx stops the pass before the
// next member and is returned alongside any handler errors.
func Notify[T any, H comparable](ctx context.Context, r *Registry[T, H], fn func(ctx context.Context, m Member[T, H]) error) error {
	members := r.Clone().Members()

	r.emitContext(ctx, EventNotifyStart, observability.LevelVerbose, map[string]any{
		"members": len(members),
	})

	var errs []error
	visited := 0
	for i, m := range members {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		visited++
		if err := fn(ctx, m); err != nil {
			r.emitContext(ctx, EventNotifyError, observability.LevelError, map[string]any{
				"owner": string(m.Key()),
				"index": i,
				"error": err.Error(),
			})
			errs = append(errs, &NotifyError{Owner: m.Key(), Index: i, Err: err})
		}
	}

	r.emitContext(ctx, EventNotifyComplete, observability.LevelVerbose, map[string]any{
		"members": len(members),
		"visited": visited,
		"errors":  len(errs),
	})
	return errors.Join(errs...)
}
