package resilience

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// SingleFlight deduplicates concurrent calls for the same key.
type SingleFlight[T any] struct {
	group singleflight.Group
}

func (g *SingleFlight[T]) Do(key string, fn func() (T, error)) (T, error, bool) {
	out, err, shared := g.group.Do(key, func() (any, error) {
		return fn()
	})

	value, _ := out.(T)
	return value, err, shared
}

// DoContext runs fn once per key with a context detached from any single
// caller's cancellation. Each caller still stops waiting when its own ctx ends.
func (g *SingleFlight[T]) DoContext(ctx context.Context, key string, fn func(context.Context) (T, error)) (T, error, bool) {
	callCtx := context.WithoutCancel(ctx)
	ch := g.group.DoChan(key, func() (any, error) {
		return fn(callCtx)
	})

	select {
	case res := <-ch:
		value, _ := res.Val.(T)
		return value, res.Err, res.Shared
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err(), false
	}
}
