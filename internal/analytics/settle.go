package analytics

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Outcome is the settled result of one operation.
type Outcome[T any] struct {
	Value T
	Err   error
}

// Settle runs every op concurrently and waits for all of them. A failing or
// panicking op only affects its own outcome; the others keep running.
func Settle[T any](ctx context.Context, ops ...func(context.Context) (T, error)) []Outcome[T] {
	outcomes := make([]Outcome[T], len(ops))

	// plain Group: one failure must not cancel the siblings
	var g errgroup.Group
	for i, op := range ops {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					outcomes[i] = Outcome[T]{Err: fmt.Errorf("operation panicked: %v", r)}
				}
			}()
			v, err := op(ctx)
			outcomes[i] = Outcome[T]{Value: v, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}
