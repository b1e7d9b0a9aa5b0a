// Package retry runs actions until they succeed or a strategy gives up.
package retry

import (
	"context"
)

// Action is a unit of work that may be retried.
type Action func() error

// Retrier retries actions using a fixed set of strategies.
type Retrier interface {
	Retry(action Action) (uint, error)
}

type retrier struct {
	strategies []Strategy
}

// NewRetrier returns a Retrier bound to the provided strategies. With no
// strategies the action is retried until it stops failing.
func NewRetrier(strategies ...Strategy) Retrier {
	return &retrier{
		strategies: strategies,
	}
}

func (r *retrier) Retry(action Action) (uint, error) {
	return Retry(action, r.strategies...)
}

// Retry runs the action until it succeeds or any strategy returns false, and
// reports the number of attempts made. Strategies run in order, so ones that
// sleep belong at the end.
func Retry(action Action, strategies ...Strategy) (uint, error) {
	for attempt := uint(1); ; attempt++ {
		err := action()
		if err == nil {
			return attempt, nil
		}

		for _, s := range strategies {
			if !s(attempt, err) {
				return attempt, err
			}
		}
	}
}

// RetryWithContext is Retry with an implicit Context strategy in front. When
// the context ends the context's error is returned instead of the action's.
func RetryWithContext(ctx context.Context, action Action, strategies ...Strategy) (uint, error) {
	attempts, err := Retry(action, append([]Strategy{Context(ctx)}, strategies...)...)
	if err != nil && ctx.Err() != nil {
		return attempts, ctx.Err()
	}
	return attempts, err
}
