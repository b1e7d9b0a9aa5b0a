package testutil

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/code-payments/solana-transfers/pkg/retry"
	"github.com/code-payments/solana-transfers/pkg/retry/backoff"
)

var errConditionNotMet = errors.New("condition not met")

// WaitFor polls condition every interval until it holds or timeout elapses.
func WaitFor(timeout, interval time.Duration, condition func() bool) error {
	if timeout < interval {
		return errors.New("timeout must be greater than interval")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	_, err := retry.RetryWithContext(
		ctx,
		func() error {
			if condition() {
				return nil
			}
			return errConditionNotMet
		},
		retry.Backoff(backoff.Constant(interval), interval),
	)
	if err != nil {
		return errors.Wrapf(errConditionNotMet, "within %v", timeout)
	}
	return nil
}
