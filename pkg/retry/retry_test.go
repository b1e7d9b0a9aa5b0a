package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/solana-transfers/pkg/retry/backoff"
)

func TestRealSleeper(t *testing.T) {
	sleeperImpl = &realSleeper{}

	start := time.Now()
	n, err := Retry(func() error { return errors.New("err") },
		Limit(2),
		Backoff(backoff.Constant(300*time.Millisecond), 300*time.Millisecond),
	)

	assert.Error(t, err)
	assert.EqualValues(t, 2, n)
	assert.True(t, 300*time.Millisecond <= time.Since(start))
	assert.True(t, time.Second > time.Since(start))
}

func TestRetrier(t *testing.T) {
	retriableErr := errors.New("retriable")
	r := NewRetrier(Limit(5), RetriableErrors(retriableErr))

	attempts, err := r.Retry(func() error { return nil })
	assert.NoError(t, err)
	assert.Equal(t, uint(1), attempts)

	attempts, err = r.Retry(func() error { return errors.New("unknown") })
	assert.Error(t, err)
	assert.Equal(t, uint(1), attempts)

	attempts, err = r.Retry(func() error { return retriableErr })
	assert.Equal(t, retriableErr, err)
	assert.Equal(t, uint(5), attempts)

	var calls int
	attempts, err = r.Retry(func() error {
		calls++
		if calls < 3 {
			return retriableErr
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, uint(3), attempts)
}

func TestRetryWithContext(t *testing.T) {
	ts := &testSleeper{}
	sleeperImpl = ts

	ctx, cancel := context.WithCancel(context.Background())

	var calls int
	attempts, err := RetryWithContext(ctx, func() error {
		calls++
		if calls == 4 {
			cancel()
		}
		return errors.New("pending")
	}, Backoff(backoff.Constant(time.Millisecond), time.Millisecond))
	assert.Equal(t, context.Canceled, err)
	assert.Equal(t, uint(4), attempts)
	assert.Len(t, ts.sleepTimes, 3)

	expired, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-expired.Done()

	attempts, err = RetryWithContext(expired, func() error { return nil })
	require.NoError(t, err)
	assert.Equal(t, uint(1), attempts)

	actionErr := errors.New("fatal")
	_, err = RetryWithContext(context.Background(), func() error { return actionErr }, Limit(2))
	assert.Equal(t, actionErr, err)
}
