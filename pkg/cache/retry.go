package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrCacheMiss is returned internally by backends that signal a miss
	// through an error. It never escapes Get.
	ErrCacheMiss = errors.New("cache: miss")

	// ErrNetwork wraps failures reaching a remote backend.
	ErrNetwork = errors.New("cache: network error")
)

type retryableError struct{ err error }

func (e retryableError) Error() string { return e.err.Error() }
func (e retryableError) Unwrap() error { return e.err }

// Retryable marks err as transient. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return retryableError{err: err}
}

// IsRetryable reports whether err, or anything it wraps, was marked
// with Retryable.
func IsRetryable(err error) bool {
	var re retryableError
	return errors.As(err, &re)
}

// Backoff retries an operation while it fails with a Retryable error.
type Backoff struct {
	Attempts int           // total calls including the first; at least 1
	Delay    time.Duration // wait after the first failure, doubled each time
}

// DefaultBackoff is used by RetryWithBackoff.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 100 * time.Millisecond}

// Retry calls fn until it succeeds, returns a permanent error, runs out of
// attempts, or ctx is done.
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay

	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
	return err
}

// RetryWithBackoff retries fn with DefaultBackoff.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultBackoff.Retry(ctx, fn)
}
