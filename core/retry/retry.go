package retry

import (
	"context"
	"errors"
	"time"
)

// Retryable marks an error as transient: the operation that produced it may
// be re-run under the caller's retry policy. Rate-limit responses and
// network timeouts are the two retryable classes in this system.
type Retryable struct {
	Err error
}

func (r *Retryable) Error() string {
	return "retryable: " + r.Err.Error()
}

func (r *Retryable) Unwrap() error {
	return r.Err
}

// Mark wraps err as retryable. Marking nil returns nil.
func Mark(err error) error {
	if err == nil {
		return nil
	}
	return &Retryable{Err: err}
}

// IsRetryable reports whether err is marked retryable.
func IsRetryable(err error) bool {
	var r *Retryable
	return errors.As(err, &r)
}

// Policy bounds a retry loop: at most Tries attempts, sleeping
// BaseInterval * 2^(attempt-1) between them.
type Policy struct {
	Tries        int
	BaseInterval time.Duration

	// Sleep is overridable for tests; nil means time.Sleep.
	Sleep func(d time.Duration)
}

// Do runs op until it returns a non-retryable outcome or the policy's
// attempts are exhausted. op receives the 1-based attempt number so it can
// decide whether a transient condition is still worth signalling as
// retryable. The value and error of the final attempt are returned; earlier
// retryable attempts are invisible except for their backoff delays.
func Do[T any](ctx context.Context, p Policy, op func(try int) (T, error)) (T, error) {
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	tries := p.Tries
	if tries < 1 {
		tries = 1
	}

	var value T
	var err error
	for try := 1; try <= tries; try++ {
		value, err = op(try)
		if err == nil || !IsRetryable(err) {
			return value, err
		}
		if try == tries {
			break
		}
		if ctx.Err() != nil {
			return value, ctx.Err()
		}
		sleep(p.BaseInterval << (try - 1))
	}

	return value, err
}
