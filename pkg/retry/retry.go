// Package retry provides exponential backoff with jitter.
// Ember uses it only while opening remote storage backends at startup;
// engine operations themselves are never retried.
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// PermanentError marks an error that must not be retried.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string {
	return e.Err.Error()
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

// Permanent wraps err so that Do returns it without further attempts.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// IsPermanent reports whether err carries a PermanentError.
func IsPermanent(err error) bool {
	var p *PermanentError
	return errors.As(err, &p)
}

// Attempt describes a failed try that is about to be retried.
type Attempt struct {
	N    int
	Err  error
	Wait time.Duration
}

// Policy controls how many times and how far apart an operation is tried.
type Policy struct {
	// Attempts counts the first try.
	Attempts int
	Initial  time.Duration
	Max      time.Duration
	// Multiplier grows the delay after each failed attempt.
	Multiplier float64
	// Jitter in [0, 1] spreads each delay by up to that fraction in both directions.
	Jitter float64
	// Notify, when set, is called before each wait.
	Notify func(Attempt)
}

// DefaultPolicy is three attempts starting at 100ms.
func DefaultPolicy() Policy {
	return Policy{
		Attempts:   3,
		Initial:    100 * time.Millisecond,
		Max:        5 * time.Second,
		Multiplier: 2,
		Jitter:     0.1,
	}
}

// ForBackends is the policy used while connecting to Redis or Postgres.
func ForBackends(notify func(Attempt)) Policy {
	return Policy{
		Attempts:   4,
		Initial:    200 * time.Millisecond,
		Max:        2 * time.Second,
		Multiplier: 2,
		Jitter:     0.2,
		Notify:     notify,
	}
}

// Do runs op until it succeeds, returns a permanent error, runs out of
// attempts, or ctx is done. A permanent error is returned unwrapped.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var last error
	for n := 1; n <= attempts; n++ {
		if err := ctx.Err(); err != nil {
			if last != nil {
				return last
			}
			return err
		}

		err := op(ctx)
		if err == nil {
			return nil
		}
		last = err

		var perm *PermanentError
		if errors.As(err, &perm) {
			return perm.Err
		}
		if n == attempts {
			break
		}

		wait := p.Delay(n)
		if p.Notify != nil {
			p.Notify(Attempt{N: n, Err: err, Wait: wait})
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return last
		case <-timer.C:
		}
	}
	return last
}

// Delay returns the wait after the n-th failed attempt.
func (p Policy) Delay(n int) time.Duration {
	mult := p.Multiplier
	if mult < 1 {
		mult = 1
	}
	d := float64(p.Initial) * math.Pow(mult, float64(n-1))
	if p.Max > 0 && d > float64(p.Max) {
		d = float64(p.Max)
	}
	if p.Jitter > 0 {
		d += d * p.Jitter * (rand.Float64()*2 - 1)
	}
	if d < 0 {
		d = 0
	}
	return time.Duration(d)
}
