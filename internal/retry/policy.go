// Package retry provides backoff policies for transient failures such as
// template repository fetches over a flaky network.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/pagesmith/internal/logfields"
)

// BackoffMode selects how the delay grows between attempts.
type BackoffMode string

const (
	BackoffFixed       BackoffMode = "fixed"
	BackoffLinear      BackoffMode = "linear"
	BackoffExponential BackoffMode = "exponential"
)

// Policy encapsulates retry/backoff settings. It is immutable after
// construction.
type Policy struct {
	Mode       BackoffMode
	Initial    time.Duration
	Max        time.Duration
	MaxRetries int // attempts after the first failure
}

// DefaultPolicy is linear, 1s initial, 30s cap, 2 retries.
func DefaultPolicy() Policy {
	return Policy{Mode: BackoffLinear, Initial: time.Second, Max: 30 * time.Second, MaxRetries: 2}
}

// None never retries.
func None() Policy {
	p := DefaultPolicy()
	p.MaxRetries = 0
	return p
}

// NewPolicy builds a policy from raw settings; zero or unknown values fall
// back to DefaultPolicy.
func NewPolicy(mode BackoffMode, initial, maxDelay time.Duration, maxRetries int) Policy {
	p := DefaultPolicy()
	if maxRetries >= 0 {
		p.MaxRetries = maxRetries
	}
	if initial > 0 {
		p.Initial = initial
	}
	if maxDelay > 0 {
		p.Max = maxDelay
	}
	switch mode {
	case BackoffFixed, BackoffLinear, BackoffExponential:
		p.Mode = mode
	}
	if p.Initial > p.Max {
		p.Initial = p.Max
	}
	return p
}

// Delay returns the wait before retry n (1-based).
func (p Policy) Delay(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	var d time.Duration
	switch p.Mode {
	case BackoffFixed:
		return p.Initial
	case BackoffExponential:
		if n > 30 {
			return p.Max
		}
		d = p.Initial * (1 << (n - 1))
	default:
		d = time.Duration(n) * p.Initial
	}
	if d > p.Max {
		return p.Max
	}
	return d
}

// Validate reports a policy that cannot be applied.
func (p Policy) Validate() error {
	if p.Initial <= 0 {
		return errors.New("initial must be >0")
	}
	if p.Max <= 0 {
		return errors.New("max must be >0")
	}
	if p.MaxRetries < 0 {
		return errors.New("max retries cannot be negative")
	}
	return nil
}

// Do calls fn until it succeeds, returns an error retryable rejects, or
// the policy is exhausted. The last error is returned. Waiting stops early
// when ctx is done.
func Do(ctx context.Context, p Policy, retryable func(error) bool, fn func(context.Context) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt >= p.MaxRetries || !retryable(err) {
			return err
		}
		delay := p.Delay(attempt + 1)
		slog.Warn("Transient failure, retrying",
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay),
			logfields.Error(err))

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return fmt.Errorf("%w (last error: %w)", ctx.Err(), err)
		case <-t.C:
		}
	}
}
