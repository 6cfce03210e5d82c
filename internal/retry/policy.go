package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy describes how often a failing call is attempted and how long to
// wait in between. It is immutable after construction.
type Policy struct {
	Attempts int           // total attempts including the first
	Initial  time.Duration // wait before the second attempt
	Max      time.Duration // cap for growth; zero means uncapped
}

// DefaultPolicy returns three attempts starting at one second.
func DefaultPolicy() Policy {
	return Policy{Attempts: 3, Initial: time.Second}
}

// NewPolicy builds a policy from raw config fields; non-positive attempts
// fall back to the default, a negative delay is treated as zero.
func NewPolicy(attempts int, initial time.Duration) Policy {
	p := DefaultPolicy()
	if attempts > 0 {
		p.Attempts = attempts
	}
	if initial >= 0 {
		p.Initial = initial
	}
	return p
}

// Delay returns the wait before the given retry (1-based: first retry => 1).
// Each retry doubles the previous wait.
func (p Policy) Delay(retryCount int) time.Duration {
	if retryCount <= 0 {
		return 0
	}
	d := p.Initial
	for i := 1; i < retryCount; i++ {
		d *= 2
		if p.Max > 0 && d >= p.Max {
			return p.Max
		}
	}
	if p.Max > 0 && d > p.Max {
		return p.Max
	}
	return d
}

// Validate ensures invariants; returns error if policy impossible to apply.
func (p Policy) Validate() error {
	if p.Attempts <= 0 {
		return fmt.Errorf("attempts must be >0")
	}
	if p.Initial < 0 {
		return fmt.Errorf("initial delay cannot be negative")
	}
	if p.Max < 0 {
		return fmt.Errorf("max delay cannot be negative")
	}
	return nil
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the real Sleeper.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
