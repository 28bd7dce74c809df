package mirror

import (
	"context"
	"time"

	"github.com/oshokin/flickr-mirror/internal/utils"
)

// Sleeper waits for a duration or until ctx is done.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SleeperFunc adapts a function to the Sleeper interface.
type SleeperFunc func(ctx context.Context, d time.Duration) error

// Sleep calls f(ctx, d).
func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error {
	return f(ctx, d)
}

// RetryPolicy controls how a media download is repeated.
type RetryPolicy struct {
	// Interval is the fixed wait before every attempt, the first one included.
	Interval time.Duration
	// MaxAttempts caps the attempts per media item. Zero means no cap.
	MaxAttempts int64
	// Sleeper performs the wait.
	Sleeper Sleeper
}

// NewRetryPolicy creates a policy that sleeps on the wall clock.
func NewRetryPolicy(interval time.Duration, maxAttempts int64) *RetryPolicy {
	return &RetryPolicy{
		Interval:    interval,
		MaxAttempts: maxAttempts,
		Sleeper:     SleeperFunc(utils.Sleep),
	}
}

// Wait blocks for the configured interval.
func (p *RetryPolicy) Wait(ctx context.Context) error {
	return p.Sleeper.Sleep(ctx, p.Interval)
}

// Exhausted reports whether no attempt is left after the given number of attempts.
func (p *RetryPolicy) Exhausted(attempts int64) bool {
	return p.MaxAttempts > 0 && attempts >= p.MaxAttempts
}
