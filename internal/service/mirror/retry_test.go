package mirror

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryPolicy_Exhausted(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		maxAttempts int64
		attempts    int64
		want        bool
	}{
		{"unbounded first", 0, 1, false},
		{"unbounded many", 0, 1_000_000, false},
		{"bounded below cap", 3, 2, false},
		{"bounded at cap", 3, 3, true},
		{"single attempt", 1, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			policy := NewRetryPolicy(time.Second, tt.maxAttempts)
			assert.Equal(t, tt.want, policy.Exhausted(tt.attempts))
		})
	}
}

func TestRetryPolicy_WaitUsesSleeper(t *testing.T) {
	t.Parallel()

	var slept time.Duration

	policy := &RetryPolicy{
		Interval: 3 * time.Second,
		Sleeper: SleeperFunc(func(_ context.Context, d time.Duration) error {
			slept += d

			return nil
		}),
	}

	require.NoError(t, policy.Wait(t.Context()))
	require.NoError(t, policy.Wait(t.Context()))
	assert.Equal(t, 6*time.Second, slept)
}

func TestRetryPolicy_WaitCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := NewRetryPolicy(time.Hour, 0).Wait(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
