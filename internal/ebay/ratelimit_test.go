package ebay

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_BudgetExhaustion(t *testing.T) {
	t.Parallel()

	r := NewRateLimiter(1000, 10, 3)
	ctx := context.Background()

	for range 3 {
		require.NoError(t, r.Wait(ctx))
	}

	err := r.Wait(ctx)
	assert.ErrorIs(t, err, ErrBudgetExhausted)
	assert.Equal(t, int64(3), r.Used())
	assert.Equal(t, int64(0), r.Remaining())
}

func TestRateLimiter_Reset(t *testing.T) {
	t.Parallel()

	r := NewRateLimiter(1000, 10, 1)
	ctx := context.Background()

	require.NoError(t, r.Wait(ctx))
	require.ErrorIs(t, r.Wait(ctx), ErrBudgetExhausted)

	r.Reset()
	assert.Equal(t, int64(1), r.Remaining())
	assert.NoError(t, r.Wait(ctx))
}

func TestRateLimiter_ContextCancellation(t *testing.T) {
	t.Parallel()

	// Burst 1 with a slow refill, so the second Wait blocks on pacing and
	// must observe the canceled context.
	r := NewRateLimiter(0.001, 1, 10)
	require.NoError(t, r.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, r.Wait(ctx))
}
