package ebay

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/time/rate"
)

// ErrBudgetExhausted is returned when the per-run request budget has been
// spent. The caller treats it as input exhaustion, not a failure.
var ErrBudgetExhausted = errors.New("request budget exhausted")

// RateLimiter controls page fetch pacing and the per-run request budget.
// A token bucket spaces requests out (bot-detection courtesy); the budget
// bounds how many pages a single run may pull regardless of pacing.
type RateLimiter struct {
	limiter   *rate.Limiter
	used      atomic.Int64
	maxPerRun int64
}

// NewRateLimiter creates a rate limiter with the given per-second rate,
// burst size, and per-run request budget.
func NewRateLimiter(perSecond float64, burst int, maxPerRun int64) *RateLimiter {
	return &RateLimiter{
		limiter:   rate.NewLimiter(rate.Limit(perSecond), burst),
		maxPerRun: maxPerRun,
	}
}

// Wait blocks until pacing allows the next request, or the context is
// canceled. Returns ErrBudgetExhausted once the run's budget is spent.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r.used.Load() >= r.maxPerRun {
		return fmt.Errorf("%w (%d/%d)", ErrBudgetExhausted, r.used.Load(), r.maxPerRun)
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	r.used.Add(1)
	return nil
}

// Used returns the number of requests issued in the current run.
func (r *RateLimiter) Used() int64 {
	return r.used.Load()
}

// Remaining returns the number of requests left in the current run's budget.
func (r *RateLimiter) Remaining() int64 {
	remaining := r.maxPerRun - r.used.Load()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Reset restores the full budget. Called at the start of each watch-mode
// re-run.
func (r *RateLimiter) Reset() {
	r.used.Store(0)
}
