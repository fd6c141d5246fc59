package github

import (
	"context"
	"sync"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/time/rate"
)

const (
	// authedRate throttles proactively to ~4320/hr against the
	// 5000/hr authenticated quota.
	authedRate = 1.2

	// anonRate keeps unauthenticated use inside the 60/hr quota.
	anonRate = 1.0 / 60.0

	anonBurst = 5

	// minBuffer is the remaining-quota floor below which we wait for
	// the reset instead of spending the last requests.
	minBuffer = 10
)

// RateLimiter pairs proactive throttling (token bucket) with
// reactive tracking of the quota GitHub reports on every response.
type RateLimiter struct {
	mu        sync.Mutex
	remaining int // -1 until the first response arrives
	resetAt   time.Time
	bucket    *rate.Limiter
}

// NewRateLimiter creates a limiter tuned to the auth mode.
func NewRateLimiter(authenticated bool) *RateLimiter {
	limit, burst := rate.Limit(anonRate), anonBurst
	if authenticated {
		limit, burst = rate.Limit(authedRate), 1
	}
	return &RateLimiter{
		remaining: -1,
		bucket:    rate.NewLimiter(limit, burst),
	}
}

// Wait blocks until it is safe to make a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	remaining, resetAt := r.remaining, r.resetAt
	r.mu.Unlock()

	if remaining >= 0 && remaining < minBuffer && time.Now().Before(resetAt) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(resetAt)):
		}
	}
	return nil
}

// Update records the quota state from a response.
func (r *RateLimiter) Update(resp *gh.Response) {
	if resp == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.remaining = resp.Rate.Remaining
	r.resetAt = resp.Rate.Reset.Time
}
