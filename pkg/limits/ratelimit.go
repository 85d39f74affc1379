// Package limits rate-limits client traffic per live session.
package limits

import (
	"errors"
	"sync"
	"time"
)

// ErrRateLimitExceeded is returned for traffic over the limit.
var ErrRateLimitExceeded = errors.New("rate limit exceeded")

// RateLimiter limits the rate of operations per key.
type RateLimiter interface {
	// Allow returns true if the operation is allowed.
	Allow(key string) bool

	// AllowN returns true if n operations are allowed.
	AllowN(key string, n int) bool

	// Forget drops the state kept for key.
	Forget(key string)
}

// TokenBucket implements a token bucket rate limiter. Each key starts with
// a full bucket of burst tokens that refills at rate tokens per second.
type TokenBucket struct {
	rate    float64
	burst   int
	now     func() time.Time
	buckets sync.Map // key -> *bucket
}

type bucket struct {
	tokens   float64
	lastFill time.Time
	mu       sync.Mutex
}

// NewTokenBucket creates a new token bucket rate limiter.
func NewTokenBucket(rate float64, burst int) *TokenBucket {
	return &TokenBucket{rate: rate, burst: burst, now: time.Now}
}

// WithClock replaces the limiter's time source.
func (tb *TokenBucket) WithClock(now func() time.Time) *TokenBucket {
	tb.now = now
	return tb
}

// Allow checks if an operation is allowed for the given key.
func (tb *TokenBucket) Allow(key string) bool {
	return tb.AllowN(key, 1)
}

// AllowN checks if n operations are allowed for the given key.
func (tb *TokenBucket) AllowN(key string, n int) bool {
	b := tb.getBucket(key)

	b.mu.Lock()
	defer b.mu.Unlock()

	now := tb.now()
	b.tokens += now.Sub(b.lastFill).Seconds() * tb.rate
	if b.tokens > float64(tb.burst) {
		b.tokens = float64(tb.burst)
	}
	b.lastFill = now

	if b.tokens >= float64(n) {
		b.tokens -= float64(n)
		return true
	}
	return false
}

// Forget implements RateLimiter.
func (tb *TokenBucket) Forget(key string) {
	tb.buckets.Delete(key)
}

// Len returns the number of tracked keys.
func (tb *TokenBucket) Len() int {
	n := 0
	tb.buckets.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (tb *TokenBucket) getBucket(key string) *bucket {
	if b, ok := tb.buckets.Load(key); ok {
		return b.(*bucket)
	}

	newBucket := &bucket{
		tokens:   float64(tb.burst),
		lastFill: tb.now(),
	}

	actual, _ := tb.buckets.LoadOrStore(key, newBucket)
	return actual.(*bucket)
}

// Unlimited allows everything.
type Unlimited struct{}

func (Unlimited) Allow(string) bool       { return true }
func (Unlimited) AllowN(string, int) bool { return true }
func (Unlimited) Forget(string)           {}
