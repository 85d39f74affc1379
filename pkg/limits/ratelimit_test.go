package limits

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucket(t *testing.T) {
	now := time.Unix(0, 0)
	tb := NewTokenBucket(10, 3).WithClock(func() time.Time { return now })

	for i := 0; i < 3; i++ {
		assert.True(t, tb.Allow("a"), "burst %d", i)
	}
	assert.False(t, tb.Allow("a"))
	assert.True(t, tb.Allow("b"), "keys are independent")

	now = now.Add(100 * time.Millisecond)
	assert.True(t, tb.Allow("a"), "one token refilled")
	assert.False(t, tb.Allow("a"))

	now = now.Add(time.Hour)
	assert.False(t, tb.AllowN("a", 4), "refill caps at burst")
	assert.True(t, tb.AllowN("a", 3))
}

func TestTokenBucket_Forget(t *testing.T) {
	tb := NewTokenBucket(1, 1)
	assert.True(t, tb.Allow("s1"))
	assert.False(t, tb.Allow("s1"))
	assert.Equal(t, 1, tb.Len())

	tb.Forget("s1")
	assert.Equal(t, 0, tb.Len())
	assert.True(t, tb.Allow("s1"))
}

func TestUnlimited(t *testing.T) {
	var rl RateLimiter = Unlimited{}
	for i := 0; i < 1000; i++ {
		assert.True(t, rl.Allow("x"))
	}
	assert.True(t, rl.AllowN("x", 1<<20))
}
