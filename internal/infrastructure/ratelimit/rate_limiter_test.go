package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowExhaustsBurstPerKey(t *testing.T) {
	now := time.Now()
	rl := NewRateLimiter(map[string]Policy{ActionLogin: {Burst: 2, Every: time.Minute}})
	rl.now = func() time.Time { return now }

	ok, _ := rl.Allow("10.0.0.1", ActionLogin)
	assert.True(t, ok)
	ok, _ = rl.Allow("10.0.0.1", ActionLogin)
	assert.True(t, ok)

	ok, wait := rl.Allow("10.0.0.1", ActionLogin)
	assert.False(t, ok)
	assert.Greater(t, wait, time.Duration(0))

	ok, _ = rl.Allow("10.0.0.2", ActionLogin)
	assert.True(t, ok, "other clients keep their own bucket")

	now = now.Add(time.Minute)
	ok, _ = rl.Allow("10.0.0.1", ActionLogin)
	assert.True(t, ok, "a token is refilled after the interval")
}

func TestCleanupDropsIdleBuckets(t *testing.T) {
	now := time.Now()
	rl := NewRateLimiter(DefaultPolicies(5))
	rl.now = func() time.Time { return now }

	rl.Allow("u1", ActionBid)
	rl.Allow("u2", "unknown-action")
	assert.Len(t, rl.buckets, 2)

	now = now.Add(2 * time.Hour)
	rl.Cleanup(time.Hour)
	assert.Empty(t, rl.buckets)
}
