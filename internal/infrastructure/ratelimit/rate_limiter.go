package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	ActionLogin      = "login"
	ActionSignup     = "signup"
	ActionBid        = "bid"
	ActionComment    = "comment"
	ActionCreateItem = "create_item"
	ActionUpload     = "upload"
)

// Policy allows Burst events at once, refilled at one per Every.
type Policy struct {
	Burst int
	Every time.Duration
}

var defaultPolicy = Policy{Burst: 20, Every: 3 * time.Second}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client and action.
type RateLimiter struct {
	policies map[string]Policy
	buckets  map[string]*bucket
	mutex    sync.Mutex
	now      func() time.Time
}

func NewRateLimiter(policies map[string]Policy) *RateLimiter {
	p := make(map[string]Policy, len(policies))
	for action, policy := range policies {
		p[action] = policy
	}
	return &RateLimiter{
		policies: p,
		buckets:  make(map[string]*bucket),
		now:      time.Now,
	}
}

// DefaultPolicies limits authentication to authPerMinute attempts per minute and
// writes to a steady trickle.
func DefaultPolicies(authPerMinute int) map[string]Policy {
	if authPerMinute <= 0 {
		authPerMinute = 10
	}
	auth := Policy{Burst: authPerMinute, Every: time.Minute / time.Duration(authPerMinute)}
	return map[string]Policy{
		ActionLogin:      auth,
		ActionSignup:     auth,
		ActionBid:        {Burst: 10, Every: 6 * time.Second},
		ActionComment:    {Burst: 10, Every: 6 * time.Second},
		ActionCreateItem: {Burst: 5, Every: 12 * time.Second},
		ActionUpload:     {Burst: 10, Every: 6 * time.Second},
	}
}

// Allow consumes a token for key and action. When refused it returns how long
// until the next token is available.
func (rl *RateLimiter) Allow(key, action string) (bool, time.Duration) {
	now := rl.now()
	b := rl.bucket(key+":"+action, action, now)

	r := b.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, 0
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

func (rl *RateLimiter) bucket(key, action string, now time.Time) *bucket {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	b, ok := rl.buckets[key]
	if !ok {
		policy, ok := rl.policies[action]
		if !ok {
			policy = defaultPolicy
		}
		b = &bucket{limiter: rate.NewLimiter(rate.Every(policy.Every), policy.Burst)}
		rl.buckets[key] = b
	}
	b.lastSeen = now
	return b
}

// Cleanup drops buckets idle for longer than maxIdle.
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	for key, b := range rl.buckets {
		if now.Sub(b.lastSeen) > maxIdle {
			delete(rl.buckets, key)
		}
	}
}

// StartCleanupRoutine runs Cleanup every interval until stop is closed.
func (rl *RateLimiter) StartCleanupRoutine(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rl.Cleanup(time.Hour)
			case <-stop:
				return
			}
		}
	}()
}
