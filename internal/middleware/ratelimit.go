package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cinebase/cinebase/pkg/errors"
	"github.com/cinebase/cinebase/pkg/response"
)

// RateLimiter limits requests per (clientIP, route) within a fixed window.
// It is process-local, which suits a single-instance proxy deployment.
type RateLimiter struct {
	maxRequests int
	window      time.Duration

	mu    sync.Mutex
	data  map[string]*rateCounter
	clock func() time.Time
}

type rateCounter struct {
	count     int
	windowEnd time.Time
}

// NewRateLimiter constructs a limiter allowing maxRequests per window.
func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		maxRequests: maxRequests,
		window:      window,
		data:        make(map[string]*rateCounter),
		clock:       time.Now,
	}
}

// Handler returns the gin middleware for this limiter.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.maxRequests <= 0 {
			c.Next()
			return
		}

		key := c.ClientIP() + "|" + c.FullPath()
		count, resetIn := rl.increment(key)

		remaining := rl.maxRequests - count
		if remaining < 0 {
			remaining = 0
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(int(resetIn.Seconds())))

		if count > rl.maxRequests {
			response.Error(c, errors.ErrRateLimit)
			c.Abort()
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) increment(key string) (int, time.Duration) {
	now := rl.clock()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	counter, ok := rl.data[key]
	if !ok || now.After(counter.windowEnd) {
		counter = &rateCounter{windowEnd: now.Add(rl.window)}
		rl.data[key] = counter
	}
	counter.count++

	// Expired counters for other keys are reaped opportunistically so the
	// map does not grow without bound.
	if len(rl.data) > 4096 {
		for k, v := range rl.data {
			if now.After(v.windowEnd) {
				delete(rl.data, k)
			}
		}
	}

	return counter.count, counter.windowEnd.Sub(now)
}

// RateLimit is a convenience wrapper constructing a limiter inline.
func RateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return NewRateLimiter(maxRequests, window).Handler()
}
