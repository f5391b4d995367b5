package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"deals-backend/metrics"

	"github.com/gin-gonic/gin"
)

type bucket struct {
	tokens float64
	seen   time.Time
}

// RateLimiter is a per-client token bucket. A bucket left alone for a full
// window is full again, so the sweeper can drop it without changing behavior.
type RateLimiter struct {
	name   string
	burst  float64
	perSec float64
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket

	done     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter allows limit requests per window for each client IP. name
// labels rejections in metrics. Call Stop when the server shuts down.
func NewRateLimiter(name string, limit int, window time.Duration) *RateLimiter {
	return newRateLimiter(name, limit, window, time.Now)
}

func newRateLimiter(name string, limit int, window time.Duration, now func() time.Time) *RateLimiter {
	rl := &RateLimiter{
		name:    name,
		burst:   float64(limit),
		perSec:  float64(limit) / window.Seconds(),
		window:  window,
		now:     now,
		buckets: make(map[string]*bucket),
		done:    make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

// Stop ends the sweeper goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.evictIdle()
		}
	}
}

func (rl *RateLimiter) evictIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.window)
	for key, b := range rl.buckets {
		if b.seen.Before(cutoff) {
			delete(rl.buckets, key)
		}
	}
}

// take spends one token for key. When none is left it reports how long until
// the next one arrives.
func (rl *RateLimiter) take(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: rl.burst, seen: now}
		rl.buckets[key] = b
	}

	b.tokens = math.Min(rl.burst, b.tokens+now.Sub(b.seen).Seconds()*rl.perSec)
	b.seen = now

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	wait := time.Duration((1 - b.tokens) / rl.perSec * float64(time.Second))
	return false, wait
}

func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.buckets)
}

// Middleware rejects over-limit clients with 429 and a Retry-After header.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, wait := rl.take(c.ClientIP())
		if !allowed {
			metrics.RateLimitRejectionsTotal.WithLabelValues(rl.name).Inc()
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests. Please try again later."})
			return
		}
		c.Next()
	}
}
