package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tourdesk/backend/internal/interfaces/http/dto"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client key. Each bucket refills at
// requests/window and holds up to burst tokens.
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientLimiter
	limit    rate.Limit
	burst    int
	requests int
	idleTTL  time.Duration
	now      func() time.Time

	stopChan  chan struct{}
	stopOnce  sync.Once
	waitGroup sync.WaitGroup
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter allowing requests per window with the
// given burst, and starts the idle-client janitor. Call Stop when done.
func NewRateLimiter(requests int, window time.Duration, burst int) *RateLimiter {
	rl := newRateLimiter(requests, window, burst, time.Now)
	rl.waitGroup.Add(1)
	go rl.cleanupLoop(window * 2)
	return rl
}

func newRateLimiter(requests int, window time.Duration, burst int, now func() time.Time) *RateLimiter {
	if requests <= 0 {
		requests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	if burst <= 0 {
		burst = requests
	}
	return &RateLimiter{
		clients:  make(map[string]*clientLimiter),
		limit:    rate.Limit(float64(requests) / window.Seconds()),
		burst:    burst,
		requests: requests,
		idleTTL:  window * 2,
		now:      now,
		stopChan: make(chan struct{}),
	}
}

func (rl *RateLimiter) cleanupLoop(interval time.Duration) {
	defer rl.waitGroup.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopChan:
			return
		}
	}
}

// cleanup drops clients idle for longer than two windows
func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	for key, c := range rl.clients {
		if now.Sub(c.lastSeen) > rl.idleTTL {
			delete(rl.clients, key)
		}
	}
}

// Allow reports whether a request from key may proceed, and the tokens left
func (rl *RateLimiter) Allow(key string) (bool, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	c, ok := rl.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = c
	}
	c.lastSeen = now

	allowed := c.limiter.AllowN(now, 1)
	remaining := int(math.Max(0, math.Floor(c.limiter.TokensAt(now))))
	return allowed, remaining
}

// Len returns the number of tracked clients
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

// Stop halts the janitor. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.stopChan)
	})
	rl.waitGroup.Wait()
}

// RateLimit returns a middleware that limits requests per client IP
func RateLimit(rl *RateLimiter) gin.HandlerFunc {
	return RateLimitWithKey(rl, func(c *gin.Context) string {
		return c.ClientIP()
	})
}

// RateLimitWithKey returns a middleware that limits requests by a custom key
func RateLimitWithKey(rl *RateLimiter, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	limit := strconv.Itoa(rl.burst)
	return func(c *gin.Context) {
		allowed, remaining := rl.Allow(keyFunc(c))
		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(rl.retryAfterSeconds()))
			abortWithError(c, http.StatusTooManyRequests, dto.ErrCodeRateLimited,
				"Too many requests, please try again later")
			return
		}
		c.Next()
	}
}

// retryAfterSeconds is the time to refill one token, at least one second
func (rl *RateLimiter) retryAfterSeconds() int {
	if rl.limit <= 0 {
		return 1
	}
	return int(math.Max(1, math.Ceil(1/float64(rl.limit))))
}
