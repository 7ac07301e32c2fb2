package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tourdesk/backend/internal/interfaces/http/dto"
)

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newClockedLimiter(requests int, window time.Duration, burst int) (*RateLimiter, *stepClock) {
	clock := &stepClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	return newRateLimiter(requests, window, burst, clock.Now), clock
}

func TestRateLimiter(t *testing.T) {
	t.Run("allows the burst then blocks", func(t *testing.T) {
		limiter, _ := newClockedLimiter(60, time.Minute, 3)

		for i := 0; i < 3; i++ {
			ok, _ := limiter.Allow("client1")
			assert.True(t, ok, "request %d should be allowed", i+1)
		}
		ok, remaining := limiter.Allow("client1")
		assert.False(t, ok)
		assert.Equal(t, 0, remaining)
	})

	t.Run("separate buckets per client", func(t *testing.T) {
		limiter, _ := newClockedLimiter(60, time.Minute, 1)

		ok, _ := limiter.Allow("clientA")
		assert.True(t, ok)
		ok, _ = limiter.Allow("clientA")
		assert.False(t, ok)

		ok, _ = limiter.Allow("clientB")
		assert.True(t, ok)
	})

	t.Run("refills over time", func(t *testing.T) {
		limiter, clock := newClockedLimiter(60, time.Minute, 1)

		ok, _ := limiter.Allow("client3")
		require.True(t, ok)
		ok, _ = limiter.Allow("client3")
		require.False(t, ok)

		clock.Advance(time.Second)
		ok, _ = limiter.Allow("client3")
		assert.True(t, ok)
	})

	t.Run("cleanup drops idle clients", func(t *testing.T) {
		limiter, clock := newClockedLimiter(10, time.Minute, 5)
		limiter.Allow("idle")
		clock.Advance(90 * time.Second)
		limiter.Allow("active")

		clock.Advance(45 * time.Second)
		limiter.cleanup()

		assert.Equal(t, 1, limiter.Len())
	})

	t.Run("stop is idempotent", func(t *testing.T) {
		limiter := NewRateLimiter(10, time.Minute, 5)
		limiter.Stop()
		limiter.Stop()
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter, _ := newClockedLimiter(60, time.Minute, 2)

	router := gin.New()
	router.Use(RequestID(), RateLimit(limiter))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := send()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, send().Code)

	w = send()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Equal(t, dto.ErrCodeRateLimited, decodeError(t, w)["code"])
}

func TestRateLimitWithKey(t *testing.T) {
	limiter, _ := newClockedLimiter(60, time.Minute, 1)

	router := gin.New()
	router.Use(RateLimitWithKey(limiter, func(c *gin.Context) string {
		return c.GetHeader("X-Client")
	}))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	for _, tc := range []struct {
		client string
		status int
	}{
		{"a", http.StatusOK},
		{"a", http.StatusTooManyRequests},
		{"b", http.StatusOK},
	} {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Client", tc.client)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, tc.status, w.Code, "client %s", tc.client)
	}
}
