package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/P3chys/scholarshub-api/internal/apperrors"
)

// counter increments a windowed request count and reports how long the
// window has left.
type counter interface {
	incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// RateLimiter provides fixed-window rate limiting backed by Redis or by
// process memory.
type RateLimiter struct {
	counter counter
}

// NewRedisRateLimiter shares counters across instances through client.
func NewRedisRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{counter: &redisCounter{client: client}}
}

// NewMemoryRateLimiter keeps counters in process. Limits are per instance.
func NewMemoryRateLimiter() *RateLimiter {
	return &RateLimiter{counter: newMemoryCounter(time.Now)}
}

// RateLimitByIP limits requests per route and client IP.
func (rl *RateLimiter) RateLimitByIP(maxRequests int, window time.Duration) gin.HandlerFunc {
	return rl.limit(maxRequests, window, func(c *gin.Context) string {
		return fmt.Sprintf("rate_limit:ip:%s:%s", c.FullPath(), c.ClientIP())
	})
}

// RateLimitByUser limits requests per route and authenticated user. It must
// run after AuthRequired; anonymous requests fall back to the client IP.
func (rl *RateLimiter) RateLimitByUser(maxRequests int, window time.Duration) gin.HandlerFunc {
	return rl.limit(maxRequests, window, func(c *gin.Context) string {
		if userID := c.GetString("user_id"); userID != "" {
			return fmt.Sprintf("rate_limit:user:%s:%s", c.FullPath(), userID)
		}
		return fmt.Sprintf("rate_limit:ip:%s:%s", c.FullPath(), c.ClientIP())
	})
}

func (rl *RateLimiter) limit(maxRequests int, window time.Duration, keyFor func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxRequests <= 0 {
			c.Next()
			return
		}

		count, ttl, err := rl.counter.incr(c.Request.Context(), keyFor(c), window)
		if err != nil {
			// If the backend fails, allow the request but record the error
			_ = c.Error(fmt.Errorf("rate limiter error: %w", err))
			c.Next()
			return
		}

		if count > int64(maxRequests) {
			c.Header("Retry-After", fmt.Sprintf("%d", int(ttl.Seconds())))
			abortWithError(c, apperrors.Clone(apperrors.ErrRateLimited, "Too many requests. Please try again later."))
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", maxRequests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", maxRequests-int(count)))

		c.Next()
	}
}

type redisCounter struct {
	client *redis.Client
}

func (r *redisCounter) incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}

	// Set expiry on first request
	if count == 1 {
		r.client.Expire(ctx, key, window)
		return count, window, nil
	}

	ttl, err := r.client.TTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		ttl = window
	}
	return count, ttl, nil
}

type memoryWindow struct {
	count   int64
	resetAt time.Time
}

type memoryCounter struct {
	mu        sync.Mutex
	windows   map[string]memoryWindow
	now       func() time.Time
	nextSweep time.Time
}

func newMemoryCounter(now func() time.Time) *memoryCounter {
	return &memoryCounter{windows: make(map[string]memoryWindow), now: now}
}

func (m *memoryCounter) incr(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweep(now, window)

	w, ok := m.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = memoryWindow{resetAt: now.Add(window)}
	}
	w.count++
	m.windows[key] = w

	return w.count, w.resetAt.Sub(now), nil
}

// sweep drops expired windows at most once per window, so keys that are
// never seen again do not pile up.
func (m *memoryCounter) sweep(now time.Time, window time.Duration) {
	if now.Before(m.nextSweep) {
		return
	}
	for key, w := range m.windows {
		if !now.Before(w.resetAt) {
			delete(m.windows, key)
		}
	}
	m.nextSweep = now.Add(window)
}
