package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/redis"

	"github.com/gin-gonic/gin"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis
	KeyPrefix string
	// Whether to fail closed (reject) when Redis is unavailable
	FailClosed bool
	// Counter overrides the Redis/in-memory choice; tests use it
	Counter WindowCounter
}

// WindowCounter counts hits for a key in a fixed window
type WindowCounter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int, time.Time, error)
}

// rateLimitEntry tracks request count for a key (in-memory fallback)
type rateLimitEntry struct {
	count   int
	resetAt time.Time
	mu      sync.Mutex
}

// MemoryCounter is the in-process fallback used when Redis is unavailable
type MemoryCounter struct {
	entries sync.Map
	now     func() time.Time
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{now: time.Now}
}

func (m *MemoryCounter) Incr(_ context.Context, key string, window time.Duration) (int, time.Time, error) {
	now := m.now()
	entryI, _ := m.entries.LoadOrStore(key, &rateLimitEntry{resetAt: now.Add(window)})
	entry := entryI.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(window)
	}
	entry.count++

	return entry.count, entry.resetAt, nil
}

// Sweep drops expired windows
func (m *MemoryCounter) Sweep() {
	now := m.now()
	m.entries.Range(func(key, value interface{}) bool {
		entry := value.(*rateLimitEntry)
		entry.mu.Lock()
		if now.After(entry.resetAt) {
			m.entries.Delete(key)
		}
		entry.mu.Unlock()
		return true
	})
}

type redisCounter struct{}

func (redisCounter) Incr(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	client := redis.Client()
	if client == nil {
		return 0, time.Time{}, redis.ErrNotConfigured
	}
	count, ttl, err := redis.IncrWindow(ctx, client, key, window)
	if err != nil {
		return 0, time.Time{}, err
	}
	return count, time.Now().Add(ttl), nil
}

var (
	fallbackCounter = NewMemoryCounter()
	cleanupOnce     sync.Once
)

func startCleanup() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		for range ticker.C {
			fallbackCounter.Sweep()
		}
	}()
}

// ContactRateLimitConfig limits contact submissions per client IP
func ContactRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:contact:",
		FailClosed: false, // Fail open: a Redis outage should not hide the contact form
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// GlobalRateLimitConfig applies to every route
func GlobalRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:ip:",
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// RateLimitMiddleware creates a rate limiting middleware with the given config.
// Uses Redis when available, falls back to in-memory when not.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	cleanupOnce.Do(startCleanup)

	return func(c *gin.Context) {
		fullKey := config.KeyPrefix + config.KeyFunc(c)

		count, resetAt, err := incr(c.Request.Context(), config, fullKey)
		if err != nil {
			if config.FailClosed {
				logger.Log.Errorw("Rate limit store unavailable", "error", err, "path", c.FullPath())
				response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
				c.Abort()
				return
			}
			count, resetAt, _ = fallbackCounter.Incr(c.Request.Context(), fullKey, config.Window)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > config.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Log.Warnw("Rate limit triggered",
				"ip", c.ClientIP(),
				"path", c.FullPath(),
				"request_id", c.GetString(response.RequestIDKey),
			)

			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		remaining := config.Limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		c.Next()
	}
}

func incr(ctx context.Context, config RateLimitConfig, key string) (int, time.Time, error) {
	if config.Counter != nil {
		return config.Counter.Incr(ctx, key, config.Window)
	}
	if redis.Client() != nil {
		return redisCounter{}.Incr(ctx, key, config.Window)
	}
	return fallbackCounter.Incr(ctx, key, config.Window)
}
