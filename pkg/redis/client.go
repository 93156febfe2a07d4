package redis

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	client     *redis.Client
	clientOnce sync.Once
	clientErr  error
)

// ErrNotConfigured is returned when no Redis URL was supplied
var ErrNotConfigured = errors.New("redis: UPSTASH_REDIS_URL not configured")

// Config holds Redis connection configuration
type Config struct {
	URL      string // redis:// or rediss:// for TLS
	Password string // overrides the password embedded in URL
}

// windowScript increments a counter and starts its TTL on first use.
// Returns {count, ttl_seconds}.
var windowScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`)

// Client returns the shared client, or nil when Redis is unavailable
func Client() *redis.Client {
	return client
}

// Initialize connects the shared client once. Later calls return the first result.
func Initialize(cfg Config) error {
	clientOnce.Do(func() {
		opts, err := options(cfg)
		if err != nil {
			clientErr = err
			return
		}

		c := redis.NewClient(opts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := c.Ping(ctx).Err(); err != nil {
			_ = c.Close()
			clientErr = fmt.Errorf("redis: connection failed: %w", err)
			return
		}
		client = c
	})

	return clientErr
}

func options(cfg Config) (*redis.Options, error) {
	if cfg.URL == "" {
		return nil, ErrNotConfigured
	}

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	useTLS := parsedURL.Scheme == "rediss"
	addr := parsedURL.Host
	if parsedURL.Port() == "" {
		addr = parsedURL.Hostname() + ":6379"
	}

	password := cfg.Password
	if password == "" && parsedURL.User != nil {
		password, _ = parsedURL.User.Password()
	}

	opts := &redis.Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	}
	if useTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return opts, nil
}

// IncrWindow counts one hit against key in a fixed window and
// reports the count so far and the time until the window resets.
func IncrWindow(ctx context.Context, c redis.Scripter, key string, window time.Duration) (int, time.Duration, error) {
	res, err := windowScript.Run(ctx, c, []string{key}, int(window.Seconds())).Int64Slice()
	if err != nil {
		return 0, 0, fmt.Errorf("redis: window increment failed: %w", err)
	}
	if len(res) < 2 {
		return 0, 0, fmt.Errorf("redis: unexpected window result %v", res)
	}
	return int(res[0]), time.Duration(res[1]) * time.Second, nil
}

// Close closes the Redis connection gracefully.
func Close() error {
	if client != nil {
		return client.Close()
	}
	return nil
}

// HealthCheck pings the shared client
func HealthCheck(ctx context.Context) error {
	if client == nil {
		return errors.New("redis: client not initialized")
	}
	return client.Ping(ctx).Err()
}
