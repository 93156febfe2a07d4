package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portfolio-backend/internal/delivery/http/middleware"
	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type stubCounter struct {
	counts map[string]int
	err    error
}

func (s *stubCounter) Incr(_ context.Context, key string, window time.Duration) (int, time.Time, error) {
	if s.err != nil {
		return 0, time.Time{}, s.err
	}
	s.counts[key]++
	return s.counts[key], time.Now().Add(window), nil
}

func TestRateLimitMiddleware(t *testing.T) {
	counter := &stubCounter{counts: map[string]int{}}
	cfg := middleware.ContactRateLimitConfig(2, time.Minute)
	cfg.Counter = counter

	r := gin.New()
	r.POST("/contact", middleware.RateLimitMiddleware(cfg), func(c *gin.Context) { c.Status(http.StatusAccepted) })

	for i := 0; i < 2; i++ {
		w := serve(r, httptest.NewRequest(http.MethodPost, "/contact", nil))
		assert.Equal(t, http.StatusAccepted, w.Code)
	}

	w := serve(r, httptest.NewRequest(http.MethodPost, "/contact", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, 3, counter.counts["rl:contact:192.0.2.1"])
}

func TestRateLimitMiddlewareStoreDown(t *testing.T) {
	t.Run("Should fail open to the in-memory counter", func(t *testing.T) {
		cfg := middleware.ContactRateLimitConfig(5, time.Minute)
		cfg.KeyPrefix = "rl:test-open:"
		cfg.Counter = &stubCounter{err: errors.New("connection refused")}

		r := gin.New()
		r.POST("/contact", middleware.RateLimitMiddleware(cfg), func(c *gin.Context) { c.Status(http.StatusAccepted) })

		w := serve(r, httptest.NewRequest(http.MethodPost, "/contact", nil))
		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("Should reject when configured to fail closed", func(t *testing.T) {
		cfg := middleware.GlobalRateLimitConfig(5, time.Minute)
		cfg.FailClosed = true
		cfg.Counter = &stubCounter{err: errors.New("connection refused")}

		r := gin.New()
		r.GET("/", middleware.RateLimitMiddleware(cfg), func(c *gin.Context) { c.Status(http.StatusOK) })

		w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestMemoryCounter(t *testing.T) {
	m := middleware.NewMemoryCounter()
	ctx := context.Background()

	n, _, err := m.Incr(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, _, _ = m.Incr(ctx, "k", time.Minute)
	assert.Equal(t, 2, n)

	n, _, _ = m.Incr(ctx, "other", time.Minute)
	assert.Equal(t, 1, n)

	n, _, _ = m.Incr(ctx, "short", time.Nanosecond)
	assert.Equal(t, 1, n)
	time.Sleep(time.Millisecond)
	n, _, _ = m.Incr(ctx, "short", time.Nanosecond)
	assert.Equal(t, 1, n, "expired window starts over")
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORSMiddleware("https://jesse.dev/", true))
	r.POST("/v1/contact", func(c *gin.Context) { c.Status(http.StatusAccepted) })

	cases := []struct {
		name   string
		origin string
		code   int
		allow  string
	}{
		{"configured frontend", "https://jesse.dev", http.StatusNoContent, "https://jesse.dev"},
		{"localhost in release mode", "http://localhost:3000", http.StatusForbidden, ""},
		{"unknown origin", "https://evil.example", http.StatusForbidden, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/v1/contact", nil)
			req.Header.Set("Origin", tc.origin)
			w := serve(r, req)
			assert.Equal(t, tc.code, w.Code)
			assert.Equal(t, tc.allow, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}

	t.Run("Should pass same-origin requests", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodPost, "/v1/contact", nil))
		assert.Equal(t, http.StatusAccepted, w.Code)
	})

	t.Run("Should allow localhost outside release mode", func(t *testing.T) {
		dev := gin.New()
		dev.Use(middleware.CORSMiddleware("", false))
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		assert.Equal(t, http.StatusNoContent, serve(dev, req).Code)
	})
}

func TestSessionMiddleware(t *testing.T) {
	sessions, err := auth.NewSessionManager("secret", time.Hour)
	require.NoError(t, err)

	var seen string
	r := gin.New()
	r.Use(middleware.SessionMiddleware(sessions, false))
	r.GET("/", func(c *gin.Context) {
		seen = middleware.SessionID(c)
		c.Status(http.StatusOK)
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Len(t, w.Result().Cookies(), 1)
	cookie := w.Result().Cookies()[0]
	assert.Equal(t, middleware.SessionCookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	first := seen
	_, err = uuid.Parse(first)
	assert.NoError(t, err)

	t.Run("Should reuse a valid session cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookie)
		w := serve(r, req)
		assert.Equal(t, first, seen)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("Should replace a tampered cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: cookie.Value + "x"})
		w := serve(r, req)
		assert.NotEqual(t, first, seen)
		assert.Len(t, w.Result().Cookies(), 1)
	})
}

func TestSessionMiddlewareRefreshesAgingToken(t *testing.T) {
	issuer, err := auth.NewSessionManager("secret", time.Hour)
	require.NoError(t, err)
	// Same key, longer lifetime: an hour-long token has less than half of it left
	sessions, err := auth.NewSessionManager("secret", 3*time.Hour)
	require.NoError(t, err)

	id, token, err := issuer.Issue()
	require.NoError(t, err)

	var seen string
	r := gin.New()
	r.Use(middleware.SessionMiddleware(sessions, false))
	r.GET("/", func(c *gin.Context) {
		seen = middleware.SessionID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	w := serve(r, req)

	assert.Equal(t, id, seen, "the session survives the refresh")
	require.Len(t, w.Result().Cookies(), 1)
	refreshed := w.Result().Cookies()[0]
	assert.NotEqual(t, token, refreshed.Value)

	s, err := sessions.Parse(refreshed.Value)
	require.NoError(t, err)
	assert.Equal(t, id, s.ID)
	assert.False(t, sessions.NeedsRefresh(s))
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(response.RequestIDKey)) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(w.Body.String())
	assert.NoError(t, err)
	assert.Equal(t, w.Body.String(), w.Header().Get(middleware.RequestIDHeader))

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, id)
	assert.Equal(t, id, serve(r, req).Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "<script>")
	assert.NotEqual(t, "<script>", serve(r, req).Body.String())
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/conflict", func(c *gin.Context) {
		c.Error(apperror.Conflict("Your previous message is still being sent.", errors.New("in flight")))
	})
	r.GET("/boom", func(c *gin.Context) {
		c.Error(errors.New("dial tcp: secret host"))
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/conflict", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "still being sent")
	assert.NotContains(t, w.Body.String(), "in flight")

	w = serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret host")
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(middleware.SecurityHeadersMiddleware(true))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/v1/swagger/index.html", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "form-action 'self'")

	w = serve(r, httptest.NewRequest(http.MethodGet, "/v1/swagger/index.html", nil))
	assert.Empty(t, w.Header().Get("Content-Security-Policy"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}
