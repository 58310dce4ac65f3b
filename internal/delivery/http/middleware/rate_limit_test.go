package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(l *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/contact", l.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func postFrom(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/contact", nil)
	req.RemoteAddr = ip + ":12345"
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_MemoryFallback(t *testing.T) {
	l := NewRateLimiter(RateLimitConfig{Limit: 2, Window: time.Minute}, nil)
	r := newLimitedRouter(l)

	w := postFrom(r, "10.0.0.1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, postFrom(r, "10.0.0.1").Code)

	w = postFrom(r, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"success":false,"message":"Rate limit exceeded. Please try again later."}`, w.Body.String())

	// other clients have their own window
	assert.Equal(t, http.StatusOK, postFrom(r, "10.0.0.2").Code)
}

func TestRateLimiter_WindowResets(t *testing.T) {
	l := NewRateLimiter(RateLimitConfig{Limit: 1, Window: time.Minute}, nil)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	r := newLimitedRouter(l)

	assert.Equal(t, http.StatusOK, postFrom(r, "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, postFrom(r, "10.0.0.1").Code)

	now = now.Add(61 * time.Second)
	assert.Equal(t, http.StatusOK, postFrom(r, "10.0.0.1").Code)
}

func TestRateLimiter_ZeroLimitDisables(t *testing.T) {
	l := NewRateLimiter(RateLimitConfig{Limit: 0, Window: time.Minute}, nil)
	r := newLimitedRouter(l)

	for range 10 {
		w := postFrom(r, "10.0.0.1")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimiter_SweepDropsExpired(t *testing.T) {
	l := NewRateLimiter(RateLimitConfig{Limit: 5, Window: time.Minute}, nil)
	now := time.Now()
	l.entries["old"] = &rateLimitEntry{count: 3, resetAt: now.Add(-time.Second)}
	l.entries["live"] = &rateLimitEntry{count: 1, resetAt: now.Add(time.Minute)}

	l.sweep(now)

	assert.NotContains(t, l.entries, "old")
	assert.Contains(t, l.entries, "live")
}
