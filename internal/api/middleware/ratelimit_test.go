package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdesk/task-manager/internal/core/ports"
)

type countingLimiter struct {
	max  int
	hits map[string]int
	err  error
}

func (l *countingLimiter) Allow(_ context.Context, key string) (ports.RateDecision, error) {
	if l.err != nil {
		return ports.RateDecision{}, l.err
	}
	l.hits[key]++
	n := l.hits[key]
	remaining := l.max - n
	if remaining < 0 {
		remaining = 0
	}
	return ports.RateDecision{Allowed: n <= l.max, Limit: l.max, Remaining: remaining, ResetIn: 30 * time.Second}, nil
}

func newLimitedEcho(limiter ports.RateLimiter) *echo.Echo {
	e := echo.New()
	e.POST("/api/auth/login", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, RateLimit(limiter, KeyByIPAndPath(), zerolog.Nop()))
	return e
}

func post(e *echo.Echo, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = ip + ":1234"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_RejectsOverQuota(t *testing.T) {
	limiter := &countingLimiter{max: 2, hits: map[string]int{}}
	e := newLimitedEcho(limiter)

	first := post(e, "10.0.0.1")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "30", first.Header().Get("X-RateLimit-Reset"))

	require.Equal(t, http.StatusOK, post(e, "10.0.0.1").Code)

	blocked := post(e, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "0", blocked.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "30", blocked.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, post(e, "10.0.0.2").Code)
}

func TestRateLimit_KeyIncludesRoute(t *testing.T) {
	limiter := &countingLimiter{max: 5, hits: map[string]int{}}
	e := newLimitedEcho(limiter)

	post(e, "10.0.0.1")

	assert.Equal(t, map[string]int{"path:/api/auth/login:ip:10.0.0.1": 1}, limiter.hits)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	e := newLimitedEcho(&countingLimiter{err: errors.New("redis down")})

	rec := post(e, "10.0.0.1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestRateLimit_NilLimiterIsNoop(t *testing.T) {
	e := newLimitedEcho(nil)

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, post(e, "10.0.0.1").Code)
	}
}
