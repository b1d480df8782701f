package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskdesk/task-manager/internal/core/ports"
	"github.com/taskdesk/task-manager/internal/pkg/metrics"
)

// KeyFunc builds the limiter key for a request.
type KeyFunc func(c echo.Context) string

// KeyByIPAndPath limits each client IP separately on every route.
func KeyByIPAndPath() KeyFunc {
	return func(c echo.Context) string {
		ip := c.RealIP()
		if ip == "" {
			ip = "unknown"
		}
		return "path:" + routeOf(c) + ":ip:" + ip
	}
}

// RateLimit rejects requests over the limiter's quota with 429. Limiter
// errors let the request through.
func RateLimit(limiter ports.RateLimiter, keyFn KeyFunc, log zerolog.Logger) echo.MiddlewareFunc {
	if limiter == nil || keyFn == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method == http.MethodOptions {
				return next(c)
			}

			d, err := limiter.Allow(c.Request().Context(), keyFn(c))
			if err != nil {
				log.Warn().Err(err).Str("path", routeOf(c)).Msg("rate limiter unavailable")
				return next(c)
			}

			reset := int(math.Ceil(d.ResetIn.Seconds()))
			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			h.Set("X-RateLimit-Reset", strconv.Itoa(reset))

			if !d.Allowed {
				if reset > 0 {
					h.Set("Retry-After", strconv.Itoa(reset))
				}
				metrics.RateLimitedTotal.WithLabelValues(routeOf(c)).Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}
}

func routeOf(c echo.Context) string {
	if p := c.Path(); p != "" {
		return p
	}
	return c.Request().URL.Path
}
