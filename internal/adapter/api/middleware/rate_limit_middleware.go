package middleware

import (
	"github.com/labstack/echo/v4"

	"sunstone/internal/infrastructure/ratelimit"
	"sunstone/pkg/errors"
	"sunstone/pkg/logger"
	"sunstone/pkg/response"
)

type RateLimitMiddleware struct {
	limiter *ratelimit.RateLimiter
}

func NewRateLimitMiddleware(limiter *ratelimit.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
	}
}

// Limit throttles the named action per identity. Anonymous requests are
// keyed by client IP.
func (m *RateLimitMiddleware) Limit(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key, ok := c.Get("uid").(string)
			if !ok || key == "" {
				key = c.RealIP()
			}

			allowed, wait := m.limiter.Allow(key, action)
			if !allowed {
				logger.Warn("Rate limit hit: key=%s action=%s wait=%v", key, action, wait)
				return response.Error(c, errors.TooManyRequests("Slow down and try again shortly"))
			}

			return next(c)
		}
	}
}
