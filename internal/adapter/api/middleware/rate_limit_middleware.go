package middleware

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"unisell/internal/infrastructure/ratelimit"
	"unisell/pkg/errors"
	"unisell/pkg/logger"
	"unisell/pkg/response"
)

type RateLimitMiddleware struct {
	limiter *ratelimit.RateLimiter
}

func NewRateLimitMiddleware(limiter *ratelimit.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// Limit throttles action per authenticated user, or per client IP before login.
func (m *RateLimitMiddleware) Limit(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			if uid, ok := c.Get(ContextUserID).(string); ok && uid != "" {
				key = uid
			}

			allowed, wait := m.limiter.Allow(key, action)
			if !allowed {
				logger.Warn("rate limit: %s blocked for %s (retry in %v)", key, action, wait)
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				return response.Error(c, errors.TooManyRequests("Too many requests, please slow down"))
			}
			return next(c)
		}
	}
}
