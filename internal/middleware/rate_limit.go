package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"hela9_backend/internal/logger"
	"hela9_backend/internal/metrics"
	"hela9_backend/internal/ratelimit"
	"hela9_backend/pkg/apperrors"
)

// AuthRateLimit ограничивает число попыток с одного IP в окне.
// Без лимитера (Redis не настроен) ничего не делает.
func AuthRateLimit(scope string, limiter *ratelimit.Limiter, reg *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		allowed, count := limiter.Allow(c.Request.Context(), scope, c.ClientIP())
		if !allowed {
			reg.RateLimited(scope)
			logger.CtxWarn(c.Request.Context(), "Rate limit exceeded", "scope", scope, "ip", c.ClientIP(), "count", count)
			c.Header("Retry-After", strconv.Itoa(int(limiter.Window().Seconds())))
			apperrors.HandleError(c, apperrors.ErrTooManyAttempts)
			return
		}
		c.Next()
	}
}
