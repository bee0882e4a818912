package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/itops-inc/itdesk/internal/infrastructure/ratelimit"
	"github.com/itops-inc/itdesk/internal/shared/authorization"
	"github.com/itops-inc/itdesk/internal/shared/errors"
	"github.com/itops-inc/itdesk/internal/shared/i18n"
	"github.com/itops-inc/itdesk/internal/shared/logger"
	"github.com/itops-inc/itdesk/internal/shared/utils"
)

// RateLimitMiddleware throttles a route per authenticated actor, falling
// back to the client IP when no actor is set.
type RateLimitMiddleware struct {
	limiter ratelimit.RateLimiter
	logger  logger.Interface
}

func NewRateLimitMiddleware(limiter ratelimit.RateLimiter, logger logger.Interface) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter, logger: logger}
}

// Limit scopes the counters by name so separate routes do not share a
// budget.
func (m *RateLimitMiddleware) Limit(name string, limits ratelimit.Limits) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:ip:%s", name, c.ClientIP())
		if actor, ok := authorization.ActorFromContext(c); ok {
			key = fmt.Sprintf("%s:user:%d", name, actor.ID)
		}

		allowed, err := m.limiter.Allow(c.Request.Context(), key, limits)
		if err != nil {
			// Limiter outage must not block ticket creation.
			m.logger.Warnw("rate limiter unavailable, allowing request", "key", key, "error", err)
			c.Next()
			return
		}
		if !allowed {
			m.logger.Infow("rate limit exceeded", "key", key)
			utils.AbortWithError(c, errors.NewRateLimitedError("rate limit exceeded, please try again later").
				WithKey(i18n.KeyRateLimited))
			return
		}

		c.Next()
	}
}
