package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/itops-inc/itdesk/internal/shared/authorization"
	"github.com/itops-inc/itdesk/internal/shared/errors"
	"github.com/itops-inc/itdesk/internal/shared/i18n"
	"github.com/itops-inc/itdesk/internal/shared/logger"
	"github.com/itops-inc/itdesk/internal/shared/utils"
)

// PolicyEnforcer answers whether a role may perform action on resource.
type PolicyEnforcer interface {
	Enforce(role, resource, action string) (bool, error)
}

type PermissionMiddleware struct {
	enforcer PolicyEnforcer
	logger   logger.Interface
}

func NewPermissionMiddleware(enforcer PolicyEnforcer, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{enforcer: enforcer, logger: logger}
}

// RequirePermission gates a route on the actor's role. Record-level checks
// still happen in the use cases.
func (m *PermissionMiddleware) RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := authorization.ActorFromContext(c)
		if !ok {
			utils.AbortWithError(c, errors.NewUnauthorizedError("user not authenticated").WithKey(i18n.KeyUnauthorized))
			return
		}

		allowed, err := m.enforcer.Enforce(actor.Role.String(), resource, action)
		if err != nil {
			m.logger.Errorw("permission check failed",
				"error", err, "user_id", actor.ID, "role", actor.Role, "resource", resource, "action", action)
			utils.AbortWithError(c, err)
			return
		}
		if !allowed {
			m.logger.Warnw("permission denied",
				"user_id", actor.ID, "role", actor.Role, "resource", resource, "action", action)
			utils.AbortWithError(c, errors.NewForbiddenError("insufficient permissions").WithKey(i18n.KeyPermissionDenied))
			return
		}

		c.Next()
	}
}
