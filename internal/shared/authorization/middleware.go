package authorization

import (
	"github.com/gin-gonic/gin"

	"github.com/itops-inc/itdesk/internal/shared/errors"
	"github.com/itops-inc/itdesk/internal/shared/utils"
)

// RequireAdmin aborts with 403 unless the authenticated actor is an ADMIN.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok || !actor.IsAdmin() {
			utils.AbortWithError(c, errors.NewForbiddenError("admin access required"))
			return
		}
		c.Next()
	}
}
