package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/itops-inc/itdesk/internal/infrastructure/permission"
	"github.com/itops-inc/itdesk/internal/infrastructure/ratelimit"
	emailrequesthandlers "github.com/itops-inc/itdesk/internal/interfaces/http/handlers/emailrequest"
	"github.com/itops-inc/itdesk/internal/interfaces/http/middleware"
	"github.com/itops-inc/itdesk/internal/shared/authorization"
)

type EmailRequestRouteConfig struct {
	Handler              *emailrequesthandlers.Handler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	RateLimitMiddleware  *middleware.RateLimitMiddleware
	CreateLimits         ratelimit.Limits
}

func SetupEmailRequestRoutes(api *gin.RouterGroup, config *EmailRequestRouteConfig) {
	perm := func(action string) gin.HandlerFunc {
		return config.PermissionMiddleware.RequirePermission(permission.ResourceEmailRequest, action)
	}

	requests := api.Group("/email-requests")
	requests.Use(config.AuthMiddleware.RequireAuth())
	{
		requests.GET("", perm(permission.ActionRead), config.Handler.List)
		requests.POST("",
			perm(permission.ActionCreate),
			config.RateLimitMiddleware.Limit("email-request-create", config.CreateLimits),
			config.Handler.Create)

		requests.GET("/:id", perm(permission.ActionRead), config.Handler.Get)
		requests.DELETE("/:id",
			perm(permission.ActionDelete),
			authorization.RequireAdmin(),
			config.Handler.Delete)
	}
}
