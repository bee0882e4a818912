package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/itops-inc/itdesk/internal/infrastructure/permission"
	"github.com/itops-inc/itdesk/internal/infrastructure/ratelimit"
	tickethandlers "github.com/itops-inc/itdesk/internal/interfaces/http/handlers/ticket"
	"github.com/itops-inc/itdesk/internal/interfaces/http/middleware"
	"github.com/itops-inc/itdesk/internal/shared/authorization"
)

type TicketRouteConfig struct {
	TicketHandler        *tickethandlers.TicketHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	RateLimitMiddleware  *middleware.RateLimitMiddleware
	CreateLimits         ratelimit.Limits
}

func SetupTicketRoutes(api *gin.RouterGroup, config *TicketRouteConfig) {
	perm := func(action string) gin.HandlerFunc {
		return config.PermissionMiddleware.RequirePermission(permission.ResourceTicket, action)
	}

	tickets := api.Group("/tickets")
	tickets.Use(config.AuthMiddleware.RequireAuth())
	{
		// Collection operations (no ID parameter)
		tickets.GET("", perm(permission.ActionRead), config.TicketHandler.ListTickets)
		tickets.POST("",
			perm(permission.ActionCreate),
			config.RateLimitMiddleware.Limit("ticket-create", config.CreateLimits),
			config.TicketHandler.CreateTicket)

		// Specific action endpoints
		tickets.POST("/:id/view", perm(permission.ActionRead), config.TicketHandler.RecordView)
		tickets.POST("/:id/comments", perm(permission.ActionComment), config.TicketHandler.AddComment)

		// Generic parameterized routes
		tickets.GET("/:id", perm(permission.ActionRead), config.TicketHandler.GetTicket)
		tickets.PATCH("/:id", perm(permission.ActionUpdate), config.TicketHandler.UpdateTicket)
		tickets.DELETE("/:id",
			perm(permission.ActionDelete),
			authorization.RequireAdmin(),
			config.TicketHandler.DeleteTicket)
	}
}
