package http

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/itops-inc/itdesk/docs"
	"github.com/itops-inc/itdesk/internal/interfaces/http/middleware"
	"github.com/itops-inc/itdesk/internal/interfaces/http/routes"
)

const healthCheckTimeout = 2 * time.Second

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Recovery(r.log.Named("recovery")))
	r.engine.Use(middleware.AccessLogger(r.log.Named("access")))
	r.engine.Use(middleware.Metrics(r.metrics))
	r.engine.Use(middleware.Locale())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())
	r.engine.Use(middleware.ErrorHandler(r.log))

	r.engine.GET("/healthz", r.healthCheck)
	r.engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.engine.Group("/api")

	routes.SetupTicketRoutes(api, &routes.TicketRouteConfig{
		TicketHandler:        r.hdlrs.ticketHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
		RateLimitMiddleware:  r.rateLimitMiddleware,
		CreateLimits:         r.createLimits(),
	})

	routes.SetupEmailRequestRoutes(api, &routes.EmailRequestRouteConfig{
		Handler:              r.hdlrs.emailRequestHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
		RateLimitMiddleware:  r.rateLimitMiddleware,
		CreateLimits:         r.createLimits(),
	})
}

// healthCheck reports whether the database (and redis, when configured)
// answer a ping.
func (r *Router) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	checks := gin.H{"database": "ok"}
	healthy := true

	sqlDB, err := r.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		r.log.Warnw("health check: database unreachable", "error", err)
		checks["database"] = "unreachable"
		healthy = false
	}

	if r.redis != nil {
		checks["redis"] = "ok"
		if err := r.redis.Ping(ctx).Err(); err != nil {
			r.log.Warnw("health check: redis unreachable", "error", err)
			checks["redis"] = "unreachable"
			healthy = false
		}
	}

	status := nethttp.StatusOK
	state := "ok"
	if !healthy {
		status = nethttp.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(status, gin.H{"status": state, "checks": checks})
}
