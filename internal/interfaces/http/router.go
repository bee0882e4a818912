package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/itops-inc/itdesk/internal/infrastructure/config"
	"github.com/itops-inc/itdesk/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	*Container
}

// NewRouter wires every dependency and returns a router whose routes are not
// yet registered; call SetupRoutes before serving.
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Router, error) {
	c, err := NewContainer(db, redisClient, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{Container: c}, nil
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// StartBackgroundJobs starts the scheduler, if one is configured.
func (r *Router) StartBackgroundJobs() {
	if r.scheduler != nil {
		r.scheduler.Start()
	}
}

// Shutdown stops background jobs and releases resources owned by the
// router. The database handle is owned by the caller.
func (r *Router) Shutdown() {
	if r.scheduler != nil {
		if err := r.scheduler.Stop(); err != nil {
			r.log.Warnw("failed to stop scheduler", "error", err)
		}
	}
	if r.redis != nil {
		if err := r.redis.Close(); err != nil {
			r.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
