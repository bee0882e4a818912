package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/itops-inc/itdesk/internal/infrastructure/config"
	"github.com/itops-inc/itdesk/internal/infrastructure/metrics"
	"github.com/itops-inc/itdesk/internal/infrastructure/permission"
	"github.com/itops-inc/itdesk/internal/infrastructure/ratelimit"
	"github.com/itops-inc/itdesk/internal/infrastructure/scheduler"
	"github.com/itops-inc/itdesk/internal/interfaces/http/middleware"
	"github.com/itops-inc/itdesk/internal/shared/logger"
)

// Container holds the infrastructure components, repositories, use cases and
// handlers, wired once at startup. Nothing in here is a global.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	metrics  *metrics.Metrics
	enforcer *permission.Enforcer
	limiter  ratelimit.RateLimiter

	repos *repositories
	svcs  *services
	ucs   *allUseCases
	hdlrs *allHandlers

	// nil when scheduler.enabled is false
	scheduler *scheduler.SchedulerManager

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimitMiddleware  *middleware.RateLimitMiddleware
}

// NewContainer builds every dependency in order. redisClient may be nil; the
// rate limiter then keeps its counters in memory.
func NewContainer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
		redis:  redisClient,
	}

	// Section 1: Infrastructure - metrics, permission policy, rate limiter
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: Persistence and outbound notifications
	c.repos = newRepositories(db)
	c.svcs = newServices(c.repos, cfg, log)

	// Section 3: Use cases, side effects and handlers
	c.ucs = newUseCases(c.repos, log)
	c.hdlrs = newHandlers(c.ucs, c.svcs, c.metrics, cfg, log)

	// Section 4: Background jobs
	if err := c.initScheduler(); err != nil {
		return nil, err
	}

	// Section 5: Middlewares
	c.authMiddleware = middleware.NewAuthMiddleware(c.svcs.verifier, c.repos.userRepo, log.Named("auth"))
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, log.Named("permission"))
	c.rateLimitMiddleware = middleware.NewRateLimitMiddleware(c.limiter, log.Named("ratelimit"))

	return c, nil
}

func (c *Container) initInfrastructure() error {
	c.metrics = metrics.New()

	enforcer, err := permission.NewEnforcer(c.db, c.log.Named("permission"))
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	policy, err := permission.LoadPolicyFile(c.cfg.Permission.PolicyFile)
	if err != nil {
		return fmt.Errorf("failed to load permission policy: %w", err)
	}
	if err := enforcer.Seed(policy); err != nil {
		return fmt.Errorf("failed to seed permission policy: %w", err)
	}
	c.enforcer = enforcer

	if c.redis != nil {
		c.limiter = ratelimit.NewRedisRateLimiter(c.redis)
		c.log.Infow("rate limiter backed by redis", "addr", c.cfg.Redis.GetAddr())
	} else {
		c.limiter = ratelimit.NewMemoryRateLimiter()
		c.log.Infow("redis disabled, rate limiter counters kept in memory")
	}
	return nil
}

func (c *Container) initScheduler() error {
	if !c.cfg.Scheduler.Enabled {
		return nil
	}
	manager, err := scheduler.NewSchedulerManager(c.log.Named("scheduler"))
	if err != nil {
		return fmt.Errorf("failed to create scheduler manager: %w", err)
	}
	if err := manager.RegisterViewPruneJob(c.ucs.pruneViewsUC, c.cfg.Scheduler.ViewPruneInterval); err != nil {
		return fmt.Errorf("failed to register ticket view prune job: %w", err)
	}
	c.scheduler = manager
	return nil
}

func (c *Container) createLimits() ratelimit.Limits {
	return ratelimit.Limits{
		PerMinute: c.cfg.RateLimit.CreatePerMinute,
		PerHour:   c.cfg.RateLimit.CreatePerHour,
	}
}
