package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/itops-inc/itdesk/internal/domain/user"
	"github.com/itops-inc/itdesk/internal/infrastructure/auth"
	"github.com/itops-inc/itdesk/internal/shared/authorization"
	"github.com/itops-inc/itdesk/internal/shared/constants"
	"github.com/itops-inc/itdesk/internal/shared/errors"
	"github.com/itops-inc/itdesk/internal/shared/i18n"
	"github.com/itops-inc/itdesk/internal/shared/logger"
	"github.com/itops-inc/itdesk/internal/shared/utils"
)

// A user's directory row is refreshed from token claims at most once per
// userSyncInterval. Entries beyond userSyncCacheSize are evicted oldest first.
const (
	userSyncInterval  = 10 * time.Minute
	userSyncCacheSize = 4096
)

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type UserSyncer interface {
	Upsert(ctx context.Context, u *user.User) error
}

type AuthMiddleware struct {
	verifier TokenVerifier
	users    UserSyncer
	logger   logger.Interface

	synced *expirable.LRU[uint, struct{}]
}

// NewAuthMiddleware builds the bearer token check. users may be nil, in
// which case claims are not mirrored into the user directory.
func NewAuthMiddleware(verifier TokenVerifier, users UserSyncer, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		users:    users,
		logger:   logger,
		synced:   expirable.NewLRU[uint, struct{}](userSyncCacheSize, nil, userSyncInterval),
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader(constants.HeaderAuthorization))
		if !ok {
			utils.AbortWithError(c, unauthorized("missing or malformed authorization header"))
			return
		}

		claims, err := m.verifier.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err, "client_ip", c.ClientIP())
			utils.AbortWithError(c, unauthorized("invalid or expired token"))
			return
		}

		actor, err := claims.Actor()
		if err != nil {
			m.logger.Warnw("token carries no usable subject", "error", err)
			utils.AbortWithError(c, unauthorized("invalid token subject"))
			return
		}

		authorization.SetActor(c, actor)
		m.syncUser(c.Request.Context(), claims, actor)

		c.Next()
	}
}

func (m *AuthMiddleware) syncUser(ctx context.Context, claims *auth.Claims, actor authorization.Actor) {
	if m.users == nil {
		return
	}
	if m.synced.Contains(actor.ID) {
		return
	}

	err := m.users.Upsert(ctx, &user.User{
		ID:         actor.ID,
		Name:       claims.Name,
		Email:      claims.Email,
		Department: claims.Department,
		Role:       actor.Role,
	})
	if err != nil {
		m.logger.Warnw("failed to sync user from token claims", "user_id", actor.ID, "error", err)
		return
	}
	m.synced.Add(actor.ID, struct{}{})
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(message string) error {
	return errors.NewUnauthorizedError(message).WithKey(i18n.KeyUnauthorized)
}
