package authorization

import (
	"github.com/gin-gonic/gin"

	"github.com/itops-inc/itdesk/internal/shared/constants"
)

// Actor is the minimal identity every authorization decision consumes.
type Actor struct {
	ID    uint
	Role  UserRole
	Email string
}

func (a Actor) IsAdmin() bool {
	return a.Role.IsAdmin()
}

// SetActor stores the actor and its flattened fields on the gin context.
func SetActor(c *gin.Context, actor Actor) {
	c.Set(constants.ContextKeyActor, actor)
	c.Set(constants.ContextKeyUserID, actor.ID)
	c.Set(constants.ContextKeyUserRole, actor.Role.String())
	c.Set(constants.ContextKeyUserEmail, actor.Email)
}

// ActorFromContext returns the actor set by the auth middleware.
func ActorFromContext(c *gin.Context) (Actor, bool) {
	v, ok := c.Get(constants.ContextKeyActor)
	if !ok {
		return Actor{}, false
	}
	actor, ok := v.(Actor)
	return actor, ok
}

// CanAccessResourceByOwnerID is the owner-or-admin predicate.
func CanAccessResourceByOwnerID(actor Actor, ownerID uint) bool {
	return actor.IsAdmin() || actor.ID == ownerID
}
