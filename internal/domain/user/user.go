// Package user holds the read-only directory record synchronised from the
// identity provider's token claims.
package user

import (
	"context"
	"strings"

	"github.com/itops-inc/itdesk/internal/shared/authorization"
)

type User struct {
	ID         uint
	Name       string
	Email      string
	Department string
	Role       authorization.UserRole
}

// DisplayName falls back to the email when the provider sent no name.
func (u *User) DisplayName() string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	return u.Email
}

type Repository interface {
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByIDs(ctx context.Context, ids []uint) (map[uint]*User, error)
	// Upsert stores the latest claims for the user.
	Upsert(ctx context.Context, u *User) error
}
