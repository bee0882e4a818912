package mappers

import (
	"github.com/itops-inc/itdesk/internal/domain/user"
	"github.com/itops-inc/itdesk/internal/infrastructure/persistence/models"
	"github.com/itops-inc/itdesk/internal/shared/authorization"
)

func UserToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Department: u.Department,
		Role:       u.Role.String(),
	}
}

func UserToDomain(m *models.UserModel) *user.User {
	return &user.User{
		ID:         m.ID,
		Name:       m.Name,
		Email:      m.Email,
		Department: m.Department,
		Role:       authorization.ParseUserRole(m.Role),
	}
}
