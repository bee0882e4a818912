package models

import "github.com/itops-inc/itdesk/internal/shared/constants"

// UserModel mirrors the identity provider's directory. ID is the
// provider's subject, not auto-incremented here.
type UserModel struct {
	ID         uint   `gorm:"primaryKey;autoIncrement:false"`
	Name       string `gorm:"size:200"`
	Email      string `gorm:"size:255;not null;index"`
	Department string `gorm:"size:100"`
	Role       string `gorm:"size:20;not null;default:'USER'"`
	UpdatedAt  int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (UserModel) TableName() string {
	return constants.TableUsers
}

// All lists every model for AutoMigrate in tests and the sqlite dev setup.
func All() []any {
	return []any{
		&TicketModel{},
		&CommentModel{},
		&TicketViewModel{},
		&EmailRequestModel{},
		&AuditLogModel{},
		&UserModel{},
	}
}
