package models

import (
	"gorm.io/datatypes"

	"github.com/itops-inc/itdesk/internal/shared/constants"
)

// AuditLogModel is append-only; there is no UpdatedAt.
type AuditLogModel struct {
	ID         uint           `gorm:"primaryKey"`
	Action     string         `gorm:"size:50;not null;index"`
	EntityType string         `gorm:"size:50;not null;index:idx_audit_logs_entity"`
	EntityID   string         `gorm:"size:64;not null;index:idx_audit_logs_entity"`
	ActorID    uint           `gorm:"not null;index"`
	ActorEmail string         `gorm:"size:255"`
	Details    datatypes.JSON `gorm:"type:json"`
	CreatedAt  int64          `gorm:"autoCreateTime:milli;not null;index"`
}

func (AuditLogModel) TableName() string {
	return constants.TableAuditLogs
}
