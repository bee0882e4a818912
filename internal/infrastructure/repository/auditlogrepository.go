package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/itops-inc/itdesk/internal/domain/audit"
	"github.com/itops-inc/itdesk/internal/infrastructure/persistence/mappers"
	"github.com/itops-inc/itdesk/internal/shared/biztime"
	"github.com/itops-inc/itdesk/internal/shared/db"
)

// AuditLogRepository only appends; rows are never updated or deleted.
type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Append(ctx context.Context, entry *audit.Entry) error {
	model, err := mappers.AuditEntryToModel(entry)
	if err != nil {
		return err
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to append audit log: %w", err)
	}
	entry.ID = model.ID
	entry.CreatedAt = biztime.FromMillis(model.CreatedAt)
	return nil
}
