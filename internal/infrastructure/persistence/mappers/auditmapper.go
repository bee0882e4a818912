package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/itops-inc/itdesk/internal/domain/audit"
	"github.com/itops-inc/itdesk/internal/infrastructure/persistence/models"
	"github.com/itops-inc/itdesk/internal/shared/biztime"
)

func AuditEntryToModel(e *audit.Entry) (*models.AuditLogModel, error) {
	details, err := json.Marshal(e.Details)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal audit details: %w", err)
	}
	m := &models.AuditLogModel{
		Action:     string(e.Action),
		EntityType: string(e.EntityType),
		EntityID:   e.EntityID,
		ActorID:    e.ActorID,
		ActorEmail: e.ActorEmail,
		Details:    datatypes.JSON(details),
	}
	if !e.CreatedAt.IsZero() {
		m.CreatedAt = biztime.ToMillis(e.CreatedAt)
	}
	return m, nil
}
