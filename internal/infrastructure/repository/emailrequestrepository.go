package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/itops-inc/itdesk/internal/domain/emailrequest"
	"github.com/itops-inc/itdesk/internal/infrastructure/persistence/mappers"
	"github.com/itops-inc/itdesk/internal/infrastructure/persistence/models"
	"github.com/itops-inc/itdesk/internal/shared/db"
)

type EmailRequestRepository struct {
	db *gorm.DB
}

func NewEmailRequestRepository(db *gorm.DB) *EmailRequestRepository {
	return &EmailRequestRepository{db: db}
}

func (r *EmailRequestRepository) Save(ctx context.Context, e *emailrequest.EmailRequest) error {
	model := mappers.EmailRequestToModel(e)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save email request: %w", err)
	}
	e.SetID(model.ID)
	return nil
}

func (r *EmailRequestRepository) GetByID(ctx context.Context, id uint) (*emailrequest.EmailRequest, error) {
	var model models.EmailRequestModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find email request: %w", err)
	}
	return mappers.EmailRequestToDomain(&model), nil
}

func (r *EmailRequestRepository) List(ctx context.Context, filter emailrequest.Filter) ([]*emailrequest.EmailRequest, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.EmailRequestModel{})
	if filter.RequestedBy != nil {
		query = query.Where("requested_by = ?", *filter.RequestedBy)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count email requests: %w", err)
	}

	query = query.Scopes(db.NewestFirst())
	if filter.PageSize > 0 {
		query = query.Scopes(db.Paginate(filter.Page, filter.PageSize))
	}

	var rows []models.EmailRequestModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list email requests: %w", err)
	}

	out := make([]*emailrequest.EmailRequest, 0, len(rows))
	for i := range rows {
		out = append(out, mappers.EmailRequestToDomain(&rows[i]))
	}
	return out, total, nil
}

func (r *EmailRequestRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.EmailRequestModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete email request: %w", err)
	}
	return nil
}
