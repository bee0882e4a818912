package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/itops-inc/itdesk/internal/domain/ticket"
	"github.com/itops-inc/itdesk/internal/infrastructure/persistence/models"
	"github.com/itops-inc/itdesk/internal/shared/biztime"
	"github.com/itops-inc/itdesk/internal/shared/db"
)

type TicketViewRepository struct {
	db *gorm.DB
}

func NewTicketViewRepository(db *gorm.DB) *TicketViewRepository {
	return &TicketViewRepository{db: db}
}

// Upsert keeps at most one row per (ticket, user); a repeat view only moves
// viewed_at forward.
func (r *TicketViewRepository) Upsert(ctx context.Context, view ticket.View) error {
	model := &models.TicketViewModel{
		TicketID: view.TicketID,
		UserID:   view.UserID,
		ViewedAt: biztime.ToMillis(view.ViewedAt),
	}
	err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ticket_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"viewed_at"}),
		}).
		Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to record ticket view: %w", err)
	}
	return nil
}

func (r *TicketViewRepository) ViewedTicketIDs(ctx context.Context, userID uint, ticketIDs []uint) (map[uint]bool, error) {
	viewed := make(map[uint]bool, len(ticketIDs))
	if len(ticketIDs) == 0 {
		return viewed, nil
	}

	var ids []uint
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketViewModel{}).
		Where("user_id = ? AND ticket_id IN ?", userID, ticketIDs).
		Pluck("ticket_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to load ticket views: %w", err)
	}
	for _, id := range ids {
		viewed[id] = true
	}
	return viewed, nil
}

func (r *TicketViewRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Where("ticket_id = ?", ticketID).
		Delete(&models.TicketViewModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete ticket views: %w", err)
	}
	return nil
}

func (r *TicketViewRepository) DeleteViewedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := db.GetTxFromContext(ctx, r.db).
		Where("viewed_at < ?", biztime.ToMillis(cutoff)).
		Delete(&models.TicketViewModel{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to prune ticket views: %w", res.Error)
	}
	return res.RowsAffected, nil
}
