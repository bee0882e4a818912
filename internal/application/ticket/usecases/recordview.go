package usecases

import (
	"context"
	"fmt"

	"github.com/itops-inc/itdesk/internal/domain/ticket"
	"github.com/itops-inc/itdesk/internal/shared/authorization"
	"github.com/itops-inc/itdesk/internal/shared/logger"
)

type RecordViewCommand struct {
	TicketID uint
	Actor    authorization.Actor
}

type RecordViewUseCase struct {
	ticketRepo ticket.TicketRepository
	viewRepo   ticket.ViewRepository
	logger     logger.Interface
	now        clock
}

func NewRecordViewUseCase(
	ticketRepo ticket.TicketRepository,
	viewRepo ticket.ViewRepository,
	logger logger.Interface,
) *RecordViewUseCase {
	return &RecordViewUseCase{
		ticketRepo: ticketRepo,
		viewRepo:   viewRepo,
		logger:     logger,
		now:        defaultClock,
	}
}

// Execute records a view after checking the actor may read the ticket.
func (uc *RecordViewUseCase) Execute(ctx context.Context, cmd RecordViewCommand) error {
	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return fmt.Errorf("failed to load ticket: %w", err)
	}
	if t == nil {
		return ticketNotFound()
	}
	if !ticket.CanAccessTicket(t, cmd.Actor).Allowed {
		return ticketForbidden()
	}
	return uc.Record(ctx, t.ID(), cmd.Actor.ID)
}

// Record upserts the view row without an access check. Callers must have
// authorized the read already.
func (uc *RecordViewUseCase) Record(ctx context.Context, ticketID, userID uint) error {
	err := uc.viewRepo.Upsert(ctx, ticket.View{
		TicketID: ticketID,
		UserID:   userID,
		ViewedAt: uc.now(),
	})
	if err != nil {
		uc.logger.Warnw("failed to record ticket view", "ticket_id", ticketID, "user_id", userID, "error", err)
		return fmt.Errorf("failed to record ticket view: %w", err)
	}
	return nil
}
