package usecases

import (
	"context"
	"fmt"

	"github.com/itops-inc/itdesk/internal/domain/ticket"
	vo "github.com/itops-inc/itdesk/internal/domain/ticket/valueobjects"
	"github.com/itops-inc/itdesk/internal/shared/authorization"
	"github.com/itops-inc/itdesk/internal/shared/errors"
	"github.com/itops-inc/itdesk/internal/shared/logger"
	"github.com/itops-inc/itdesk/internal/shared/utils"
)

type CreateTicketCommand struct {
	Title       string              `json:"title" validate:"notblank,max=200"`
	Description string              `json:"description" validate:"notblank,max=5000"`
	Category    string              `json:"category" validate:"required,oneof=HARDWARE SOFTWARE NETWORK ACCOUNT EMAIL PRINTER OTHER"`
	Priority    string              `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	Actor       authorization.Actor `json:"-"`
}

type CreateTicketResult struct {
	Ticket *ticket.Ticket
	Event  ticket.CreatedEvent
}

type CreateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
	now        clock
}

func NewCreateTicketUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
		now:        defaultClock,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	uc.logger.Infow("executing create ticket use case", "reporter_id", cmd.Actor.ID, "category", cmd.Category)

	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	now := uc.now()
	t, err := ticket.NewTicket(
		cmd.Title,
		cmd.Description,
		vo.Category(cmd.Category),
		vo.Priority(cmd.Priority),
		cmd.Actor.ID,
		now,
	)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Save(ctx, t); err != nil {
		uc.logger.Errorw("failed to save ticket", "reporter_id", cmd.Actor.ID, "error", err)
		return nil, fmt.Errorf("failed to save ticket: %w", err)
	}

	uc.logger.Infow("ticket created", "ticket_id", t.ID(), "reporter_id", t.ReportedByID())
	return &CreateTicketResult{
		Ticket: t,
		Event: ticket.CreatedEvent{
			TicketID:   t.ID(),
			ReporterID: t.ReportedByID(),
			OccurredAt: now,
		},
	}, nil
}
