package usecases

import (
	"context"
	"fmt"

	"github.com/itops-inc/itdesk/internal/domain/ticket"
	"github.com/itops-inc/itdesk/internal/shared/authorization"
	"github.com/itops-inc/itdesk/internal/shared/errors"
	"github.com/itops-inc/itdesk/internal/shared/i18n"
	"github.com/itops-inc/itdesk/internal/shared/logger"
)

type DeleteTicketCommand struct {
	TicketID uint
	Actor    authorization.Actor
}

type DeleteTicketResult struct {
	TicketID uint
	Before   map[string]any
}

type DeleteTicketUseCase struct {
	ticketRepo  ticket.TicketRepository
	commentRepo ticket.CommentRepository
	viewRepo    ticket.ViewRepository
	txManager   TxManager
	logger      logger.Interface
}

func NewDeleteTicketUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	viewRepo ticket.ViewRepository,
	txManager TxManager,
	logger logger.Interface,
) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		viewRepo:    viewRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) (*DeleteTicketResult, error) {
	if !cmd.Actor.IsAdmin() {
		uc.logger.Warnw("ticket delete denied", "ticket_id", cmd.TicketID, "actor_id", cmd.Actor.ID)
		return nil, errors.NewForbiddenError("Only administrators can delete tickets").WithKey(i18n.KeyTicketDeleteAdmin)
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, fmt.Errorf("failed to load ticket: %w", err)
	}
	if t == nil {
		return nil, ticketNotFound()
	}
	before := t.Snapshot()

	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.commentRepo.DeleteByTicketID(ctx, t.ID()); err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		if err := uc.viewRepo.DeleteByTicketID(ctx, t.ID()); err != nil {
			return fmt.Errorf("delete views: %w", err)
		}
		return uc.ticketRepo.Delete(ctx, t.ID())
	})
	if err != nil {
		uc.logger.Errorw("failed to delete ticket", "ticket_id", t.ID(), "error", err)
		return nil, fmt.Errorf("failed to delete ticket: %w", err)
	}

	uc.logger.Infow("ticket deleted", "ticket_id", t.ID(), "actor_id", cmd.Actor.ID)
	return &DeleteTicketResult{TicketID: t.ID(), Before: before}, nil
}
