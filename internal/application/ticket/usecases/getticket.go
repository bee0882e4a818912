package usecases

import (
	"context"
	"fmt"

	"github.com/itops-inc/itdesk/internal/domain/ticket"
	"github.com/itops-inc/itdesk/internal/shared/authorization"
	"github.com/itops-inc/itdesk/internal/shared/logger"
)

type GetTicketQuery struct {
	TicketID uint
	Actor    authorization.Actor
}

type GetTicketResult struct {
	Ticket   *ticket.Ticket
	Relation ticket.Relation
}

type GetTicketUseCase struct {
	ticketRepo  ticket.TicketRepository
	commentRepo ticket.CommentRepository
	logger      logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		logger:      logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*GetTicketResult, error) {
	t, err := uc.ticketRepo.GetByID(ctx, query.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", query.TicketID, "error", err)
		return nil, fmt.Errorf("failed to load ticket: %w", err)
	}
	if t == nil {
		return nil, ticketNotFound()
	}

	decision := ticket.CanAccessTicket(t, query.Actor)
	if !decision.Allowed {
		uc.logger.Warnw("ticket access denied", "ticket_id", query.TicketID, "actor_id", query.Actor.ID)
		return nil, ticketForbidden()
	}

	comments, err := uc.commentRepo.ListByTicketID(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to load comments", "ticket_id", t.ID(), "error", err)
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}
	t.SetComments(comments)

	return &GetTicketResult{Ticket: t, Relation: decision.Relation}, nil
}
