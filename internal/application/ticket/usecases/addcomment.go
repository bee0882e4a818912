package usecases

import (
	"context"
	"fmt"

	"github.com/itops-inc/itdesk/internal/domain/ticket"
	"github.com/itops-inc/itdesk/internal/shared/authorization"
	"github.com/itops-inc/itdesk/internal/shared/errors"
	"github.com/itops-inc/itdesk/internal/shared/logger"
)

type AddCommentCommand struct {
	TicketID uint
	Content  string
	Actor    authorization.Actor
}

type AddCommentResult struct {
	Comment *ticket.Comment
}

type AddCommentUseCase struct {
	ticketRepo  ticket.TicketRepository
	commentRepo ticket.CommentRepository
	logger      logger.Interface
	now         clock
}

func NewAddCommentUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		logger:      logger,
		now:         defaultClock,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*AddCommentResult, error) {
	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, fmt.Errorf("failed to load ticket: %w", err)
	}
	if t == nil {
		return nil, ticketNotFound()
	}
	if !ticket.CanAccessTicket(t, cmd.Actor).Allowed {
		return nil, ticketForbidden()
	}

	comment, err := ticket.NewComment(t.ID(), cmd.Actor.ID, cmd.Content, uc.now())
	if err != nil {
		return nil, errors.NewFieldValidationError(map[string]string{"content": err.Error()})
	}

	if err := uc.commentRepo.Save(ctx, comment); err != nil {
		uc.logger.Errorw("failed to save comment", "ticket_id", t.ID(), "error", err)
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}

	uc.logger.Infow("comment added", "ticket_id", t.ID(), "comment_id", comment.ID(), "author_id", cmd.Actor.ID)
	return &AddCommentResult{Comment: comment}, nil
}
