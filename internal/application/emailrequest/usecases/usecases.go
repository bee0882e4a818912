package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/itops-inc/itdesk/internal/domain/emailrequest"
	"github.com/itops-inc/itdesk/internal/shared/authorization"
	"github.com/itops-inc/itdesk/internal/shared/biztime"
	"github.com/itops-inc/itdesk/internal/shared/errors"
	"github.com/itops-inc/itdesk/internal/shared/i18n"
	"github.com/itops-inc/itdesk/internal/shared/logger"
	"github.com/itops-inc/itdesk/internal/shared/utils"
)

func requestNotFound() error {
	return errors.NewNotFoundError("Email request not found").WithKey(i18n.KeyEmailRequestMissing)
}

func requestForbidden() error {
	return errors.NewForbiddenError("You do not have access to this email request").WithKey(i18n.KeyEmailRequestDenied)
}

type CreateEmailRequestCommand struct {
	Details emailrequest.Details
	Actor   authorization.Actor
}

type CreateEmailRequestUseCase struct {
	repo   emailrequest.Repository
	logger logger.Interface
	now    func() time.Time
}

func NewCreateEmailRequestUseCase(repo emailrequest.Repository, logger logger.Interface) *CreateEmailRequestUseCase {
	return &CreateEmailRequestUseCase{repo: repo, logger: logger, now: biztime.NowUTC}
}

func (uc *CreateEmailRequestUseCase) Execute(ctx context.Context, cmd CreateEmailRequestCommand) (*emailrequest.EmailRequest, error) {
	e, err := emailrequest.NewEmailRequest(cmd.Details, cmd.Actor.ID, uc.now())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.repo.Save(ctx, e); err != nil {
		uc.logger.Errorw("failed to save email request", "actor_id", cmd.Actor.ID, "error", err)
		return nil, fmt.Errorf("failed to save email request: %w", err)
	}
	uc.logger.Infow("email request created", "request_id", e.ID(), "actor_id", cmd.Actor.ID)
	return e, nil
}

type ListEmailRequestsQuery struct {
	Page  int
	Limit int
	Actor authorization.Actor
}

type ListEmailRequestsResult struct {
	Items []*emailrequest.EmailRequest
	Total int64
	Page  int
	Limit int
}

type ListEmailRequestsUseCase struct {
	repo   emailrequest.Repository
	logger logger.Interface
}

func NewListEmailRequestsUseCase(repo emailrequest.Repository, logger logger.Interface) *ListEmailRequestsUseCase {
	return &ListEmailRequestsUseCase{repo: repo, logger: logger}
}

func (uc *ListEmailRequestsUseCase) Execute(ctx context.Context, query ListEmailRequestsQuery) (*ListEmailRequestsResult, error) {
	page := utils.ValidatePagination(query.Page, query.Limit)
	filter := emailrequest.Filter{Page: page.Page, PageSize: page.PageSize}
	if !query.Actor.IsAdmin() {
		owner := query.Actor.ID
		filter.RequestedBy = &owner
	}

	items, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list email requests", "actor_id", query.Actor.ID, "error", err)
		return nil, fmt.Errorf("failed to list email requests: %w", err)
	}
	return &ListEmailRequestsResult{Items: items, Total: total, Page: page.Page, Limit: page.PageSize}, nil
}

type GetEmailRequestUseCase struct {
	repo   emailrequest.Repository
	logger logger.Interface
}

func NewGetEmailRequestUseCase(repo emailrequest.Repository, logger logger.Interface) *GetEmailRequestUseCase {
	return &GetEmailRequestUseCase{repo: repo, logger: logger}
}

func (uc *GetEmailRequestUseCase) Execute(ctx context.Context, id uint, actor authorization.Actor) (*emailrequest.EmailRequest, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load email request: %w", err)
	}
	if e == nil {
		return nil, requestNotFound()
	}
	if !emailrequest.CanAccessEmailRequest(e, actor) {
		uc.logger.Warnw("email request access denied", "request_id", id, "actor_id", actor.ID)
		return nil, requestForbidden()
	}
	return e, nil
}

type DeleteEmailRequestUseCase struct {
	repo   emailrequest.Repository
	logger logger.Interface
}

func NewDeleteEmailRequestUseCase(repo emailrequest.Repository, logger logger.Interface) *DeleteEmailRequestUseCase {
	return &DeleteEmailRequestUseCase{repo: repo, logger: logger}
}

// Execute returns the deleted record's audit snapshot.
func (uc *DeleteEmailRequestUseCase) Execute(ctx context.Context, id uint, actor authorization.Actor) (map[string]any, error) {
	if !actor.IsAdmin() {
		return nil, requestForbidden()
	}
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load email request: %w", err)
	}
	if e == nil {
		return nil, requestNotFound()
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.logger.Errorw("failed to delete email request", "request_id", id, "error", err)
		return nil, fmt.Errorf("failed to delete email request: %w", err)
	}
	uc.logger.Infow("email request deleted", "request_id", id, "actor_id", actor.ID)
	return e.Snapshot(), nil
}
