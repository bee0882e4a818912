package usecases

import (
	"context"
	"fmt"

	"github.com/itops-inc/itdesk/internal/domain/ticket"
	vo "github.com/itops-inc/itdesk/internal/domain/ticket/valueobjects"
	"github.com/itops-inc/itdesk/internal/shared/authorization"
	"github.com/itops-inc/itdesk/internal/shared/errors"
	"github.com/itops-inc/itdesk/internal/shared/logger"
)

type UpdateTicketCommand struct {
	TicketID uint
	Changes  ticket.RawPatch
	Actor    authorization.Actor
}

// UpdateTicketResult carries everything the caller needs to decide on
// notifications and audit. Patch is exactly what was persisted.
type UpdateTicketResult struct {
	Ticket        *ticket.Ticket
	PriorStatus   vo.TicketStatus
	Before        map[string]any
	Patch         ticket.Patch
	Relation      ticket.Relation
	Changed       bool
	StatusChanged bool
}

type UpdateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
	now        clock
}

func NewUpdateTicketUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
		now:        defaultClock,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*UpdateTicketResult, error) {
	uc.logger.Infow("executing update ticket use case",
		"ticket_id", cmd.TicketID,
		"actor_id", cmd.Actor.ID,
		"fields", cmd.Changes.Fields(),
	)

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, fmt.Errorf("failed to load ticket: %w", err)
	}
	if t == nil {
		return nil, ticketNotFound()
	}

	relation := ticket.CanAccessTicket(t, cmd.Actor).Relation
	if !ticket.CanUpdate(relation) {
		uc.logger.Warnw("ticket update denied",
			"ticket_id", cmd.TicketID,
			"actor_id", cmd.Actor.ID,
			"relation", relation,
		)
		return nil, ticketForbidden()
	}

	effective := cmd.Changes.Filter(relation)
	if dropped := len(cmd.Changes) - len(effective); dropped > 0 {
		uc.logger.Debugw("dropped fields outside allow-list",
			"ticket_id", cmd.TicketID,
			"relation", relation,
			"dropped", dropped,
		)
	}

	patch, fieldErrs := effective.Validate()
	if len(fieldErrs) > 0 {
		return nil, errors.NewFieldValidationError(fieldErrs)
	}

	priorStatus := t.Status()
	before := t.Snapshot()
	result := &UpdateTicketResult{
		Ticket:      t,
		PriorStatus: priorStatus,
		Before:      before,
		Patch:       ticket.Patch{},
		Relation:    relation,
	}

	if len(patch) == 0 {
		uc.logger.Infow("update has no effective fields, nothing written", "ticket_id", cmd.TicketID)
		return result, nil
	}

	now := uc.now()
	statusChanged := false
	if v, ok := patch[ticket.FieldStatus]; ok {
		next := v.(vo.TicketStatus)
		statusChanged = next != priorStatus
		if statusChanged && next.IsResolvedFamily() && t.ResolvedAt() == nil {
			patch[ticket.FieldResolvedAt] = now
		}
	}

	if err := uc.ticketRepo.Update(ctx, t.ID(), patch, now); err != nil {
		if errors.IsNotFoundError(err) {
			uc.logger.Warnw("ticket deleted during update", "ticket_id", t.ID())
			return nil, ticketNotFound()
		}
		uc.logger.Errorw("failed to update ticket", "ticket_id", t.ID(), "error", err)
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}
	t.Apply(patch, now)

	result.Patch = patch
	result.Changed = true
	result.StatusChanged = statusChanged

	uc.logger.Infow("ticket updated",
		"ticket_id", t.ID(),
		"relation", relation,
		"status_changed", statusChanged,
	)
	return result, nil
}
