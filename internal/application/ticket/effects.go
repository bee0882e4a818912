// Package ticket wires the side effects that follow a successful ticket
// mutation. Everything here runs detached from the request.
package ticket

import (
	"context"
	"strconv"
	"time"

	"github.com/itops-inc/itdesk/internal/application/ticket/usecases"
	"github.com/itops-inc/itdesk/internal/domain/audit"
	"github.com/itops-inc/itdesk/internal/domain/ticket"
	"github.com/itops-inc/itdesk/internal/shared/authorization"
	"github.com/itops-inc/itdesk/internal/shared/goroutine"
	"github.com/itops-inc/itdesk/internal/shared/logger"
)

type AuditRecorder interface {
	Record(ctx context.Context, entry audit.Entry)
}

type TicketNotifier interface {
	NewTicket(ctx context.Context, t *ticket.Ticket) error
	StatusUpdated(ctx context.Context, t *ticket.Ticket, oldStatus string) error
}

type ViewRecorder interface {
	Record(ctx context.Context, ticketID, userID uint) error
}

type Effects struct {
	audit    AuditRecorder
	notifier TicketNotifier
	views    ViewRecorder
	logger   logger.Interface
	timeout  time.Duration
}

func NewEffects(
	audit AuditRecorder,
	notifier TicketNotifier,
	views ViewRecorder,
	logger logger.Interface,
	timeout time.Duration,
) *Effects {
	return &Effects{
		audit:    audit,
		notifier: notifier,
		views:    views,
		logger:   logger,
		timeout:  timeout,
	}
}

// TicketCreated notifies IT and records TICKET_CREATE.
func (e *Effects) TicketCreated(actor authorization.Actor, res *usecases.CreateTicketResult) {
	t := res.Ticket.Clone()

	goroutine.Detached(e.logger, "ticket-created-notify", e.timeout, func(ctx context.Context) error {
		return e.notifier.NewTicket(ctx, t)
	})
	e.record(actor, audit.ActionTicketCreate, audit.EntityTicket, t.ID(), audit.Details{
		After: map[string]any{
			"title":    t.Title(),
			"category": t.Category().String(),
			"priority": t.Priority().String(),
			"status":   t.Status().String(),
		},
	})
}

// TicketUpdated records TICKET_UPDATE and, on a status change, notifies the
// reporter and assignee. A no-op update produces nothing.
func (e *Effects) TicketUpdated(actor authorization.Actor, res *usecases.UpdateTicketResult) {
	if !res.Changed {
		return
	}
	t := res.Ticket.Clone()

	if res.StatusChanged {
		oldStatus := res.PriorStatus.String()
		goroutine.Detached(e.logger, "ticket-status-notify", e.timeout, func(ctx context.Context) error {
			return e.notifier.StatusUpdated(ctx, t, oldStatus)
		})
	}

	before := make(map[string]any, len(res.Patch))
	for field := range res.Patch {
		before[string(field)] = res.Before[string(field)]
	}
	e.record(actor, audit.ActionTicketUpdate, audit.EntityTicket, t.ID(), audit.Details{
		Before:   before,
		After:    res.Patch.Columns(),
		Metadata: map[string]any{"relation": string(res.Relation)},
	})
}

func (e *Effects) TicketDeleted(actor authorization.Actor, res *usecases.DeleteTicketResult) {
	e.record(actor, audit.ActionTicketDelete, audit.EntityTicket, res.TicketID, audit.Details{
		Before: res.Before,
	})
}

func (e *Effects) CommentAdded(actor authorization.Actor, ticketID uint, res *usecases.AddCommentResult) {
	e.record(actor, audit.ActionTicketComment, audit.EntityTicketComment, res.Comment.ID(), audit.Details{
		After:    map[string]any{"content": res.Comment.Content()},
		Metadata: map[string]any{"ticket_id": ticketID},
	})
}

// TicketViewed stamps the view row after a successful read.
func (e *Effects) TicketViewed(actor authorization.Actor, ticketID uint) {
	goroutine.Detached(e.logger, "ticket-view", e.timeout, func(ctx context.Context) error {
		return e.views.Record(ctx, ticketID, actor.ID)
	})
}

func (e *Effects) record(actor authorization.Actor, action audit.Action, entity audit.EntityType, id uint, details audit.Details) {
	entry := audit.Entry{
		Action:     action,
		EntityType: entity,
		EntityID:   strconv.FormatUint(uint64(id), 10),
		ActorID:    actor.ID,
		ActorEmail: actor.Email,
		Details:    details,
	}
	goroutine.Detached(e.logger, "audit-"+string(action), e.timeout, func(ctx context.Context) error {
		e.audit.Record(ctx, entry)
		return nil
	})
}
