// Package notification builds notification payloads from domain records and
// fans them out to the configured transports.
package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/itops-inc/itdesk/internal/domain/emailrequest"
	"github.com/itops-inc/itdesk/internal/domain/ticket"
	"github.com/itops-inc/itdesk/internal/domain/user"
	"github.com/itops-inc/itdesk/internal/shared/logger"
)

type Dispatcher struct {
	notifiers []Notifier
	users     user.Repository
	itEmails  []string
	logger    logger.Interface
}

func NewDispatcher(
	users user.Repository,
	itEmails []string,
	logger logger.Interface,
	notifiers ...Notifier,
) *Dispatcher {
	return &Dispatcher{
		notifiers: notifiers,
		users:     users,
		itEmails:  itEmails,
		logger:    logger,
	}
}

// NewTicket tells the IT team about a freshly created ticket.
func (d *Dispatcher) NewTicket(ctx context.Context, t *ticket.Ticket) error {
	payload, err := d.ticketPayload(ctx, t)
	if err != nil {
		return err
	}
	return d.send(ctx, Message{
		Kind:       KindNewTicket,
		Recipients: d.itEmails,
		Ticket:     payload,
	})
}

// StatusUpdated tells the reporter and, when set, the assignee.
func (d *Dispatcher) StatusUpdated(ctx context.Context, t *ticket.Ticket, oldStatus string) error {
	payload, err := d.ticketPayload(ctx, t)
	if err != nil {
		return err
	}
	updatedAt := t.UpdatedAt()
	payload.UpdatedAt = &updatedAt
	payload.OldStatus = &oldStatus

	recipients := []string{payload.ReportedBy.Email}
	if payload.AssignedTo != nil {
		recipients = append(recipients, payload.AssignedTo.Email)
	}

	return d.send(ctx, Message{
		Kind:       KindStatusUpdate,
		Recipients: dedupeEmails(recipients),
		Ticket:     payload,
	})
}

func (d *Dispatcher) NewEmailRequest(ctx context.Context, e *emailrequest.EmailRequest) error {
	requester, err := d.person(ctx, e.RequestedBy())
	if err != nil {
		return err
	}
	return d.send(ctx, Message{
		Kind:       KindNewEmailRequest,
		Recipients: d.itEmails,
		EmailRequest: &EmailRequestPayload{
			RequestID:   e.ID(),
			ThaiName:    e.ThaiName(),
			EnglishName: e.EnglishName(),
			Nickname:    e.Nickname(),
			Position:    e.Position(),
			Department:  e.Department(),
			Phone:       e.Phone(),
			ReplyEmail:  e.ReplyEmail(),
			RequestedBy: requester,
			CreatedAt:   e.CreatedAt(),
		},
	})
}

func (d *Dispatcher) ticketPayload(ctx context.Context, t *ticket.Ticket) (*TicketPayload, error) {
	ids := []uint{t.ReportedByID()}
	if t.AssignedToID() != nil {
		ids = append(ids, *t.AssignedToID())
	}
	users, err := d.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load ticket participants: %w", err)
	}

	payload := &TicketPayload{
		TicketID:    t.ID(),
		Title:       t.Title(),
		Description: t.Description(),
		Category:    t.Category().String(),
		Priority:    t.Priority().String(),
		Status:      t.Status().String(),
		ReportedBy:  toPerson(users[t.ReportedByID()], t.ReportedByID()),
		CreatedAt:   t.CreatedAt(),
	}
	if t.AssignedToID() != nil {
		assignee := toPerson(users[*t.AssignedToID()], *t.AssignedToID())
		payload.AssignedTo = &assignee
	}
	return payload, nil
}

func (d *Dispatcher) person(ctx context.Context, id uint) (Person, error) {
	u, err := d.users.GetByID(ctx, id)
	if err != nil {
		return Person{}, fmt.Errorf("load user %d: %w", id, err)
	}
	return toPerson(u, id), nil
}

// toPerson tolerates users missing from the directory.
func toPerson(u *user.User, id uint) Person {
	if u == nil {
		return Person{Name: fmt.Sprintf("user #%d", id)}
	}
	return Person{Name: u.DisplayName(), Email: u.Email, Department: u.Department}
}

func (d *Dispatcher) send(ctx context.Context, msg Message) error {
	var errs []error
	for _, n := range d.notifiers {
		if err := n.Notify(ctx, msg); err != nil {
			d.logger.Warnw("notification delivery failed",
				"notifier", n.Name(),
				"kind", msg.Kind,
				"error", err,
			)
			errs = append(errs, fmt.Errorf("%s: %w", n.Name(), err))
			continue
		}
		d.logger.Debugw("notification delivered", "notifier", n.Name(), "kind", msg.Kind)
	}
	return errors.Join(errs...)
}

func dedupeEmails(emails []string) []string {
	seen := make(map[string]struct{}, len(emails))
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		key := strings.ToLower(strings.TrimSpace(e))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, strings.TrimSpace(e))
	}
	return out
}
