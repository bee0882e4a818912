// Package emailrequest holds the side effects of email request mutations.
package emailrequest

import (
	"context"
	"strconv"
	"time"

	"github.com/itops-inc/itdesk/internal/domain/audit"
	"github.com/itops-inc/itdesk/internal/domain/emailrequest"
	"github.com/itops-inc/itdesk/internal/shared/authorization"
	"github.com/itops-inc/itdesk/internal/shared/goroutine"
	"github.com/itops-inc/itdesk/internal/shared/logger"
)

type AuditRecorder interface {
	Record(ctx context.Context, entry audit.Entry)
}

type RequestNotifier interface {
	NewEmailRequest(ctx context.Context, e *emailrequest.EmailRequest) error
}

type Effects struct {
	audit    AuditRecorder
	notifier RequestNotifier
	logger   logger.Interface
	timeout  time.Duration
}

func NewEffects(audit AuditRecorder, notifier RequestNotifier, logger logger.Interface, timeout time.Duration) *Effects {
	return &Effects{audit: audit, notifier: notifier, logger: logger, timeout: timeout}
}

func (e *Effects) Created(actor authorization.Actor, req *emailrequest.EmailRequest) {
	goroutine.Detached(e.logger, "email-request-notify", e.timeout, func(ctx context.Context) error {
		return e.notifier.NewEmailRequest(ctx, req)
	})
	e.record(actor, audit.ActionEmailRequestCreate, req.ID(), audit.Details{After: req.Snapshot()})
}

func (e *Effects) Deleted(actor authorization.Actor, id uint, before map[string]any) {
	e.record(actor, audit.ActionEmailRequestDelete, id, audit.Details{Before: before})
}

func (e *Effects) record(actor authorization.Actor, action audit.Action, id uint, details audit.Details) {
	entry := audit.Entry{
		Action:     action,
		EntityType: audit.EntityEmailRequest,
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
