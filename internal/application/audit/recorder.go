// Package audit writes audit trail entries without ever failing the caller.
package audit

import (
	"context"

	"github.com/itops-inc/itdesk/internal/domain/audit"
	"github.com/itops-inc/itdesk/internal/shared/biztime"
	"github.com/itops-inc/itdesk/internal/shared/logger"
)

type Recorder struct {
	repo   audit.Repository
	logger logger.Interface
}

func NewRecorder(repo audit.Repository, logger logger.Interface) *Recorder {
	return &Recorder{repo: repo, logger: logger}
}

// Record persists the entry. Failures are logged and swallowed.
func (r *Recorder) Record(ctx context.Context, entry audit.Entry) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = biztime.NowUTC()
	}
	if err := r.repo.Append(ctx, &entry); err != nil {
		r.logger.Errorw("failed to write audit log",
			"action", entry.Action,
			"entity_type", entry.EntityType,
			"entity_id", entry.EntityID,
			"actor_id", entry.ActorID,
			"error", err,
		)
		return
	}
	r.logger.Debugw("audit log written", "action", entry.Action, "entity_id", entry.EntityID)
}
