package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itops-inc/itdesk/internal/domain/audit"
	"github.com/itops-inc/itdesk/internal/shared/logger"
)

type mockAuditRepository struct {
	AppendFunc func(ctx context.Context, entry *audit.Entry) error
}

func (m *mockAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	return m.AppendFunc(ctx, entry)
}

func TestRecorder_StampsCreatedAt(t *testing.T) {
	var stored *audit.Entry
	repo := &mockAuditRepository{AppendFunc: func(_ context.Context, e *audit.Entry) error {
		stored = e
		return nil
	}}

	NewRecorder(repo, logger.NewNopLogger()).Record(context.Background(), audit.Entry{
		Action:     audit.ActionTicketCreate,
		EntityType: audit.EntityTicket,
		EntityID:   "1",
	})

	require.NotNil(t, stored)
	assert.False(t, stored.CreatedAt.IsZero())
}

func TestRecorder_SwallowsErrors(t *testing.T) {
	repo := &mockAuditRepository{AppendFunc: func(context.Context, *audit.Entry) error {
		return errors.New("db gone")
	}}

	assert.NotPanics(t, func() {
		NewRecorder(repo, logger.NewNopLogger()).Record(context.Background(), audit.Entry{Action: audit.ActionTicketDelete})
	})
}
