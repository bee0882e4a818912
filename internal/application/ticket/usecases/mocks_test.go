package usecases

import (
	"context"
	"time"

	"github.com/itops-inc/itdesk/internal/domain/ticket"
	vo "github.com/itops-inc/itdesk/internal/domain/ticket/valueobjects"
	"github.com/itops-inc/itdesk/internal/shared/authorization"
)

var testNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

var (
	adminActor    = authorization.Actor{ID: 1, Role: authorization.RoleAdmin, Email: "admin@example.com"}
	ownerActor    = authorization.Actor{ID: 10, Role: authorization.RoleUser, Email: "owner@example.com"}
	assigneeActor = authorization.Actor{ID: 20, Role: authorization.RoleUser, Email: "tech@example.com"}
	strangerActor = authorization.Actor{ID: 30, Role: authorization.RoleUser, Email: "other@example.com"}
)

// existingTicket is reported by ownerActor and assigned to assigneeActor.
func existingTicket(status vo.TicketStatus) *ticket.Ticket {
	assignee := assigneeActor.ID
	t, err := ticket.ReconstructTicket(5, "Laptop will not boot", "Black screen after update",
		vo.CategoryHardware, vo.PriorityMedium, status, nil, ownerActor.ID, &assignee,
		testNow.Add(-48*time.Hour), testNow.Add(-48*time.Hour), nil)
	if err != nil {
		panic(err)
	}
	return t
}

type mockTicketRepository struct {
	SaveFunc    func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc  func(ctx context.Context, id uint, patch ticket.Patch, updatedAt time.Time) error
	DeleteFunc  func(ctx context.Context, id uint) error
	GetByIDFunc func(ctx context.Context, id uint) (*ticket.Ticket, error)
	ListFunc    func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error)

	calls int
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	m.calls++
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, id uint, patch ticket.Patch, updatedAt time.Time) error {
	m.calls++
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch, updatedAt)
	}
	return nil
}

func (m *mockTicketRepository) Delete(ctx context.Context, id uint) error {
	m.calls++
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	m.calls++
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	m.calls++
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

type mockCommentRepository struct {
	SaveFunc             func(ctx context.Context, c *ticket.Comment) error
	ListByTicketIDFunc   func(ctx context.Context, ticketID uint) ([]*ticket.Comment, error)
	DeleteByTicketIDFunc func(ctx context.Context, ticketID uint) error
}

func (m *mockCommentRepository) Save(ctx context.Context, c *ticket.Comment) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, c)
	}
	return nil
}

func (m *mockCommentRepository) ListByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	if m.ListByTicketIDFunc != nil {
		return m.ListByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockCommentRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	if m.DeleteByTicketIDFunc != nil {
		return m.DeleteByTicketIDFunc(ctx, ticketID)
	}
	return nil
}

// memoryViewRepository keeps one row per (ticket, user) like the real table.
type memoryViewRepository struct {
	rows map[[2]uint]time.Time
	err  error
}

func newMemoryViewRepository() *memoryViewRepository {
	return &memoryViewRepository{rows: map[[2]uint]time.Time{}}
}

func (m *memoryViewRepository) Upsert(_ context.Context, v ticket.View) error {
	if m.err != nil {
		return m.err
	}
	m.rows[[2]uint{v.TicketID, v.UserID}] = v.ViewedAt
	return nil
}

func (m *memoryViewRepository) ViewedTicketIDs(_ context.Context, userID uint, ids []uint) (map[uint]bool, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := map[uint]bool{}
	for _, id := range ids {
		if _, ok := m.rows[[2]uint{id, userID}]; ok {
			out[id] = true
		}
	}
	return out, nil
}

func (m *memoryViewRepository) DeleteByTicketID(_ context.Context, ticketID uint) error {
	for k := range m.rows {
		if k[0] == ticketID {
			delete(m.rows, k)
		}
	}
	return nil
}

func (m *memoryViewRepository) DeleteViewedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	var n int64
	for k, at := range m.rows {
		if at.Before(cutoff) {
			delete(m.rows, k)
			n++
		}
	}
	return n, nil
}

type mockTxManager struct {
	runs int
}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.runs++
	return fn(ctx)
}
