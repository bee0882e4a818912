package ticket

import (
	"context"
	"time"

	vo "github.com/itops-inc/itdesk/internal/domain/ticket/valueobjects"
)

type TicketRepository interface {
	Save(ctx context.Context, ticket *Ticket) error
	// Update persists only the patched columns plus updated_at.
	Update(ctx context.Context, ticketID uint, patch Patch, updatedAt time.Time) error
	Delete(ctx context.Context, ticketID uint) error
	GetByID(ctx context.Context, ticketID uint) (*Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]*Ticket, int64, error)
}

// TicketFilter narrows a listing. ReportedByID is always set for non-admin
// callers.
type TicketFilter struct {
	Status       *vo.TicketStatus
	Category     *vo.Category
	Priority     *vo.Priority
	ReportedByID *uint
	Page         int
	PageSize     int
}

type CommentRepository interface {
	Save(ctx context.Context, comment *Comment) error
	ListByTicketID(ctx context.Context, ticketID uint) ([]*Comment, error)
	DeleteByTicketID(ctx context.Context, ticketID uint) error
}

type ViewRepository interface {
	// Upsert inserts or refreshes the (ticket, user) row.
	Upsert(ctx context.Context, view View) error
	// ViewedTicketIDs returns which of ticketIDs the user has viewed.
	ViewedTicketIDs(ctx context.Context, userID uint, ticketIDs []uint) (map[uint]bool, error)
	DeleteByTicketID(ctx context.Context, ticketID uint) error
	// DeleteViewedBefore removes rows last refreshed before cutoff and
	// returns how many were removed.
	DeleteViewedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
