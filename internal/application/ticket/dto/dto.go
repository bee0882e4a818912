package dto

import (
	"time"

	"github.com/itops-inc/itdesk/internal/domain/ticket"
)

type TicketDTO struct {
	ID           uint         `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Category     string       `json:"category"`
	Priority     string       `json:"priority"`
	Status       string       `json:"status"`
	Resolution   *string      `json:"resolution"`
	ReportedByID uint         `json:"reported_by_id"`
	AssignedToID *uint        `json:"assigned_to_id"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	ResolvedAt   *time.Time   `json:"resolved_at"`
	Comments     []CommentDTO `json:"comments,omitempty"`
}

type CommentDTO struct {
	ID        uint      `json:"id"`
	TicketID  uint      `json:"ticket_id"`
	AuthorID  uint      `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type TicketListItemDTO struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	Priority     string    `json:"priority"`
	Status       string    `json:"status"`
	ReportedByID uint      `json:"reported_by_id"`
	AssignedToID *uint     `json:"assigned_to_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	IsNew        bool      `json:"is_new"`
}

// UpdateTicketResponse tells the client whether anything was written.
type UpdateTicketResponse struct {
	Ticket        *TicketDTO `json:"ticket"`
	Changed       bool       `json:"changed"`
	StatusChanged bool       `json:"status_changed"`
}

func ToTicketDTO(t *ticket.Ticket) *TicketDTO {
	if t == nil {
		return nil
	}
	out := &TicketDTO{
		ID:           t.ID(),
		Title:        t.Title(),
		Description:  t.Description(),
		Category:     t.Category().String(),
		Priority:     t.Priority().String(),
		Status:       t.Status().String(),
		Resolution:   t.Resolution(),
		ReportedByID: t.ReportedByID(),
		AssignedToID: t.AssignedToID(),
		CreatedAt:    t.CreatedAt(),
		UpdatedAt:    t.UpdatedAt(),
		ResolvedAt:   t.ResolvedAt(),
	}
	for _, c := range t.Comments() {
		out.Comments = append(out.Comments, ToCommentDTO(c))
	}
	return out
}

func ToCommentDTO(c *ticket.Comment) CommentDTO {
	return CommentDTO{
		ID:        c.ID(),
		TicketID:  c.TicketID(),
		AuthorID:  c.AuthorID(),
		Content:   c.Content(),
		CreatedAt: c.CreatedAt(),
	}
}

func ToTicketListItemDTO(t *ticket.Ticket, isNew bool) TicketListItemDTO {
	return TicketListItemDTO{
		ID:           t.ID(),
		Title:        t.Title(),
		Category:     t.Category().String(),
		Priority:     t.Priority().String(),
		Status:       t.Status().String(),
		ReportedByID: t.ReportedByID(),
		AssignedToID: t.AssignedToID(),
		CreatedAt:    t.CreatedAt(),
		UpdatedAt:    t.UpdatedAt(),
		IsNew:        isNew,
	}
}
