package models

import "github.com/itops-inc/itdesk/internal/shared/constants"

// TicketModel stores times as unix milliseconds.
type TicketModel struct {
	ID           uint    `gorm:"primaryKey"`
	Title        string  `gorm:"size:200;not null"`
	Description  string  `gorm:"type:text;not null"`
	Category     string  `gorm:"size:20;not null;index"`
	Priority     string  `gorm:"size:20;not null;index"`
	Status       string  `gorm:"size:20;not null;index"`
	Resolution   *string `gorm:"type:text"`
	ReportedByID uint    `gorm:"not null;index"`
	AssignedToID *uint   `gorm:"index"`
	CreatedAt    int64   `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt    int64   `gorm:"autoUpdateTime:milli;not null"`
	ResolvedAt   *int64

	// No foreign keys; relationships are enforced by the application.
}

func (TicketModel) TableName() string {
	return constants.TableTickets
}

type CommentModel struct {
	ID        uint   `gorm:"primaryKey"`
	TicketID  uint   `gorm:"not null;index"`
	AuthorID  uint   `gorm:"not null;index"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (CommentModel) TableName() string {
	return constants.TableTicketComments
}

type TicketViewModel struct {
	ID       uint  `gorm:"primaryKey"`
	TicketID uint  `gorm:"not null;uniqueIndex:idx_ticket_views_ticket_user"`
	UserID   uint  `gorm:"not null;uniqueIndex:idx_ticket_views_ticket_user;index"`
	ViewedAt int64 `gorm:"not null"`
}

func (TicketViewModel) TableName() string {
	return constants.TableTicketViews
}
