package ticket

import "time"

// View records when a user last opened a ticket. One row per (ticket, user).
type View struct {
	TicketID uint
	UserID   uint
	ViewedAt time.Time
}
