package ticket

import "time"

// CreatedEvent and StatusChangedEvent are produced by the use cases and
// consumed by the notification dispatcher.
type CreatedEvent struct {
	TicketID   uint
	ReporterID uint
	OccurredAt time.Time
}

type StatusChangedEvent struct {
	TicketID   uint
	OldStatus  string
	NewStatus  string
	ChangedBy  uint
	OccurredAt time.Time
}
