// Package audit defines the append-only record of administrative actions.
package audit

import (
	"context"
	"time"
)

type Action string

const (
	ActionTicketCreate       Action = "TICKET_CREATE"
	ActionTicketUpdate       Action = "TICKET_UPDATE"
	ActionTicketDelete       Action = "TICKET_DELETE"
	ActionTicketComment      Action = "TICKET_COMMENT"
	ActionEmailRequestCreate Action = "EMAIL_REQUEST_CREATE"
	ActionEmailRequestDelete Action = "EMAIL_REQUEST_DELETE"
	ActionEmployeeCreate     Action = "EMPLOYEE_CREATE"
	ActionEmployeeUpdate     Action = "EMPLOYEE_UPDATE"
	ActionEmployeeDelete     Action = "EMPLOYEE_DELETE"
	ActionLoginSuccess       Action = "LOGIN_SUCCESS"
	ActionLoginFailed        Action = "LOGIN_FAILED"
)

type EntityType string

const (
	EntityTicket        EntityType = "TICKET"
	EntityTicketComment EntityType = "TICKET_COMMENT"
	EntityEmailRequest  EntityType = "EMAIL_REQUEST"
	EntityUser          EntityType = "USER"
)

// Details is stored as one JSON column.
type Details struct {
	Before   map[string]any `json:"before,omitempty"`
	After    map[string]any `json:"after,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type Entry struct {
	ID         uint
	Action     Action
	EntityType EntityType
	EntityID   string
	ActorID    uint
	ActorEmail string
	Details    Details
	CreatedAt  time.Time
}

type Repository interface {
	Append(ctx context.Context, entry *Entry) error
}
