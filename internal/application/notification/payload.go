package notification

import (
	"context"
	"time"
)

type Kind string

const (
	KindNewTicket       Kind = "new_ticket"
	KindStatusUpdate    Kind = "status_update"
	KindNewEmailRequest Kind = "new_email_request"
)

type Person struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department,omitempty"`
}

// TicketPayload is everything a transport needs to render a ticket message.
type TicketPayload struct {
	TicketID    uint       `json:"ticket_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	ReportedBy  Person     `json:"reported_by"`
	CreatedAt   time.Time  `json:"created_at"`
	AssignedTo  *Person    `json:"assigned_to,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	OldStatus   *string    `json:"old_status,omitempty"`
}

type EmailRequestPayload struct {
	RequestID   uint      `json:"request_id"`
	ThaiName    string    `json:"thai_name"`
	EnglishName string    `json:"english_name"`
	Nickname    string    `json:"nickname,omitempty"`
	Position    string    `json:"position"`
	Department  string    `json:"department"`
	Phone       string    `json:"phone"`
	ReplyEmail  string    `json:"reply_email"`
	RequestedBy Person    `json:"requested_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// Message is handed to every transport. Exactly one payload is set, matching
// Kind. Recipients are email addresses; chat transports use their own
// configured targets.
type Message struct {
	Kind         Kind
	Recipients   []string
	Ticket       *TicketPayload
	EmailRequest *EmailRequestPayload
}

// Notifier is one delivery transport (SMTP, LINE push).
type Notifier interface {
	Name() string
	Notify(ctx context.Context, msg Message) error
}
