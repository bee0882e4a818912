package ticket

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	vo "github.com/itops-inc/itdesk/internal/domain/ticket/valueobjects"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 5000
	MaxResolutionLength  = 5000
)

// Ticket is an IT-support request. reportedByID is fixed at creation and
// resolvedAt is only ever derived from status changes.
type Ticket struct {
	id           uint
	title        string
	description  string
	category     vo.Category
	priority     vo.Priority
	status       vo.TicketStatus
	resolution   *string
	reportedByID uint
	assignedToID *uint
	createdAt    time.Time
	updatedAt    time.Time
	resolvedAt   *time.Time
	comments     []*Comment
}

func NewTicket(
	title string,
	description string,
	category vo.Category,
	priority vo.Priority,
	reportedByID uint,
	now time.Time,
) (*Ticket, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return nil, fmt.Errorf("title exceeds maximum length of %d characters", MaxTitleLength)
	}
	if description == "" {
		return nil, fmt.Errorf("description is required")
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return nil, fmt.Errorf("description exceeds maximum length of %d characters", MaxDescriptionLength)
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid category")
	}
	if priority == "" {
		priority = vo.DefaultPriority
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if reportedByID == 0 {
		return nil, fmt.Errorf("reporter ID is required")
	}

	return &Ticket{
		title:        title,
		description:  description,
		category:     category,
		priority:     priority,
		status:       vo.StatusOpen,
		reportedByID: reportedByID,
		createdAt:    now,
		updatedAt:    now,
		comments:     []*Comment{},
	}, nil
}

func ReconstructTicket(
	id uint,
	title string,
	description string,
	category vo.Category,
	priority vo.Priority,
	status vo.TicketStatus,
	resolution *string,
	reportedByID uint,
	assignedToID *uint,
	createdAt, updatedAt time.Time,
	resolvedAt *time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid category %q", category)
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority %q", priority)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status %q", status)
	}

	return &Ticket{
		id:           id,
		title:        title,
		description:  description,
		category:     category,
		priority:     priority,
		status:       status,
		resolution:   resolution,
		reportedByID: reportedByID,
		assignedToID: assignedToID,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		resolvedAt:   resolvedAt,
		comments:     []*Comment{},
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

// SetID is called once by the repository after insert.
func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Ticket) Title() string {
	return t.title
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Category() vo.Category {
	return t.category
}

func (t *Ticket) Priority() vo.Priority {
	return t.priority
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) Resolution() *string {
	return t.resolution
}

func (t *Ticket) ReportedByID() uint {
	return t.reportedByID
}

func (t *Ticket) AssignedToID() *uint {
	return t.assignedToID
}

func (t *Ticket) IsAssignedTo(userID uint) bool {
	return t.assignedToID != nil && *t.assignedToID == userID
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) ResolvedAt() *time.Time {
	return t.resolvedAt
}

func (t *Ticket) Comments() []*Comment {
	out := make([]*Comment, len(t.comments))
	copy(out, t.comments)
	return out
}

func (t *Ticket) SetComments(comments []*Comment) {
	t.comments = comments
}

// IsNewFor reports the "new" badge: created within the last 24 hours and
// never viewed by the viewer.
func (t *Ticket) IsNewFor(viewed bool, now time.Time) bool {
	if viewed {
		return false
	}
	return now.Sub(t.createdAt) < NewTicketWindow
}

// NewTicketWindow is how long an unviewed ticket carries the "new" badge.
const NewTicketWindow = 24 * time.Hour

// Apply writes an already validated patch onto the aggregate.
func (t *Ticket) Apply(patch Patch, now time.Time) {
	for field, value := range patch {
		switch field {
		case FieldTitle:
			t.title = value.(string)
		case FieldDescription:
			t.description = value.(string)
		case FieldCategory:
			t.category = value.(vo.Category)
		case FieldPriority:
			t.priority = value.(vo.Priority)
		case FieldStatus:
			t.status = value.(vo.TicketStatus)
		case FieldAssignedToID:
			t.assignedToID = value.(*uint)
		case FieldResolution:
			t.resolution = value.(*string)
		case FieldResolvedAt:
			ts := value.(time.Time)
			t.resolvedAt = &ts
		}
	}
	t.updatedAt = now
}

// Clone returns a detached copy without comments.
func (t *Ticket) Clone() *Ticket {
	c := *t
	if t.assignedToID != nil {
		v := *t.assignedToID
		c.assignedToID = &v
	}
	if t.resolution != nil {
		v := *t.resolution
		c.resolution = &v
	}
	if t.resolvedAt != nil {
		v := *t.resolvedAt
		c.resolvedAt = &v
	}
	c.comments = []*Comment{}
	return &c
}

// Snapshot is the audit representation of the ticket.
func (t *Ticket) Snapshot() map[string]any {
	return map[string]any{
		"id":             t.id,
		"title":          t.title,
		"description":    t.description,
		"category":       t.category.String(),
		"priority":       t.priority.String(),
		"status":         t.status.String(),
		"resolution":     t.resolution,
		"reported_by_id": t.reportedByID,
		"assigned_to_id": t.assignedToID,
		"resolved_at":    t.resolvedAt,
	}
}
