package ticket

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const MaxCommentLength = 5000

// Comment is append-only; there is no edit or delete path.
type Comment struct {
	id        uint
	ticketID  uint
	authorID  uint
	content   string
	createdAt time.Time
}

func NewComment(ticketID, authorID uint, content string, now time.Time) (*Comment, error) {
	content = strings.TrimSpace(content)
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}
	if content == "" {
		return nil, fmt.Errorf("content cannot be empty")
	}
	if utf8.RuneCountInString(content) > MaxCommentLength {
		return nil, fmt.Errorf("content exceeds maximum length of %d characters", MaxCommentLength)
	}

	return &Comment{
		ticketID:  ticketID,
		authorID:  authorID,
		content:   content,
		createdAt: now,
	}, nil
}

func ReconstructComment(id, ticketID, authorID uint, content string, createdAt time.Time) *Comment {
	return &Comment{
		id:        id,
		ticketID:  ticketID,
		authorID:  authorID,
		content:   content,
		createdAt: createdAt,
	}
}

func (c *Comment) ID() uint             { return c.id }
func (c *Comment) TicketID() uint       { return c.ticketID }
func (c *Comment) AuthorID() uint       { return c.authorID }
func (c *Comment) Content() string      { return c.content }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }

func (c *Comment) SetID(id uint) {
	c.id = id
}
