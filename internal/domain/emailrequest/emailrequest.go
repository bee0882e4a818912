// Package emailrequest models a request to provision a mailbox for a new
// employee. There is no status machine; IT handles it out of band.
package emailrequest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/itops-inc/itdesk/internal/shared/authorization"
)

type EmailRequest struct {
	id          uint
	thaiName    string
	englishName string
	phone       string
	nickname    string
	position    string
	department  string
	replyEmail  string
	requestedBy uint
	createdAt   time.Time
}

// Details carries the employee data of a new request.
type Details struct {
	ThaiName    string
	EnglishName string
	Phone       string
	Nickname    string
	Position    string
	Department  string
	ReplyEmail  string
}

func NewEmailRequest(d Details, requestedBy uint, now time.Time) (*EmailRequest, error) {
	if requestedBy == 0 {
		return nil, fmt.Errorf("requester ID is required")
	}
	d.ThaiName = strings.TrimSpace(d.ThaiName)
	d.EnglishName = strings.TrimSpace(d.EnglishName)
	if d.ThaiName == "" || d.EnglishName == "" {
		return nil, fmt.Errorf("thai and english names are required")
	}
	if strings.TrimSpace(d.ReplyEmail) == "" {
		return nil, fmt.Errorf("reply email is required")
	}

	return &EmailRequest{
		thaiName:    d.ThaiName,
		englishName: d.EnglishName,
		phone:       strings.TrimSpace(d.Phone),
		nickname:    strings.TrimSpace(d.Nickname),
		position:    strings.TrimSpace(d.Position),
		department:  strings.TrimSpace(d.Department),
		replyEmail:  strings.TrimSpace(d.ReplyEmail),
		requestedBy: requestedBy,
		createdAt:   now,
	}, nil
}

func ReconstructEmailRequest(id uint, d Details, requestedBy uint, createdAt time.Time) *EmailRequest {
	return &EmailRequest{
		id:          id,
		thaiName:    d.ThaiName,
		englishName: d.EnglishName,
		phone:       d.Phone,
		nickname:    d.Nickname,
		position:    d.Position,
		department:  d.Department,
		replyEmail:  d.ReplyEmail,
		requestedBy: requestedBy,
		createdAt:   createdAt,
	}
}

func (e *EmailRequest) ID() uint             { return e.id }
func (e *EmailRequest) ThaiName() string     { return e.thaiName }
func (e *EmailRequest) EnglishName() string  { return e.englishName }
func (e *EmailRequest) Phone() string        { return e.phone }
func (e *EmailRequest) Nickname() string     { return e.nickname }
func (e *EmailRequest) Position() string     { return e.position }
func (e *EmailRequest) Department() string   { return e.department }
func (e *EmailRequest) ReplyEmail() string   { return e.replyEmail }
func (e *EmailRequest) RequestedBy() uint    { return e.requestedBy }
func (e *EmailRequest) CreatedAt() time.Time { return e.createdAt }

func (e *EmailRequest) SetID(id uint) {
	e.id = id
}

func (e *EmailRequest) Snapshot() map[string]any {
	return map[string]any{
		"id":           e.id,
		"thai_name":    e.thaiName,
		"english_name": e.englishName,
		"nickname":     e.nickname,
		"position":     e.position,
		"department":   e.department,
		"reply_email":  e.replyEmail,
		"requested_by": e.requestedBy,
	}
}

// CanAccessEmailRequest is the owner-or-admin predicate.
func CanAccessEmailRequest(e *EmailRequest, actor authorization.Actor) bool {
	return authorization.CanAccessResourceByOwnerID(actor, e.requestedBy)
}

type Filter struct {
	RequestedBy *uint
	Page        int
	PageSize    int
}

type Repository interface {
	Save(ctx context.Context, e *EmailRequest) error
	GetByID(ctx context.Context, id uint) (*EmailRequest, error)
	List(ctx context.Context, filter Filter) ([]*EmailRequest, int64, error)
	Delete(ctx context.Context, id uint) error
}
