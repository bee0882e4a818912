package dto

import (
	"time"

	"github.com/itops-inc/itdesk/internal/domain/emailrequest"
)

type CreateEmailRequestRequest struct {
	ThaiName    string `json:"thai_name" validate:"notblank,max=200"`
	EnglishName string `json:"english_name" validate:"notblank,max=200"`
	Phone       string `json:"phone" validate:"required,max=20,numeric"`
	Nickname    string `json:"nickname" validate:"max=50"`
	Position    string `json:"position" validate:"notblank,max=100"`
	Department  string `json:"department" validate:"notblank,max=100"`
	ReplyEmail  string `json:"reply_email" validate:"required,email"`
}

type EmailRequestDTO struct {
	ID          uint      `json:"id"`
	ThaiName    string    `json:"thai_name"`
	EnglishName string    `json:"english_name"`
	Phone       string    `json:"phone"`
	Nickname    string    `json:"nickname"`
	Position    string    `json:"position"`
	Department  string    `json:"department"`
	ReplyEmail  string    `json:"reply_email"`
	RequestedBy uint      `json:"requested_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToEmailRequestDTO(e *emailrequest.EmailRequest) *EmailRequestDTO {
	if e == nil {
		return nil
	}
	return &EmailRequestDTO{
		ID:          e.ID(),
		ThaiName:    e.ThaiName(),
		EnglishName: e.EnglishName(),
		Phone:       e.Phone(),
		Nickname:    e.Nickname(),
		Position:    e.Position(),
		Department:  e.Department(),
		ReplyEmail:  e.ReplyEmail(),
		RequestedBy: e.RequestedBy(),
		CreatedAt:   e.CreatedAt(),
	}
}

func ToEmailRequestDTOs(items []*emailrequest.EmailRequest) []*EmailRequestDTO {
	out := make([]*EmailRequestDTO, 0, len(items))
	for _, e := range items {
		out = append(out, ToEmailRequestDTO(e))
	}
	return out
}

func (r *CreateEmailRequestRequest) ToDetails() emailrequest.Details {
	return emailrequest.Details{
		ThaiName:    r.ThaiName,
		EnglishName: r.EnglishName,
		Phone:       r.Phone,
		Nickname:    r.Nickname,
		Position:    r.Position,
		Department:  r.Department,
		ReplyEmail:  r.ReplyEmail,
	}
}
