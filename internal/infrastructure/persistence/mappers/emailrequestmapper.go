package mappers

import (
	"github.com/itops-inc/itdesk/internal/domain/emailrequest"
	"github.com/itops-inc/itdesk/internal/infrastructure/persistence/models"
	"github.com/itops-inc/itdesk/internal/shared/biztime"
)

func EmailRequestToModel(e *emailrequest.EmailRequest) *models.EmailRequestModel {
	return &models.EmailRequestModel{
		ID:          e.ID(),
		ThaiName:    e.ThaiName(),
		EnglishName: e.EnglishName(),
		Phone:       e.Phone(),
		Nickname:    e.Nickname(),
		Position:    e.Position(),
		Department:  e.Department(),
		ReplyEmail:  e.ReplyEmail(),
		RequestedBy: e.RequestedBy(),
		CreatedAt:   biztime.ToMillis(e.CreatedAt()),
	}
}

func EmailRequestToDomain(m *models.EmailRequestModel) *emailrequest.EmailRequest {
	return emailrequest.ReconstructEmailRequest(m.ID, emailrequest.Details{
		ThaiName:    m.ThaiName,
		EnglishName: m.EnglishName,
		Phone:       m.Phone,
		Nickname:    m.Nickname,
		Position:    m.Position,
		Department:  m.Department,
		ReplyEmail:  m.ReplyEmail,
	}, m.RequestedBy, biztime.FromMillis(m.CreatedAt))
}
