package ticket

import (
	"bytes"
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/itops-inc/itdesk/internal/application/ticket/usecases"
	domain "github.com/itops-inc/itdesk/internal/domain/ticket"
	"github.com/itops-inc/itdesk/internal/shared/authorization"
	"github.com/itops-inc/itdesk/internal/shared/utils"
)

type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
}

func (r *CreateTicketRequest) ToCommand(actor authorization.Actor) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Priority:    r.Priority,
		Actor:       actor,
	}
}

type AddCommentRequest struct {
	Content string `json:"content"`
}

func parseListTicketsQuery(c *gin.Context, actor authorization.Actor) usecases.ListTicketsQuery {
	p := utils.ParsePagination(c)
	return usecases.ListTicketsQuery{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Priority: c.Query("priority"),
		Page:     p.Page,
		Limit:    p.PageSize,
		Actor:    actor,
	}
}

var jsonNull = []byte("null")

// decodeUpdateBody turns a PATCH body into a RawPatch. Only client
// writable fields are read; anything else in the body is ignored. A value
// of the wrong JSON type is kept as-is so validation reports it per field.
func decodeUpdateBody(body map[string]json.RawMessage) domain.RawPatch {
	patch := make(domain.RawPatch, len(body))
	for _, field := range domain.ClientFields {
		raw, ok := body[string(field)]
		if !ok {
			continue
		}
		switch field {
		case domain.FieldAssignedToID:
			patch[field] = decodeNullableID(raw)
		case domain.FieldResolution:
			patch[field] = decodeNullableString(raw)
		default:
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				patch[field] = raw
				continue
			}
			patch[field] = s
		}
	}
	return patch
}

func decodeNullableID(raw json.RawMessage) any {
	if bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return (*uint)(nil)
	}
	var id uint
	if err := json.Unmarshal(raw, &id); err != nil {
		return raw
	}
	return &id
}

func decodeNullableString(raw json.RawMessage) any {
	if bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return (*string)(nil)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return raw
	}
	return &s
}
