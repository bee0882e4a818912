package notification

import (
	"fmt"
	"strings"

	"github.com/itops-inc/itdesk/internal/shared/biztime"
	"github.com/itops-inc/itdesk/internal/shared/i18n"
	"github.com/itops-inc/itdesk/internal/shared/utils/textutil"
)

const maxDescriptionRunes = 500

// Render returns the subject and a markdown body for msg. Chat transports
// send the body as is; email renders it to HTML.
func Render(lang i18n.Lang, msg Message) (string, string) {
	switch {
	case msg.Ticket != nil:
		return renderTicket(lang, msg.Kind, msg.Ticket)
	case msg.EmailRequest != nil:
		return renderEmailRequest(lang, msg.EmailRequest)
	default:
		return "", ""
	}
}

func renderTicket(lang i18n.Lang, kind Kind, p *TicketPayload) (string, string) {
	var subject string
	if kind == KindStatusUpdate {
		subject = i18n.SubjectStatusUpdate(lang, p.TicketID, p.Status)
	} else {
		subject = i18n.SubjectNewTicket(lang, p.TicketID, p.Title)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s\n\n", p.TicketID, p.Title)
	line(&b, lang, "category", p.Category)
	line(&b, lang, "priority", p.Priority)
	if p.OldStatus != nil {
		line(&b, lang, "old_status", *p.OldStatus)
	}
	line(&b, lang, "status", p.Status)
	line(&b, lang, "reported_by", person(p.ReportedBy))
	if p.ReportedBy.Department != "" {
		line(&b, lang, "department", p.ReportedBy.Department)
	}
	if p.AssignedTo != nil {
		line(&b, lang, "assigned_to", person(*p.AssignedTo))
	}
	line(&b, lang, "created_at", biztime.FormatDisplay(p.CreatedAt))
	if p.UpdatedAt != nil {
		line(&b, lang, "updated_at", biztime.FormatDisplay(*p.UpdatedAt))
	}
	if kind == KindNewTicket && p.Description != "" {
		fmt.Fprintf(&b, "\n%s:\n\n%s\n", i18n.Label(lang, "description"), textutil.Truncate(p.Description, maxDescriptionRunes))
	}
	return subject, b.String()
}

func renderEmailRequest(lang i18n.Lang, p *EmailRequestPayload) (string, string) {
	var b strings.Builder
	line(&b, lang, "thai_name", p.ThaiName)
	line(&b, lang, "eng_name", p.EnglishName)
	if p.Nickname != "" {
		line(&b, lang, "nickname", p.Nickname)
	}
	line(&b, lang, "position", p.Position)
	line(&b, lang, "department", p.Department)
	line(&b, lang, "phone", p.Phone)
	line(&b, lang, "reply_email", p.ReplyEmail)
	line(&b, lang, "reported_by", person(p.RequestedBy))
	line(&b, lang, "created_at", biztime.FormatDisplay(p.CreatedAt))
	return i18n.SubjectNewEmailRequest(lang, p.EnglishName), b.String()
}

func line(b *strings.Builder, lang i18n.Lang, field, value string) {
	fmt.Fprintf(b, "- %s: %s\n", i18n.Label(lang, field), value)
}

func person(p Person) string {
	if p.Email == "" || p.Name == p.Email {
		return p.Name
	}
	return fmt.Sprintf("%s <%s>", p.Name, p.Email)
}
