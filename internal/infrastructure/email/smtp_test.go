package email

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/itops-inc/itdesk/internal/application/notification"
	"github.com/itops-inc/itdesk/internal/shared/config"
	"github.com/itops-inc/itdesk/internal/shared/i18n"
)

type captureSender struct {
	sent []*gomail.Message
	err  error
}

func (c *captureSender) DialAndSend(m ...*gomail.Message) error {
	c.sent = append(c.sent, m...)
	return c.err
}

func newTestNotifier(s sender) *SMTPNotifier {
	return newSMTPNotifier(config.EmailConfig{FromAddress: "desk@example.com", FromName: "IT Desk"}, i18n.EN, s)
}

func ticketMessage() notification.Message {
	return notification.Message{
		Kind:       notification.KindNewTicket,
		Recipients: []string{"it@example.com"},
		Ticket: &notification.TicketPayload{
			TicketID:    42,
			Title:       "Printer offline",
			Description: "Floor 3 <script>alert(1)</script>",
			Category:    "PRINTER",
			Priority:    "HIGH",
			Status:      "OPEN",
			ReportedBy:  notification.Person{Name: "Somchai", Email: "somchai@example.com"},
			CreatedAt:   time.Date(2024, 6, 1, 2, 0, 0, 0, time.UTC),
		},
	}
}

func TestSMTPNotifier_SendsRenderedMessage(t *testing.T) {
	s := &captureSender{}
	n := newTestNotifier(s)

	require.NoError(t, n.Notify(context.Background(), ticketMessage()))
	require.Len(t, s.sent, 1)

	m := s.sent[0]
	assert.Equal(t, []string{"it@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"[New Ticket #42] Printer offline"}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Printer offline")
}

func TestSMTPNotifier_SkipsEmptyRecipients(t *testing.T) {
	s := &captureSender{}
	msg := ticketMessage()
	msg.Recipients = nil

	require.NoError(t, newTestNotifier(s).Notify(context.Background(), msg))
	assert.Empty(t, s.sent)
}

func TestSMTPNotifier_WrapsSendError(t *testing.T) {
	s := &captureSender{err: assert.AnError}
	err := newTestNotifier(s).Notify(context.Background(), ticketMessage())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestHTMLRenderer_StripsRawHTML(t *testing.T) {
	out, err := newHTMLRenderer().Render("- Status: OPEN\n\n<img src=x onerror=alert(1)>")
	require.NoError(t, err)
	assert.Contains(t, out, "<li>Status: OPEN</li>")
	assert.NotContains(t, out, "onerror")
}
