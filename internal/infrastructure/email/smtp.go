// Package email delivers notifications over SMTP.
package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/itops-inc/itdesk/internal/application/notification"
	"github.com/itops-inc/itdesk/internal/shared/config"
	"github.com/itops-inc/itdesk/internal/shared/i18n"
)

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPNotifier struct {
	from     string
	fromName string
	lang     i18n.Lang
	sender   sender
	renderer *htmlRenderer
}

func NewSMTPNotifier(cfg config.EmailConfig, lang i18n.Lang) *SMTPNotifier {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	return newSMTPNotifier(cfg, lang, dialer)
}

func newSMTPNotifier(cfg config.EmailConfig, lang i18n.Lang, s sender) *SMTPNotifier {
	return &SMTPNotifier{
		from:     cfg.FromAddress,
		fromName: cfg.FromName,
		lang:     lang,
		sender:   s,
		renderer: newHTMLRenderer(),
	}
}

func (n *SMTPNotifier) Name() string {
	return "email"
}

// Notify sends one message addressed to every recipient. A message with no
// recipients is skipped.
func (n *SMTPNotifier) Notify(ctx context.Context, msg notification.Message) error {
	if len(msg.Recipients) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	subject, body := notification.Render(n.lang, msg)
	htmlBody, err := n.renderer.Render(body)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", n.from, n.fromName)
	m.SetHeader("To", msg.Recipients...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	m.AddAlternative("text/html", htmlBody)

	if err := n.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
