package http

import (
	"github.com/itops-inc/itdesk/internal/application/audit"
	"github.com/itops-inc/itdesk/internal/application/notification"
	"github.com/itops-inc/itdesk/internal/infrastructure/auth"
	"github.com/itops-inc/itdesk/internal/infrastructure/config"
	"github.com/itops-inc/itdesk/internal/infrastructure/email"
	"github.com/itops-inc/itdesk/internal/infrastructure/line"
	"github.com/itops-inc/itdesk/internal/shared/i18n"
	"github.com/itops-inc/itdesk/internal/shared/logger"
)

// services holds the collaborators shared by several use cases and
// middlewares.
type services struct {
	verifier   *auth.JWTVerifier
	dispatcher *notification.Dispatcher
	recorder   *audit.Recorder
}

func newServices(repos *repositories, cfg *config.Config, log logger.Interface) *services {
	return &services{
		verifier:   auth.NewJWTVerifier(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, cfg.Auth.JWT.Audience),
		dispatcher: newDispatcher(repos, cfg, log),
		recorder:   audit.NewRecorder(repos.auditRepo, log.Named("audit")),
	}
}

// newDispatcher enables one transport per configured channel. With none
// enabled notifications are built and dropped.
func newDispatcher(repos *repositories, cfg *config.Config, log logger.Interface) *notification.Dispatcher {
	lang := i18n.ParseLang(cfg.Notification.Language)

	var notifiers []notification.Notifier
	if cfg.Email.Enabled {
		notifiers = append(notifiers, email.NewSMTPNotifier(cfg.Email, lang))
	}
	if cfg.Line.Enabled {
		notifiers = append(notifiers, line.NewClient(cfg.Line, cfg.Notification.LineTargets, lang))
	}
	if len(notifiers) == 0 {
		log.Warnw("no notification transport enabled")
	}

	return notification.NewDispatcher(repos.userRepo, cfg.Notification.ITEmails, log.Named("notification"), notifiers...)
}
