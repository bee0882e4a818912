package http

import (
	emailRequestApp "github.com/itops-inc/itdesk/internal/application/emailrequest"
	ticketApp "github.com/itops-inc/itdesk/internal/application/ticket"
	"github.com/itops-inc/itdesk/internal/infrastructure/config"
	"github.com/itops-inc/itdesk/internal/infrastructure/metrics"
	emailRequestHandlers "github.com/itops-inc/itdesk/internal/interfaces/http/handlers/emailrequest"
	ticketHandlers "github.com/itops-inc/itdesk/internal/interfaces/http/handlers/ticket"
	"github.com/itops-inc/itdesk/internal/shared/logger"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	ticketHandler       *ticketHandlers.TicketHandler
	emailRequestHandler *emailRequestHandlers.Handler
}

func newHandlers(
	ucs *allUseCases,
	svcs *services,
	m *metrics.Metrics,
	cfg *config.Config,
	log logger.Interface,
) *allHandlers {
	timeout := cfg.Notification.Timeout()
	effectsLog := log.Named("effects")

	ticketEffects := ticketApp.NewEffects(svcs.recorder, svcs.dispatcher, ucs.recordViewUC, effectsLog, timeout)
	requestEffects := emailRequestApp.NewEffects(svcs.recorder, svcs.dispatcher, effectsLog, timeout)

	return &allHandlers{
		ticketHandler: ticketHandlers.NewTicketHandler(
			ucs.createTicketUC,
			ucs.listTicketsUC,
			ucs.getTicketUC,
			ucs.updateTicketUC,
			ucs.deleteTicketUC,
			ucs.recordViewUC,
			ucs.addCommentUC,
			ticketEffects,
			m,
			log.Named("ticket_handler"),
		),
		emailRequestHandler: emailRequestHandlers.NewHandler(
			ucs.createEmailRequestUC,
			ucs.listEmailRequestsUC,
			ucs.getEmailRequestUC,
			ucs.deleteEmailRequestUC,
			requestEffects,
			log.Named("email_request_handler"),
		),
	}
}
