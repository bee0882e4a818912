package http

import (
	emailRequestUsecases "github.com/itops-inc/itdesk/internal/application/emailrequest/usecases"
	ticketUsecases "github.com/itops-inc/itdesk/internal/application/ticket/usecases"
	"github.com/itops-inc/itdesk/internal/shared/logger"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Ticket
	createTicketUC *ticketUsecases.CreateTicketUseCase
	listTicketsUC  *ticketUsecases.ListTicketsUseCase
	getTicketUC    *ticketUsecases.GetTicketUseCase
	updateTicketUC *ticketUsecases.UpdateTicketUseCase
	deleteTicketUC *ticketUsecases.DeleteTicketUseCase
	recordViewUC   *ticketUsecases.RecordViewUseCase
	addCommentUC   *ticketUsecases.AddCommentUseCase
	pruneViewsUC   *ticketUsecases.PruneViewsUseCase

	// Email request
	createEmailRequestUC *emailRequestUsecases.CreateEmailRequestUseCase
	listEmailRequestsUC  *emailRequestUsecases.ListEmailRequestsUseCase
	getEmailRequestUC    *emailRequestUsecases.GetEmailRequestUseCase
	deleteEmailRequestUC *emailRequestUsecases.DeleteEmailRequestUseCase
}

func newUseCases(repos *repositories, log logger.Interface) *allUseCases {
	ticketLog := log.Named("ticket")
	requestLog := log.Named("email_request")

	return &allUseCases{
		createTicketUC: ticketUsecases.NewCreateTicketUseCase(repos.ticketRepo, ticketLog),
		listTicketsUC:  ticketUsecases.NewListTicketsUseCase(repos.ticketRepo, repos.viewRepo, ticketLog),
		getTicketUC:    ticketUsecases.NewGetTicketUseCase(repos.ticketRepo, repos.commentRepo, ticketLog),
		updateTicketUC: ticketUsecases.NewUpdateTicketUseCase(repos.ticketRepo, ticketLog),
		deleteTicketUC: ticketUsecases.NewDeleteTicketUseCase(
			repos.ticketRepo, repos.commentRepo, repos.viewRepo, repos.txManager, ticketLog,
		),
		recordViewUC: ticketUsecases.NewRecordViewUseCase(repos.ticketRepo, repos.viewRepo, ticketLog),
		addCommentUC: ticketUsecases.NewAddCommentUseCase(repos.ticketRepo, repos.commentRepo, ticketLog),
		pruneViewsUC: ticketUsecases.NewPruneViewsUseCase(repos.viewRepo, ticketLog),

		createEmailRequestUC: emailRequestUsecases.NewCreateEmailRequestUseCase(repos.emailRequestRepo, requestLog),
		listEmailRequestsUC:  emailRequestUsecases.NewListEmailRequestsUseCase(repos.emailRequestRepo, requestLog),
		getEmailRequestUC:    emailRequestUsecases.NewGetEmailRequestUseCase(repos.emailRequestRepo, requestLog),
		deleteEmailRequestUC: emailRequestUsecases.NewDeleteEmailRequestUseCase(repos.emailRequestRepo, requestLog),
	}
}
