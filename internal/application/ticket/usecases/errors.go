package usecases

import (
	"github.com/itops-inc/itdesk/internal/shared/errors"
	"github.com/itops-inc/itdesk/internal/shared/i18n"
)

func ticketNotFound() error {
	return errors.NewNotFoundError("Ticket not found").WithKey(i18n.KeyTicketNotFound)
}

func ticketForbidden() error {
	return errors.NewForbiddenError("You do not have access to this ticket").WithKey(i18n.KeyTicketForbidden)
}
