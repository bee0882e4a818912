package http

import (
	"gorm.io/gorm"

	"github.com/itops-inc/itdesk/internal/domain/audit"
	"github.com/itops-inc/itdesk/internal/domain/emailrequest"
	"github.com/itops-inc/itdesk/internal/domain/ticket"
	"github.com/itops-inc/itdesk/internal/domain/user"
	"github.com/itops-inc/itdesk/internal/infrastructure/repository"
	shareddb "github.com/itops-inc/itdesk/internal/shared/db"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	ticketRepo       ticket.TicketRepository
	commentRepo      ticket.CommentRepository
	viewRepo         ticket.ViewRepository
	emailRequestRepo emailrequest.Repository
	auditRepo        audit.Repository
	userRepo         user.Repository
	txManager        *shareddb.TransactionManager
}

func newRepositories(db *gorm.DB) *repositories {
	return &repositories{
		ticketRepo:       repository.NewTicketRepository(db),
		commentRepo:      repository.NewTicketCommentRepository(db),
		viewRepo:         repository.NewTicketViewRepository(db),
		emailRequestRepo: repository.NewEmailRequestRepository(db),
		auditRepo:        repository.NewAuditLogRepository(db),
		userRepo:         repository.NewUserRepository(db),
		txManager:        shareddb.NewTransactionManager(db),
	}
}
