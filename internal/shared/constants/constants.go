package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
	MaxPage         = 1_000_000

	HeaderAuthorization  = "Authorization"
	HeaderXRequestID     = "X-Request-ID"
	HeaderAcceptLanguage = "Accept-Language"

	// gin context keys
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyUserEmail = "user_email"
	ContextKeyActor     = "actor"
	ContextKeyRequestID = "request_id"
	ContextKeyLang      = "lang"

	TableTickets        = "tickets"
	TableTicketComments = "ticket_comments"
	TableTicketViews    = "ticket_views"
	TableEmailRequests  = "email_requests"
	TableAuditLogs      = "audit_logs"
	TableUsers          = "users"

	ErrMsgInternalServerError = "Internal server error occurred"
)

// Version is overridden at build time with -ldflags "-X ...constants.Version=".
var Version = "dev"
