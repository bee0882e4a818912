package emailrequest

import (
	"context"

	"github.com/itops-inc/itdesk/internal/application/emailrequest/usecases"
	"github.com/itops-inc/itdesk/internal/domain/emailrequest"
	"github.com/itops-inc/itdesk/internal/shared/authorization"
)

// Use case interfaces for Handler - enables unit testing with mocks.

type createUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateEmailRequestCommand) (*emailrequest.EmailRequest, error)
}

type listUseCase interface {
	Execute(ctx context.Context, query usecases.ListEmailRequestsQuery) (*usecases.ListEmailRequestsResult, error)
}

type getUseCase interface {
	Execute(ctx context.Context, id uint, actor authorization.Actor) (*emailrequest.EmailRequest, error)
}

type deleteUseCase interface {
	Execute(ctx context.Context, id uint, actor authorization.Actor) (map[string]any, error)
}

type effects interface {
	Created(actor authorization.Actor, req *emailrequest.EmailRequest)
	Deleted(actor authorization.Actor, id uint, before map[string]any)
}
