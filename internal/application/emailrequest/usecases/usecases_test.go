package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itops-inc/itdesk/internal/domain/emailrequest"
	"github.com/itops-inc/itdesk/internal/shared/authorization"
	apperrors "github.com/itops-inc/itdesk/internal/shared/errors"
	"github.com/itops-inc/itdesk/internal/shared/logger"
)

type mockEmailRequestRepository struct {
	SaveFunc    func(ctx context.Context, e *emailrequest.EmailRequest) error
	GetByIDFunc func(ctx context.Context, id uint) (*emailrequest.EmailRequest, error)
	ListFunc    func(ctx context.Context, f emailrequest.Filter) ([]*emailrequest.EmailRequest, int64, error)
	DeleteFunc  func(ctx context.Context, id uint) error

	calls int
}

func (m *mockEmailRequestRepository) Save(ctx context.Context, e *emailrequest.EmailRequest) error {
	m.calls++
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, e)
	}
	return nil
}

func (m *mockEmailRequestRepository) GetByID(ctx context.Context, id uint) (*emailrequest.EmailRequest, error) {
	m.calls++
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockEmailRequestRepository) List(ctx context.Context, f emailrequest.Filter) ([]*emailrequest.EmailRequest, int64, error) {
	m.calls++
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *mockEmailRequestRepository) Delete(ctx context.Context, id uint) error {
	m.calls++
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

var (
	admin = authorization.Actor{ID: 1, Role: authorization.RoleAdmin}
	owner = authorization.Actor{ID: 3, Role: authorization.RoleUser}
	other = authorization.Actor{ID: 4, Role: authorization.RoleUser}
)

func stored() *emailrequest.EmailRequest {
	return emailrequest.ReconstructEmailRequest(9, emailrequest.Details{
		ThaiName: "สมชาย", EnglishName: "Somchai", ReplyEmail: "hr@example.com",
	}, owner.ID, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
}

func TestCreateEmailRequest(t *testing.T) {
	repo := &mockEmailRequestRepository{SaveFunc: func(_ context.Context, e *emailrequest.EmailRequest) error {
		e.SetID(9)
		return nil
	}}
	uc := NewCreateEmailRequestUseCase(repo, logger.NewNopLogger())

	e, err := uc.Execute(context.Background(), CreateEmailRequestCommand{
		Details: emailrequest.Details{ThaiName: "สมชาย", EnglishName: "Somchai", ReplyEmail: "hr@example.com"},
		Actor:   owner,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(9), e.ID())
	assert.Equal(t, owner.ID, e.RequestedBy())
}

func TestListEmailRequests_OwnerScoping(t *testing.T) {
	var got emailrequest.Filter
	repo := &mockEmailRequestRepository{ListFunc: func(_ context.Context, f emailrequest.Filter) ([]*emailrequest.EmailRequest, int64, error) {
		got = f
		return nil, 0, nil
	}}
	uc := NewListEmailRequestsUseCase(repo, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), ListEmailRequestsQuery{Actor: owner})
	require.NoError(t, err)
	require.NotNil(t, got.RequestedBy)
	assert.Equal(t, owner.ID, *got.RequestedBy)

	_, err = uc.Execute(context.Background(), ListEmailRequestsQuery{Actor: admin, Limit: 500})
	require.NoError(t, err)
	assert.Nil(t, got.RequestedBy)
	assert.Equal(t, 100, got.PageSize)
}

func TestGetEmailRequest(t *testing.T) {
	repo := &mockEmailRequestRepository{GetByIDFunc: func(context.Context, uint) (*emailrequest.EmailRequest, error) {
		return stored(), nil
	}}
	uc := NewGetEmailRequestUseCase(repo, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), 9, owner)
	assert.NoError(t, err)
	_, err = uc.Execute(context.Background(), 9, admin)
	assert.NoError(t, err)
	_, err = uc.Execute(context.Background(), 9, other)
	assert.True(t, apperrors.IsForbiddenError(err))

	missing := NewGetEmailRequestUseCase(&mockEmailRequestRepository{}, logger.NewNopLogger())
	_, err = missing.Execute(context.Background(), 1, admin)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestDeleteEmailRequest(t *testing.T) {
	repo := &mockEmailRequestRepository{}
	uc := NewDeleteEmailRequestUseCase(repo, logger.NewNopLogger())
	_, err := uc.Execute(context.Background(), 9, owner)
	assert.True(t, apperrors.IsForbiddenError(err))
	assert.Zero(t, repo.calls)

	deleted := uint(0)
	repo = &mockEmailRequestRepository{
		GetByIDFunc: func(context.Context, uint) (*emailrequest.EmailRequest, error) { return stored(), nil },
		DeleteFunc: func(_ context.Context, id uint) error {
			deleted = id
			return nil
		},
	}
	before, err := NewDeleteEmailRequestUseCase(repo, logger.NewNopLogger()).Execute(context.Background(), 9, admin)
	require.NoError(t, err)
	assert.Equal(t, uint(9), deleted)
	assert.Equal(t, "Somchai", before["english_name"])
}
