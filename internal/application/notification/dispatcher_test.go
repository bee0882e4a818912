package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/itops-inc/itdesk/internal/domain/emailrequest"
	"github.com/itops-inc/itdesk/internal/domain/ticket"
	vo "github.com/itops-inc/itdesk/internal/domain/ticket/valueobjects"
	"github.com/itops-inc/itdesk/internal/domain/user"
	"github.com/itops-inc/itdesk/internal/shared/logger"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Name() string { return "mock" }

func (m *mockNotifier) Notify(ctx context.Context, msg Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type stubUsers struct {
	users map[uint]*user.User
	err   error
}

func (s *stubUsers) GetByID(_ context.Context, id uint) (*user.User, error) {
	return s.users[id], s.err
}

func (s *stubUsers) GetByIDs(_ context.Context, ids []uint) (map[uint]*user.User, error) {
	out := make(map[uint]*user.User)
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out[id] = u
		}
	}
	return out, s.err
}

func (s *stubUsers) Upsert(context.Context, *user.User) error { return nil }

var created = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func directory() *stubUsers {
	return &stubUsers{users: map[uint]*user.User{
		1: {ID: 1, Name: "Reporter", Email: "reporter@example.com", Department: "Sales"},
		2: {ID: 2, Name: "Tech", Email: "tech@example.com", Department: "IT"},
	}}
}

func sampleTicket(t *testing.T, assignee *uint, status vo.TicketStatus) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.ReconstructTicket(5, "VPN down", "Cannot connect", vo.CategoryNetwork, vo.PriorityHigh,
		status, nil, 1, assignee, created, created.Add(time.Hour), nil)
	require.NoError(t, err)
	return tk
}

func TestDispatcher_NewTicket(t *testing.T) {
	n := &mockNotifier{}
	n.On("Notify", mock.Anything, mock.MatchedBy(func(msg Message) bool {
		return msg.Kind == KindNewTicket &&
			msg.Ticket.TicketID == 5 &&
			msg.Ticket.ReportedBy.Email == "reporter@example.com" &&
			msg.Ticket.AssignedTo == nil &&
			msg.Ticket.OldStatus == nil &&
			assert.ObjectsAreEqual([]string{"it@example.com"}, msg.Recipients)
	})).Return(nil).Once()

	d := NewDispatcher(directory(), []string{"it@example.com"}, logger.NewNopLogger(), n)
	require.NoError(t, d.NewTicket(context.Background(), sampleTicket(t, nil, vo.StatusOpen)))
	n.AssertExpectations(t)
}

func TestDispatcher_StatusUpdated_NotifiesReporterAndAssignee(t *testing.T) {
	assignee := uint(2)
	var got Message
	n := &mockNotifier{}
	n.On("Notify", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		got = args.Get(1).(Message)
	}).Return(nil).Once()

	d := NewDispatcher(directory(), []string{"it@example.com"}, logger.NewNopLogger(), n)
	err := d.StatusUpdated(context.Background(), sampleTicket(t, &assignee, vo.StatusResolved), "OPEN")
	require.NoError(t, err)

	assert.Equal(t, KindStatusUpdate, got.Kind)
	assert.Equal(t, []string{"reporter@example.com", "tech@example.com"}, got.Recipients)
	require.NotNil(t, got.Ticket.OldStatus)
	assert.Equal(t, "OPEN", *got.Ticket.OldStatus)
	assert.Equal(t, "RESOLVED", got.Ticket.Status)
	require.NotNil(t, got.Ticket.AssignedTo)
	assert.Equal(t, "Tech", got.Ticket.AssignedTo.Name)
	require.NotNil(t, got.Ticket.UpdatedAt)
}

func TestDispatcher_ContinuesAfterTransportFailure(t *testing.T) {
	failing := &mockNotifier{}
	failing.On("Notify", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()
	ok := &mockNotifier{}
	ok.On("Notify", mock.Anything, mock.Anything).Return(nil).Once()

	d := NewDispatcher(directory(), nil, logger.NewNopLogger(), failing, ok)
	err := d.NewTicket(context.Background(), sampleTicket(t, nil, vo.StatusOpen))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")
	failing.AssertExpectations(t)
	ok.AssertExpectations(t)
}

func TestDispatcher_UnknownReporterStillNotifies(t *testing.T) {
	var got Message
	n := &mockNotifier{}
	n.On("Notify", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		got = args.Get(1).(Message)
	}).Return(nil)

	d := NewDispatcher(&stubUsers{users: map[uint]*user.User{}}, nil, logger.NewNopLogger(), n)
	require.NoError(t, d.NewTicket(context.Background(), sampleTicket(t, nil, vo.StatusOpen)))
	assert.Equal(t, "user #1", got.Ticket.ReportedBy.Name)
}

func TestDispatcher_NewEmailRequest(t *testing.T) {
	var got Message
	n := &mockNotifier{}
	n.On("Notify", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		got = args.Get(1).(Message)
	}).Return(nil)

	e := emailrequest.ReconstructEmailRequest(4, emailrequest.Details{
		ThaiName: "สมหญิง", EnglishName: "Somying", Department: "HR", ReplyEmail: "hr@example.com",
	}, 1, created)

	d := NewDispatcher(directory(), []string{"it@example.com"}, logger.NewNopLogger(), n)
	require.NoError(t, d.NewEmailRequest(context.Background(), e))

	assert.Equal(t, KindNewEmailRequest, got.Kind)
	require.NotNil(t, got.EmailRequest)
	assert.Equal(t, "Somying", got.EmailRequest.EnglishName)
	assert.Equal(t, "Reporter", got.EmailRequest.RequestedBy.Name)
}

func TestDedupeEmails(t *testing.T) {
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, dedupeEmails([]string{"a@x.com", "", "A@X.com ", "b@x.com"}))
}
