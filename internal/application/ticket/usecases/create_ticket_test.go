package usecases

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itops-inc/itdesk/internal/domain/ticket"
	vo "github.com/itops-inc/itdesk/internal/domain/ticket/valueobjects"
	apperrors "github.com/itops-inc/itdesk/internal/shared/errors"
	"github.com/itops-inc/itdesk/internal/shared/logger"
)

func TestCreateTicketUseCase_Execute_Success(t *testing.T) {
	var saved *ticket.Ticket
	repo := &mockTicketRepository{
		SaveFunc: func(_ context.Context, tk *ticket.Ticket) error {
			saved = tk
			return tk.SetID(100)
		},
	}
	uc := NewCreateTicketUseCase(repo, logger.NewNopLogger())
	uc.now = fixedClock

	res, err := uc.Execute(context.Background(), CreateTicketCommand{
		Title:       "Printer offline",
		Description: "3rd floor printer shows offline",
		Category:    "PRINTER",
		Actor:       ownerActor,
	})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, uint(100), res.Ticket.ID())
	assert.Equal(t, ownerActor.ID, res.Ticket.ReportedByID())
	assert.Equal(t, vo.StatusOpen, res.Ticket.Status())
	assert.Equal(t, vo.PriorityMedium, res.Ticket.Priority())
	assert.Nil(t, res.Ticket.Resolution())
	assert.Equal(t, testNow, res.Ticket.CreatedAt())
	assert.Equal(t, uint(100), res.Event.TicketID)
}

func TestCreateTicketUseCase_Execute_ValidationPerField(t *testing.T) {
	repo := &mockTicketRepository{}
	uc := NewCreateTicketUseCase(repo, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), CreateTicketCommand{
		Title:       strings.Repeat("x", 201),
		Description: "",
		Category:    "PHONE",
		Priority:    "CRITICAL",
		Actor:       ownerActor,
	})

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	assert.Equal(t, map[string]string{
		"title":       "title must be at most 200 characters long",
		"description": "description is required",
		"category":    "category must be one of [HARDWARE SOFTWARE NETWORK ACCOUNT EMAIL PRINTER OTHER]",
		"priority":    "priority must be one of [LOW MEDIUM HIGH URGENT]",
	}, appErr.Fields)
	assert.Zero(t, repo.calls)
}

func TestCreateTicketUseCase_Execute_BlankTextIsRequired(t *testing.T) {
	repo := &mockTicketRepository{}
	uc := NewCreateTicketUseCase(repo, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), CreateTicketCommand{
		Title:       "   ",
		Description: "\t\n",
		Category:    "NETWORK",
		Actor:       ownerActor,
	})

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, map[string]string{
		"title":       "title is required",
		"description": "description is required",
	}, appErr.Fields)
	assert.Zero(t, repo.calls)
}

func TestCreateTicketUseCase_Execute_MissingCategory(t *testing.T) {
	uc := NewCreateTicketUseCase(&mockTicketRepository{}, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), CreateTicketCommand{
		Title: "t", Description: "d", Actor: ownerActor,
	})

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "category is required", appErr.Fields["category"])
}

func TestCreateTicketUseCase_Execute_SaveFails(t *testing.T) {
	repo := &mockTicketRepository{
		SaveFunc: func(context.Context, *ticket.Ticket) error { return errors.New("db down") },
	}
	uc := NewCreateTicketUseCase(repo, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), CreateTicketCommand{
		Title: "t", Description: "d", Category: "OTHER", Actor: ownerActor,
	})

	require.Error(t, err)
	assert.False(t, apperrors.IsAppError(err))
}
