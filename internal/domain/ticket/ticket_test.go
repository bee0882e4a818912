package ticket

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/itops-inc/itdesk/internal/domain/ticket/valueobjects"
)

var fixedNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func TestNewTicket(t *testing.T) {
	tk, err := NewTicket("  Printer jam ", "Tray 2 keeps jamming", vo.CategoryPrinter, "", 7, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "Printer jam", tk.Title())
	assert.Equal(t, vo.PriorityMedium, tk.Priority())
	assert.Equal(t, vo.StatusOpen, tk.Status())
	assert.Equal(t, uint(7), tk.ReportedByID())
	assert.Nil(t, tk.Resolution())
	assert.Nil(t, tk.AssignedToID())
	assert.Nil(t, tk.ResolvedAt())
	assert.Equal(t, fixedNow, tk.CreatedAt())
}

func TestNewTicket_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		title, desc string
		category    vo.Category
		priority    vo.Priority
		reporter    uint
	}{
		{"empty title", " ", "d", vo.CategoryOther, "", 1},
		{"long title", strings.Repeat("a", MaxTitleLength+1), "d", vo.CategoryOther, "", 1},
		{"empty description", "t", "", vo.CategoryOther, "", 1},
		{"bad category", "t", "d", "PHONE", "", 1},
		{"bad priority", "t", "d", vo.CategoryOther, "CRITICAL", 1},
		{"no reporter", "t", "d", vo.CategoryOther, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTicket(tt.title, tt.desc, tt.category, tt.priority, tt.reporter, fixedNow)
			assert.Error(t, err)
		})
	}
}

func TestTicketApply(t *testing.T) {
	tk, err := NewTicket("t", "d", vo.CategoryNetwork, vo.PriorityLow, 1, fixedNow)
	require.NoError(t, err)

	assignee := uint(5)
	resolution := "replaced cable"
	later := fixedNow.Add(time.Hour)
	tk.Apply(Patch{
		FieldStatus:       vo.StatusResolved,
		FieldAssignedToID: &assignee,
		FieldResolution:   &resolution,
		FieldResolvedAt:   later,
	}, later)

	assert.Equal(t, vo.StatusResolved, tk.Status())
	assert.True(t, tk.IsAssignedTo(5))
	assert.Equal(t, "replaced cable", *tk.Resolution())
	require.NotNil(t, tk.ResolvedAt())
	assert.Equal(t, later, *tk.ResolvedAt())
	assert.Equal(t, later, tk.UpdatedAt())
	assert.Equal(t, uint(1), tk.ReportedByID())
}

func TestTicketClone_IsDetached(t *testing.T) {
	assignee := uint(3)
	tk, err := ReconstructTicket(1, "t", "d", vo.CategoryOther, vo.PriorityLow, vo.StatusOpen,
		nil, 2, &assignee, fixedNow, fixedNow, nil)
	require.NoError(t, err)

	c := tk.Clone()
	other := uint(9)
	tk.Apply(Patch{FieldAssignedToID: &other, FieldTitle: "changed"}, fixedNow)

	assert.Equal(t, "t", c.Title())
	assert.Equal(t, uint(3), *c.AssignedToID())
}

func TestIsNewFor(t *testing.T) {
	tk, err := NewTicket("t", "d", vo.CategoryOther, "", 1, fixedNow)
	require.NoError(t, err)

	assert.True(t, tk.IsNewFor(false, fixedNow.Add(23*time.Hour)))
	assert.False(t, tk.IsNewFor(true, fixedNow.Add(time.Hour)))
	assert.False(t, tk.IsNewFor(false, fixedNow.Add(25*time.Hour)))
}

func TestNewComment(t *testing.T) {
	c, err := NewComment(1, 2, "  rebooted  ", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "rebooted", c.Content())

	_, err = NewComment(1, 2, "   ", fixedNow)
	assert.Error(t, err)
	_, err = NewComment(0, 2, "x", fixedNow)
	assert.Error(t, err)
}
