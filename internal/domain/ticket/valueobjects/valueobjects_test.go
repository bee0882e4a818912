package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTicketStatus(t *testing.T) {
	for _, s := range AllStatuses() {
		got, err := NewTicketStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := NewTicketStatus("open")
	assert.Error(t, err)
	_, err = NewTicketStatus("REOPENED")
	assert.Error(t, err)
}

func TestIsResolvedFamily(t *testing.T) {
	assert.True(t, StatusResolved.IsResolvedFamily())
	assert.True(t, StatusClosed.IsResolvedFamily())
	assert.False(t, StatusCancelled.IsResolvedFamily())
	assert.False(t, StatusOpen.IsResolvedFamily())
	assert.False(t, StatusInProgress.IsResolvedFamily())
}

func TestNewPriority(t *testing.T) {
	p, err := NewPriority("URGENT")
	require.NoError(t, err)
	assert.True(t, p.IsUrgent())
	assert.Equal(t, PriorityMedium, DefaultPriority)

	_, err = NewPriority("CRITICAL")
	assert.Error(t, err)
}

func TestNewCategory(t *testing.T) {
	for _, c := range []string{"HARDWARE", "SOFTWARE", "NETWORK", "ACCOUNT", "EMAIL", "PRINTER", "OTHER"} {
		_, err := NewCategory(c)
		assert.NoError(t, err, c)
	}
	_, err := NewCategory("PHONE")
	assert.Error(t, err)
}
