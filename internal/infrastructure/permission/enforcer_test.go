package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applogger "github.com/itops-inc/itdesk/internal/shared/logger"
)

func newTestEnforcer(t *testing.T) (*Enforcer, *gorm.DB) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	e, err := NewEnforcer(gdb, applogger.NewNopLogger())
	require.NoError(t, err)
	return e, gdb
}

func TestEnforcer_DefaultPolicy(t *testing.T) {
	e, _ := newTestEnforcer(t)
	p, err := LoadPolicyFile("")
	require.NoError(t, err)
	require.NoError(t, e.Seed(p))

	cases := []struct {
		role, resource, action string
		want                   bool
	}{
		{"ADMIN", ResourceTicket, ActionDelete, true},
		{"USER", ResourceTicket, ActionDelete, false},
		{"USER", ResourceTicket, ActionCreate, true},
		{"USER", ResourceEmailRequest, ActionDelete, false},
		{"ADMIN", ResourceEmailRequest, ActionDelete, true},
		{"GUEST", ResourceTicket, ActionRead, false},
	}
	for _, tc := range cases {
		got, err := e.Enforce(tc.role, tc.resource, tc.action)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s %s %s", tc.role, tc.resource, tc.action)
	}
}

func TestEnforcer_SeedIsIdempotentAndPersisted(t *testing.T) {
	e, gdb := newTestEnforcer(t)
	p, err := ParsePolicy([]byte("roles:\n  USER:\n    ticket: [read]\n"))
	require.NoError(t, err)

	require.NoError(t, e.Seed(p))
	require.NoError(t, e.Seed(p))

	var count int64
	require.NoError(t, gdb.Table("casbin_rule").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, e.LoadPolicy())
	ok, err := e.Enforce("USER", ResourceTicket, ActionRead)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEnforcer_SeedRemovesStaleRules(t *testing.T) {
	e, gdb := newTestEnforcer(t)
	before, err := ParsePolicy([]byte("roles:\n  USER:\n    ticket: [read, delete]\n"))
	require.NoError(t, err)
	require.NoError(t, e.Seed(before))

	ok, err := e.Enforce("USER", ResourceTicket, ActionDelete)
	require.NoError(t, err)
	require.True(t, ok)

	after, err := ParsePolicy([]byte("roles:\n  USER:\n    ticket: [read]\n"))
	require.NoError(t, err)
	require.NoError(t, e.Seed(after))

	ok, err = e.Enforce("USER", ResourceTicket, ActionDelete)
	require.NoError(t, err)
	assert.False(t, ok)

	var count int64
	require.NoError(t, gdb.Table("casbin_rule").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, e.LoadPolicy())
	ok, err = e.Enforce("USER", ResourceTicket, ActionDelete)
	require.NoError(t, err)
	assert.False(t, ok, "removal is persisted")
}

func TestParsePolicy(t *testing.T) {
	_, err := ParsePolicy([]byte("roles: {}"))
	assert.Error(t, err)

	p, err := ParsePolicy([]byte("roles:\n  B:\n    x: [b, a]\n  A:\n    y: [c]\n"))
	require.NoError(t, err)
	assert.Equal(t, [][3]string{{"A", "y", "c"}, {"B", "x", "a"}, {"B", "x", "b"}}, p.Rules())
}
