package migration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/itops-inc/itdesk/internal/shared/constants"
	"github.com/itops-inc/itdesk/internal/shared/logger"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return gdb
}

func TestGooseStrategy_UpAndDown(t *testing.T) {
	gdb := openSQLite(t)
	ctx := context.Background()
	s := NewGooseStrategy("sqlite", logger.NewNopLogger())

	require.NoError(t, s.Migrate(ctx, gdb))
	version, err := s.GetVersion(ctx, gdb)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
	for _, table := range []string{constants.TableTickets, constants.TableTicketViews, constants.TableAuditLogs} {
		assert.True(t, gdb.Migrator().HasTable(table), table)
	}

	// Re-running is a no-op.
	require.NoError(t, s.Migrate(ctx, gdb))

	require.NoError(t, s.MigrateDown(ctx, gdb, 1))
	assert.False(t, gdb.Migrator().HasTable(constants.TableTickets))
}

func TestGooseStrategy_UnknownDriver(t *testing.T) {
	err := NewGooseStrategy("oracle", logger.NewNopLogger()).Migrate(context.Background(), openSQLite(t))
	assert.ErrorContains(t, err, "unsupported migration driver")
}

func TestNewManager_PicksStrategyByEnvironment(t *testing.T) {
	log := logger.NewNopLogger()
	assert.Equal(t, "gorm_auto_migrate", NewManager(constants.EnvDevelopment, "sqlite", log).GetStrategy().GetName())
	assert.Equal(t, "goose", NewManager(constants.EnvProduction, "mysql", log).GetStrategy().GetName())

	gdb := openSQLite(t)
	require.NoError(t, NewManager(constants.EnvDevelopment, "sqlite", log).Migrate(context.Background(), gdb))
	assert.True(t, gdb.Migrator().HasTable(constants.TableEmailRequests))
}
