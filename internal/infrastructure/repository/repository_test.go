package repository

import (
	"context"
	"encoding/json"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/itops-inc/itdesk/internal/domain/audit"
	"github.com/itops-inc/itdesk/internal/domain/emailrequest"
	"github.com/itops-inc/itdesk/internal/domain/ticket"
	vo "github.com/itops-inc/itdesk/internal/domain/ticket/valueobjects"
	"github.com/itops-inc/itdesk/internal/domain/user"
	"github.com/itops-inc/itdesk/internal/infrastructure/persistence/models"
	"github.com/itops-inc/itdesk/internal/shared/authorization"
	apperrors "github.com/itops-inc/itdesk/internal/shared/errors"
)

var baseTime = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(models.All()...))
	return gdb
}

func saveTicket(t *testing.T, repo *TicketRepository, title string, cat vo.Category, reporter uint, createdAt time.Time) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket(title, "description of "+title, cat, vo.PriorityMedium, reporter, createdAt)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), tk))
	require.NotZero(t, tk.ID())
	return tk
}

func TestTicketRepository_SaveAndGet(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	comments := NewTicketCommentRepository(gdb)
	ctx := context.Background()

	tk := saveTicket(t, repo, "Printer jam", vo.CategoryPrinter, 10, baseTime)

	for i, body := range []string{"first", "second"} {
		c, err := ticket.NewComment(tk.ID(), 10, body, baseTime.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		require.NoError(t, comments.Save(ctx, c))
	}

	found, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Printer jam", found.Title())
	assert.Equal(t, vo.StatusOpen, found.Status())
	assert.Equal(t, uint(10), found.ReportedByID())
	assert.Nil(t, found.AssignedToID())
	assert.Nil(t, found.ResolvedAt())
	assert.True(t, found.CreatedAt().Equal(baseTime))
	assert.Empty(t, found.Comments(), "comments load through the comment repository")

	listed, err := comments.ListByTicketID(ctx, tk.ID())
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "first", listed[0].Content())

	missing, err := repo.GetByID(ctx, 9999)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTicketRepository_List(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()

	saveTicket(t, repo, "a", vo.CategoryNetwork, 10, baseTime)
	saveTicket(t, repo, "b", vo.CategoryPrinter, 10, baseTime.Add(time.Hour))
	saveTicket(t, repo, "c", vo.CategoryNetwork, 11, baseTime.Add(2*time.Hour))

	t.Run("newest first without owner predicate", func(t *testing.T) {
		items, total, err := repo.List(ctx, ticket.TicketFilter{Page: 1, PageSize: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, items, 3)
		assert.Equal(t, "c", items[0].Title())
		assert.Equal(t, "a", items[2].Title())
	})

	t.Run("owner scoped", func(t *testing.T) {
		owner := uint(10)
		items, total, err := repo.List(ctx, ticket.TicketFilter{ReportedByID: &owner, Page: 1, PageSize: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		for _, it := range items {
			assert.Equal(t, owner, it.ReportedByID())
		}
	})

	t.Run("category filter with pagination", func(t *testing.T) {
		cat := vo.CategoryNetwork
		items, total, err := repo.List(ctx, ticket.TicketFilter{Category: &cat, Page: 2, PageSize: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, items, 1)
		assert.Equal(t, "a", items[0].Title())
	})

	t.Run("page beyond offset range is empty", func(t *testing.T) {
		items, total, err := repo.List(ctx, ticket.TicketFilter{Page: math.MaxInt64/100 + 2, PageSize: 100})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Empty(t, items)
	})
}

func TestTicketRepository_UpdatePersistsPatchOnly(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()
	tk := saveTicket(t, repo, "VPN down", vo.CategoryNetwork, 10, baseTime)

	assignee := uint(20)
	resolvedAt := baseTime.Add(3 * time.Hour)
	patch := ticket.Patch{
		ticket.FieldStatus:       vo.StatusResolved,
		ticket.FieldAssignedToID: &assignee,
		ticket.FieldResolvedAt:   resolvedAt,
	}
	require.NoError(t, repo.Update(ctx, tk.ID(), patch, resolvedAt))

	found, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, vo.StatusResolved, found.Status())
	require.NotNil(t, found.AssignedToID())
	assert.Equal(t, assignee, *found.AssignedToID())
	require.NotNil(t, found.ResolvedAt())
	assert.True(t, found.ResolvedAt().Equal(resolvedAt))
	assert.Equal(t, "VPN down", found.Title())
	assert.Equal(t, uint(10), found.ReportedByID())

	require.NoError(t, repo.Update(ctx, tk.ID(), ticket.Patch{ticket.FieldAssignedToID: (*uint)(nil)}, resolvedAt))
	found, err = repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Nil(t, found.AssignedToID())
}

func TestTicketRepository_UpdateDeletedTicketIsNotFound(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()
	tk := saveTicket(t, repo, "Laptop fan", vo.CategoryHardware, 10, baseTime)

	patch := ticket.Patch{ticket.FieldTitle: "Laptop fan noisy"}
	require.NoError(t, repo.Update(ctx, tk.ID(), patch, baseTime))
	require.NoError(t, repo.Update(ctx, tk.ID(), patch, baseTime), "identical write is not a miss")

	require.NoError(t, repo.Delete(ctx, tk.ID()))
	err := repo.Update(ctx, tk.ID(), patch, baseTime.Add(time.Minute))
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestTicketRepository_ConcurrentUpdatesLastWriterWins(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()
	tk := saveTicket(t, repo, "race", vo.CategoryOther, 10, baseTime)

	statuses := []vo.TicketStatus{vo.StatusInProgress, vo.StatusCancelled}
	var wg sync.WaitGroup
	errs := make([]error, len(statuses))
	for i, st := range statuses {
		wg.Add(1)
		go func(i int, st vo.TicketStatus) {
			defer wg.Done()
			errs[i] = repo.Update(ctx, tk.ID(), ticket.Patch{ticket.FieldStatus: st}, baseTime.Add(time.Minute))
		}(i, st)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	found, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Contains(t, statuses, found.Status())
}

func TestTicketRepository_DeleteCascadeInTransaction(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	comments := NewTicketCommentRepository(gdb)
	views := NewTicketViewRepository(gdb)
	ctx := context.Background()

	tk := saveTicket(t, repo, "old", vo.CategoryOther, 10, baseTime)
	c, err := ticket.NewComment(tk.ID(), 10, "note", baseTime)
	require.NoError(t, err)
	require.NoError(t, comments.Save(ctx, c))
	require.NoError(t, views.Upsert(ctx, ticket.View{TicketID: tk.ID(), UserID: 10, ViewedAt: baseTime}))

	require.NoError(t, comments.DeleteByTicketID(ctx, tk.ID()))
	require.NoError(t, views.DeleteByTicketID(ctx, tk.ID()))
	require.NoError(t, repo.Delete(ctx, tk.ID()))

	found, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Nil(t, found)
	left, err := comments.ListByTicketID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestTicketViewRepository_UpsertIsIdempotent(t *testing.T) {
	gdb := setupTestDB(t)
	views := NewTicketViewRepository(gdb)
	ctx := context.Background()

	require.NoError(t, views.Upsert(ctx, ticket.View{TicketID: 1, UserID: 5, ViewedAt: baseTime}))
	later := baseTime.Add(time.Hour)
	require.NoError(t, views.Upsert(ctx, ticket.View{TicketID: 1, UserID: 5, ViewedAt: later}))

	var rows []models.TicketViewModel
	require.NoError(t, gdb.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, later.UnixMilli(), rows[0].ViewedAt)

	viewed, err := views.ViewedTicketIDs(ctx, 5, []uint{1, 2})
	require.NoError(t, err)
	assert.Equal(t, map[uint]bool{1: true}, viewed)

	empty, err := views.ViewedTicketIDs(ctx, 5, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTicketViewRepository_DeleteViewedBefore(t *testing.T) {
	gdb := setupTestDB(t)
	views := NewTicketViewRepository(gdb)
	ctx := context.Background()

	require.NoError(t, views.Upsert(ctx, ticket.View{TicketID: 1, UserID: 5, ViewedAt: baseTime}))
	require.NoError(t, views.Upsert(ctx, ticket.View{TicketID: 2, UserID: 5, ViewedAt: baseTime.Add(48 * time.Hour)}))

	n, err := views.DeleteViewedBefore(ctx, baseTime.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	viewed, err := views.ViewedTicketIDs(ctx, 5, []uint{1, 2})
	require.NoError(t, err)
	assert.Equal(t, map[uint]bool{2: true}, viewed)
}

func TestEmailRequestRepository(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewEmailRequestRepository(gdb)
	ctx := context.Background()

	for i, owner := range []uint{3, 3, 4} {
		e, err := emailrequest.NewEmailRequest(emailrequest.Details{
			ThaiName: "ชื่อ", EnglishName: "Name", ReplyEmail: "hr@example.com",
		}, owner, baseTime.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, e))
	}

	owner := uint(3)
	items, total, err := repo.List(ctx, emailrequest.Filter{RequestedBy: &owner, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 2)
	assert.True(t, items[0].CreatedAt().After(items[1].CreatedAt()))

	require.NoError(t, repo.Delete(ctx, items[0].ID()))
	gone, err := repo.GetByID(ctx, items[0].ID())
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestAuditLogRepository_Append(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewAuditLogRepository(gdb)

	entry := &audit.Entry{
		Action:     audit.ActionTicketUpdate,
		EntityType: audit.EntityTicket,
		EntityID:   "7",
		ActorID:    1,
		ActorEmail: "admin@example.com",
		Details: audit.Details{
			Before: map[string]any{"status": "OPEN"},
			After:  map[string]any{"status": "RESOLVED"},
		},
	}
	require.NoError(t, repo.Append(context.Background(), entry))
	assert.NotZero(t, entry.ID)

	var row models.AuditLogModel
	require.NoError(t, gdb.First(&row, entry.ID).Error)
	var details audit.Details
	require.NoError(t, json.Unmarshal(row.Details, &details))
	assert.Equal(t, "RESOLVED", details.After["status"])
	assert.Nil(t, details.Metadata)
}

func TestUserRepository_UpsertAndLookup(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewUserRepository(gdb)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &user.User{ID: 10, Name: "Old", Email: "a@example.com", Role: authorization.RoleUser}))
	require.NoError(t, repo.Upsert(ctx, &user.User{ID: 10, Name: "New", Email: "a@example.com", Department: "Ops", Role: authorization.RoleAdmin}))

	u, err := repo.GetByID(ctx, 10)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "New", u.Name)
	assert.Equal(t, authorization.RoleAdmin, u.Role)

	byID, err := repo.GetByIDs(ctx, []uint{10, 11})
	require.NoError(t, err)
	assert.Len(t, byID, 1)

	missing, err := repo.GetByID(ctx, 11)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}
