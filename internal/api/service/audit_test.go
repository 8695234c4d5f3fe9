package service

import (
	"context"
	"testing"

	"github.com/cedarhq/taskboard/internal/api/domain"
	"github.com/stretchr/testify/require"
)

func TestAuditList(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	tasks := &TaskService{Store: st}
	svc := &AuditService{Store: st}

	admin := seedUser(t, st, "Admin", "admin@example.com", "password123", domain.RoleAdmin)
	alice := seedUser(t, st, "Alice", "alice@example.com", "password123", domain.RoleUser)

	// Two mutations by alice, one by the admin.
	task := seedTask(t, st, alice.ID, "Tracked")
	newStatus := domain.StatusDone
	_, err := tasks.Update(ctx, asPrincipal(alice), task.ID, UpdateTaskInput{Status: &newStatus})
	require.NoError(t, err)
	require.NoError(t, tasks.Delete(ctx, asPrincipal(alice), task.ID))

	_, err = tasks.Create(ctx, asPrincipal(admin), CreateTaskInput{
		Title:       "Admin task",
		Description: "created by admin",
		Status:      domain.StatusPending,
		Priority:    domain.PriorityLow,
		DueDate:     mustDate(t, "2026-09-20"),
	})
	require.NoError(t, err)

	t.Run("admin sees every entry", func(t *testing.T) {
		page, err := svc.List(ctx, asPrincipal(admin), domain.AuditFilter{})
		require.NoError(t, err)
		require.Equal(t, 3, page.Total)
	})

	t.Run("non-admin only sees entries they acted in", func(t *testing.T) {
		page, err := svc.List(ctx, asPrincipal(alice), domain.AuditFilter{})
		require.NoError(t, err)
		require.Equal(t, 2, page.Total)
		for _, e := range page.Data {
			require.Equal(t, alice.ID, e.UserID)
		}
	})

	t.Run("desc sort returns newest first", func(t *testing.T) {
		page, err := svc.List(ctx, asPrincipal(admin), domain.AuditFilter{Sort: domain.SortDesc})
		require.NoError(t, err)
		require.Equal(t, domain.AuditCreated, page.Data[0].Action)
		require.Equal(t, admin.ID, page.Data[0].UserID)
	})
}
