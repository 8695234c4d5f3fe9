package sqlite

import (
	"context"
	"fmt"
	"testing"

	"github.com/cedarhq/taskboard/internal/api/domain"
	"github.com/cedarhq/taskboard/internal/api/store"
	"github.com/cedarhq/taskboard/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTaskFixture(t *testing.T) (*Store, domain.User) {
	t.Helper()
	ctx := context.Background()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	owner := domain.User{
		ID:           idx.New().String(),
		Name:         "Owner",
		Email:        "owner@example.com",
		PasswordHash: "hash",
		Role:         domain.RoleUser,
	}
	require.NoError(t, st.Users().CreateUser(ctx, owner))
	return st, owner
}

func insertTask(t *testing.T, st *Store, ownerID, title, description, due string, status domain.TaskStatus, priority domain.TaskPriority) domain.Task {
	t.Helper()

	date, err := domain.ParseDate(due)
	require.NoError(t, err)

	task := domain.Task{
		ID:          idx.New().String(),
		Title:       title,
		Description: description,
		Status:      status,
		Priority:    priority,
		DueDate:     date,
		UserID:      ownerID,
	}
	require.NoError(t, st.Tasks().CreateTask(context.Background(), task))
	return task
}

func TestTasksCRUD(t *testing.T) {
	ctx := context.Background()
	st, owner := newTaskFixture(t)

	task := insertTask(t, st, owner.ID, "Initial", "first version", "2026-09-10", domain.StatusPending, domain.PriorityLow)

	t.Run("round trip preserves the date as a plain day", func(t *testing.T) {
		got, err := st.Tasks().GetTaskByID(ctx, task.ID)
		require.NoError(t, err)
		require.Equal(t, "2026-09-10", got.DueDate.String())
		require.False(t, got.CreatedAt.IsZero())
	})

	t.Run("update rewrites every mutable column", func(t *testing.T) {
		got, err := st.Tasks().GetTaskByID(ctx, task.ID)
		require.NoError(t, err)

		got.Title = "Renamed"
		got.Status = domain.StatusDone
		require.NoError(t, st.Tasks().UpdateTask(ctx, got))

		again, err := st.Tasks().GetTaskByID(ctx, task.ID)
		require.NoError(t, err)
		require.Equal(t, "Renamed", again.Title)
		require.Equal(t, domain.StatusDone, again.Status)
	})

	t.Run("missing ids map to not found", func(t *testing.T) {
		_, err := st.Tasks().GetTaskByID(ctx, "01K00000000000000000000000")
		require.ErrorIs(t, err, store.ErrNotFound)

		err = st.Tasks().DeleteTask(ctx, "01K00000000000000000000000")
		require.ErrorIs(t, err, store.ErrNotFound)

		err = st.Tasks().UpdateTask(ctx, domain.Task{ID: "01K00000000000000000000000", DueDate: task.DueDate, UserID: owner.ID, Status: domain.StatusPending, Priority: domain.PriorityLow, Title: "x", Description: "x"})
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete removes the row", func(t *testing.T) {
		require.NoError(t, st.Tasks().DeleteTask(ctx, task.ID))
		_, err := st.Tasks().GetTaskByID(ctx, task.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestListTasksFilters(t *testing.T) {
	ctx := context.Background()
	st, owner := newTaskFixture(t)

	insertTask(t, st, owner.ID, "Pay invoices", "accounting backlog", "2026-09-01", domain.StatusPending, domain.PriorityHigh)
	insertTask(t, st, owner.ID, "Refactor parser", "tech debt", "2026-09-10", domain.StatusInProgress, domain.PriorityMedium)
	insertTask(t, st, owner.ID, "Ship release", "cut the 2.0 TAG", "2026-09-20", domain.StatusDone, domain.PriorityHigh)

	page := domain.Pagination{Page: 1, PerPage: 10}

	list := func(f domain.TaskFilter) ([]domain.Task, int) {
		f.Pagination = page
		tasks, total, err := st.Tasks().ListTasks(ctx, f)
		require.NoError(t, err)
		return tasks, total
	}

	t.Run("status exact match", func(t *testing.T) {
		s := domain.StatusDone
		tasks, total := list(domain.TaskFilter{Status: &s})
		require.Equal(t, 1, total)
		require.Equal(t, "Ship release", tasks[0].Title)
	})

	t.Run("priority exact match", func(t *testing.T) {
		p := domain.PriorityHigh
		_, total := list(domain.TaskFilter{Priority: &p})
		require.Equal(t, 2, total)
	})

	t.Run("due date range is inclusive on both ends", func(t *testing.T) {
		from, err := domain.ParseDate("2026-09-01")
		require.NoError(t, err)
		to, err := domain.ParseDate("2026-09-10")
		require.NoError(t, err)

		_, total := list(domain.TaskFilter{DueFrom: &from, DueTo: &to})
		require.Equal(t, 2, total)
	})

	t.Run("search is case-insensitive over title and description", func(t *testing.T) {
		tasks, total := list(domain.TaskFilter{Search: "PARSER"})
		require.Equal(t, 1, total)
		require.Equal(t, "Refactor parser", tasks[0].Title)

		_, total = list(domain.TaskFilter{Search: "tag"})
		require.Equal(t, 1, total)
	})

	t.Run("filters are conjunctive", func(t *testing.T) {
		p := domain.PriorityHigh
		s := domain.StatusPending
		tasks, total := list(domain.TaskFilter{Priority: &p, Status: &s})
		require.Equal(t, 1, total)
		require.Equal(t, "Pay invoices", tasks[0].Title)
	})

	t.Run("no filters return everything", func(t *testing.T) {
		_, total := list(domain.TaskFilter{})
		require.Equal(t, 3, total)
	})
}

func TestListTasksPagination(t *testing.T) {
	ctx := context.Background()
	st, owner := newTaskFixture(t)

	for i := range 25 {
		insertTask(t, st, owner.ID,
			fmt.Sprintf("Task %02d", i), "bulk", "2026-09-15",
			domain.StatusPending, domain.PriorityLow)
	}

	t.Run("total counts all rows while pages stay bounded", func(t *testing.T) {
		tasks, total, err := st.Tasks().ListTasks(ctx, domain.TaskFilter{
			Pagination: domain.Pagination{Page: 1, PerPage: 10},
		})
		require.NoError(t, err)
		require.Equal(t, 25, total)
		require.Len(t, tasks, 10)
	})

	t.Run("last page holds the remainder", func(t *testing.T) {
		tasks, total, err := st.Tasks().ListTasks(ctx, domain.TaskFilter{
			Pagination: domain.Pagination{Page: 3, PerPage: 10},
		})
		require.NoError(t, err)
		require.Equal(t, 25, total)
		require.Len(t, tasks, 5)
	})

	t.Run("ordering is deterministic across repeated calls", func(t *testing.T) {
		first, _, err := st.Tasks().ListTasks(ctx, domain.TaskFilter{
			Pagination: domain.Pagination{Page: 2, PerPage: 10},
		})
		require.NoError(t, err)

		second, _, err := st.Tasks().ListTasks(ctx, domain.TaskFilter{
			Pagination: domain.Pagination{Page: 2, PerPage: 10},
		})
		require.NoError(t, err)
		require.Equal(t, first, second)
	})

	t.Run("desc flips the page order", func(t *testing.T) {
		asc, _, err := st.Tasks().ListTasks(ctx, domain.TaskFilter{
			Sort:       domain.SortAsc,
			Pagination: domain.Pagination{Page: 1, PerPage: 25},
		})
		require.NoError(t, err)

		desc, _, err := st.Tasks().ListTasks(ctx, domain.TaskFilter{
			Sort:       domain.SortDesc,
			Pagination: domain.Pagination{Page: 1, PerPage: 25},
		})
		require.NoError(t, err)
		require.Equal(t, asc[0].ID, desc[len(desc)-1].ID)
	})
}
