package service

import (
	"testing"

	"github.com/cedarhq/taskboard/internal/api/domain"
	"github.com/stretchr/testify/require"
)

func TestCanTask(t *testing.T) {
	t.Parallel()

	admin := domain.Principal{UserID: "admin-1", Role: domain.RoleAdmin}
	owner := domain.Principal{UserID: "user-1", Role: domain.RoleUser}

	t.Run("admin may act on any task", func(t *testing.T) {
		for _, action := range []Action{ActionList, ActionCreate, ActionUpdate, ActionDelete} {
			require.True(t, CanTask(admin, action, "someone-else"))
		}
	})

	t.Run("user may act on own task", func(t *testing.T) {
		for _, action := range []Action{ActionUpdate, ActionDelete} {
			require.True(t, CanTask(owner, action, owner.UserID))
		}
	})

	t.Run("user may not act on another user's task", func(t *testing.T) {
		for _, action := range []Action{ActionUpdate, ActionDelete} {
			require.False(t, CanTask(owner, action, "someone-else"))
		}
	})

	t.Run("unknown role is denied", func(t *testing.T) {
		p := domain.Principal{UserID: "u", Role: domain.Role("superuser")}
		require.False(t, CanTask(p, ActionUpdate, "u"))
	})
}

func TestCanUser(t *testing.T) {
	t.Parallel()

	admin := domain.Principal{UserID: "admin-1", Role: domain.RoleAdmin}
	user := domain.Principal{UserID: "user-1", Role: domain.RoleUser}

	for _, action := range []Action{ActionList, ActionCreate, ActionUpdate, ActionDelete} {
		require.True(t, CanUser(admin, action))
		require.False(t, CanUser(user, action))
	}
}
