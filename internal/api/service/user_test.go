package service

import (
	"context"
	"testing"

	"github.com/cedarhq/taskboard/internal/api/domain"
	"github.com/cedarhq/taskboard/internal/api/store"
	"github.com/cedarhq/taskboard/pkg/cryptox"
	"github.com/cedarhq/taskboard/pkg/validate"
	"github.com/stretchr/testify/require"
)

func TestUserServiceAuthorization(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}

	alice := seedUser(t, st, "Alice", "alice@example.com", "password123", domain.RoleUser)
	bob := seedUser(t, st, "Bob", "bob@example.com", "password123", domain.RoleUser)

	t.Run("every operation is forbidden for non-admins", func(t *testing.T) {
		p := asPrincipal(alice)

		_, err := svc.List(ctx, p, domain.UserFilter{})
		require.ErrorIs(t, err, ErrForbidden)

		_, err = svc.Create(ctx, p, CreateUserInput{Name: "X", Email: "x@example.com", Password: "password123", Role: domain.RoleUser})
		require.ErrorIs(t, err, ErrForbidden)

		name := "New Name"
		_, err = svc.Update(ctx, p, bob.ID, UpdateUserInput{Name: &name})
		require.ErrorIs(t, err, ErrForbidden)

		require.ErrorIs(t, svc.Delete(ctx, p, bob.ID), ErrForbidden)

		// Nothing changed under the rejected calls.
		got, err := st.Users().GetUserByID(ctx, bob.ID)
		require.NoError(t, err)
		require.Equal(t, "Bob", got.Name)
	})
}

func TestUserCRUD(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}

	admin := seedUser(t, st, "Admin", "admin@example.com", "password123", domain.RoleAdmin)
	p := asPrincipal(admin)

	t.Run("create hashes the password", func(t *testing.T) {
		user, err := svc.Create(ctx, p, CreateUserInput{
			Name:     "Carol",
			Email:    "carol@example.com",
			Password: "password123",
			Role:     domain.RoleUser,
		})
		require.NoError(t, err)
		require.NotEmpty(t, user.ID)

		stored, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotEqual(t, "password123", stored.PasswordHash)
		require.NoError(t, cryptox.VerifyPassword("password123", stored.PasswordHash))
	})

	t.Run("duplicate email is a validation failure", func(t *testing.T) {
		_, err := svc.Create(ctx, p, CreateUserInput{
			Name:     "Carol Clone",
			Email:    "carol@example.com",
			Password: "password123",
			Role:     domain.RoleUser,
		})

		var ve *validate.Error
		require.ErrorAs(t, err, &ve)
		require.Contains(t, ve.Fields, "email")
	})

	t.Run("update applies a subset and re-hashes a new password", func(t *testing.T) {
		user := seedUser(t, st, "Dave", "dave@example.com", "oldpassword", domain.RoleUser)

		newName := "David"
		newPassword := "newpassword"
		newRole := domain.RoleAdmin
		updated, err := svc.Update(ctx, p, user.ID, UpdateUserInput{
			Name:     &newName,
			Password: &newPassword,
			Role:     &newRole,
		})
		require.NoError(t, err)
		require.Equal(t, "David", updated.Name)
		require.Equal(t, domain.RoleAdmin, updated.Role)
		require.Equal(t, "dave@example.com", updated.Email)

		stored, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.NoError(t, cryptox.VerifyPassword("newpassword", stored.PasswordHash))
		require.ErrorIs(t, cryptox.VerifyPassword("oldpassword", stored.PasswordHash), cryptox.ErrPasswordMismatch)
	})

	t.Run("update to a taken email is a validation failure", func(t *testing.T) {
		user := seedUser(t, st, "Erin", "erin@example.com", "password123", domain.RoleUser)

		taken := "carol@example.com"
		_, err := svc.Update(ctx, p, user.ID, UpdateUserInput{Email: &taken})

		var ve *validate.Error
		require.ErrorAs(t, err, &ve)
		require.Contains(t, ve.Fields, "email")
	})

	t.Run("delete removes the user and cascades their tasks", func(t *testing.T) {
		user := seedUser(t, st, "Frank", "frank@example.com", "password123", domain.RoleUser)
		task := seedTask(t, st, user.ID, "Frank's task")

		require.NoError(t, svc.Delete(ctx, p, user.ID))

		_, err := st.Users().GetUserByID(ctx, user.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = st.Tasks().GetTaskByID(ctx, task.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete of an unknown id is not found", func(t *testing.T) {
		require.ErrorIs(t, svc.Delete(ctx, p, "01K00000000000000000000000"), store.ErrNotFound)
	})

	t.Run("list filters by name substring and role", func(t *testing.T) {
		role := domain.RoleAdmin
		page, err := svc.List(ctx, p, domain.UserFilter{Role: &role})
		require.NoError(t, err)
		for _, u := range page.Data {
			require.Equal(t, domain.RoleAdmin, u.Role)
		}

		page, err = svc.List(ctx, p, domain.UserFilter{Name: "car"})
		require.NoError(t, err)
		require.Equal(t, 1, page.Total)
		require.Equal(t, "Carol", page.Data[0].Name)
	})
}
