package service

import (
	"context"
	"testing"
	"time"

	"github.com/cedarhq/taskboard/internal/api/domain"
	"github.com/cedarhq/taskboard/pkg/jwtx"
	"github.com/cedarhq/taskboard/pkg/validate"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, jwtx.Verifier) {
	t.Helper()

	st := newTestStore(t)
	signer := newTestSigner(t)

	svc := &AuthService{
		Store:     st,
		Signer:    signer,
		Issuer:    "taskboard-test",
		AccessTTL: time.Hour,
	}
	return svc, jwtx.NewVerifierEdDSA(signer.PublicKey(), "taskboard-test")
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, verifier := newAuthService(t)

	alice := seedUser(t, svc.Store, "Alice", "alice@example.com", "correct horse", domain.RoleUser)

	t.Run("valid credentials return user and verifiable token", func(t *testing.T) {
		user, token, err := svc.Login(ctx, "alice@example.com", "correct horse")
		require.NoError(t, err)
		require.Equal(t, alice.ID, user.ID)

		claims, err := verifier.Verify(token)
		require.NoError(t, err)
		require.Equal(t, alice.ID, claims.Subject)
		require.Equal(t, string(domain.RoleUser), claims.Role)
		require.Equal(t, "alice@example.com", claims.Email)
	})

	t.Run("wrong password fails with invalid credentials", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "alice@example.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email fails with the same error", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody@example.com", "whatever")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc, verifier := newAuthService(t)

	t.Run("creates user and auto-logs-in", func(t *testing.T) {
		user, token, err := svc.Register(ctx, "Bob", "bob@example.com", "longenough", domain.RoleUser)
		require.NoError(t, err)
		require.NotEmpty(t, user.ID)
		require.Equal(t, domain.RoleUser, user.Role)
		require.False(t, user.CreatedAt.IsZero())

		claims, err := verifier.Verify(token)
		require.NoError(t, err)
		require.Equal(t, user.ID, claims.Subject)

		// Password round-trips through login.
		_, _, err = svc.Login(ctx, "bob@example.com", "longenough")
		require.NoError(t, err)
	})

	t.Run("duplicate email is a validation failure and writes no row", func(t *testing.T) {
		_, _, err := svc.Register(ctx, "Bob Again", "bob@example.com", "longenough", domain.RoleUser)

		var ve *validate.Error
		require.ErrorAs(t, err, &ve)
		require.Contains(t, ve.Fields, "email")

		_, total, err := svc.Store.Users().ListUsers(ctx, domain.UserFilter{
			Email:      "bob@example.com",
			Sort:       domain.SortAsc,
			Pagination: domain.Pagination{Page: 1, PerPage: 10},
		})
		require.NoError(t, err)
		require.Equal(t, 1, total)
	})
}
