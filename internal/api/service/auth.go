package service

import (
	"context"
	"errors"
	"time"

	"github.com/cedarhq/taskboard/internal/api/domain"
	"github.com/cedarhq/taskboard/internal/api/store"
	"github.com/cedarhq/taskboard/pkg/cryptox"
	"github.com/cedarhq/taskboard/pkg/idx"
	"github.com/cedarhq/taskboard/pkg/jwtx"
	"github.com/cedarhq/taskboard/pkg/slogx"
	"github.com/cedarhq/taskboard/pkg/validate"
)

// ErrInvalidCredentials covers both unknown email and password mismatch so
// the login response never reveals whether an account exists.
var ErrInvalidCredentials = errors.New("service: invalid credentials")

// AuthService verifies credentials and issues bearer tokens.
type AuthService struct {
	Store     store.Store
	Signer    jwtx.Signer
	Issuer    string
	AccessTTL time.Duration
}

// Login verifies email/password and returns the user with a fresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, "", ErrInvalidCredentials
		}
		return domain.User{}, "", err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		log.Info("login failed", "email", email)
		return domain.User{}, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

// Register creates a new user and immediately issues a token (auto-login).
func (s *AuthService) Register(ctx context.Context, name, email, password string, role domain.Role) (domain.User, string, error) {
	// The handler has already validated shape; re-check the taken email here
	// because only the store knows about existing rows.
	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return domain.User{}, "", &validate.Error{Fields: map[string]string{
			"email": "has already been taken",
		}}
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, "", err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, "", err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		// Lost a race with a concurrent registration for the same email.
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, "", &validate.Error{Fields: map[string]string{
				"email": "has already been taken",
			}}
		}
		return domain.User{}, "", err
	}

	// Re-read so timestamps reflect what was persisted.
	user, err = s.Store.Users().GetUserByID(ctx, user.ID)
	if err != nil {
		return domain.User{}, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

func (s *AuthService) issueToken(user domain.User) (string, error) {
	claims := jwtx.NewAccessClaims(
		user.ID, string(user.Role), user.Name, user.Email,
		s.AccessTTL, s.Issuer, time.Now().UTC(),
	)
	return s.Signer.Sign(claims)
}
