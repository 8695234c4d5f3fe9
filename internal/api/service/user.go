package service

import (
	"context"
	"errors"

	"github.com/cedarhq/taskboard/internal/api/domain"
	"github.com/cedarhq/taskboard/internal/api/store"
	"github.com/cedarhq/taskboard/pkg/cryptox"
	"github.com/cedarhq/taskboard/pkg/idx"
	"github.com/cedarhq/taskboard/pkg/validate"
)

// UserService manages user accounts. Every operation is policy-gated;
// under the default table that means admin-only.
type UserService struct {
	Store store.Store
}

// CreateUserInput carries the validated fields of an admin create request.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// UpdateUserInput carries the validated fields of an admin update request.
// Nil means "field absent from the payload".
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *domain.Role
}

// List returns a page of users matching the filter.
func (s *UserService) List(ctx context.Context, p domain.Principal, f domain.UserFilter) (domain.Page[domain.User], error) {
	if !CanUser(p, ActionList) {
		return domain.Page[domain.User]{}, ErrForbidden
	}
	f.Pagination = f.Pagination.Normalize()

	users, total, err := s.Store.Users().ListUsers(ctx, f)
	if err != nil {
		return domain.Page[domain.User]{}, err
	}
	return domain.NewPage(users, f.Pagination, total), nil
}

// Get returns a single user by id.
func (s *UserService) Get(ctx context.Context, p domain.Principal, userID string) (domain.User, error) {
	if !CanUser(p, ActionList) {
		return domain.User{}, ErrForbidden
	}
	return s.Store.Users().GetUserByID(ctx, userID)
}

// Create stores a new user with the given role.
func (s *UserService) Create(ctx context.Context, p domain.Principal, in CreateUserInput) (domain.User, error) {
	if !CanUser(p, ActionCreate) {
		return domain.User{}, ErrForbidden
	}

	if _, err := s.Store.Users().GetUserByEmail(ctx, in.Email); err == nil {
		return domain.User{}, &validate.Error{Fields: map[string]string{
			"email": "has already been taken",
		}}
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, &validate.Error{Fields: map[string]string{
				"email": "has already been taken",
			}}
		}
		return domain.User{}, err
	}

	return s.Store.Users().GetUserByID(ctx, user.ID)
}

// Update applies the supplied subset of fields to a user. A new password is
// re-hashed before it is stored.
func (s *UserService) Update(ctx context.Context, p domain.Principal, userID string, in UpdateUserInput) (domain.User, error) {
	if !CanUser(p, ActionUpdate) {
		return domain.User{}, ErrForbidden
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := cryptox.HashPassword(*in.Password)
		if err != nil {
			return domain.User{}, err
		}
		user.PasswordHash = hash
	}
	if in.Role != nil {
		user.Role = *in.Role
	}

	if err := s.Store.Users().UpdateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, &validate.Error{Fields: map[string]string{
				"email": "has already been taken",
			}}
		}
		return domain.User{}, err
	}

	return s.Store.Users().GetUserByID(ctx, user.ID)
}

// Delete removes a user. Their tasks go with them; their audit entries stay.
func (s *UserService) Delete(ctx context.Context, p domain.Principal, userID string) error {
	if !CanUser(p, ActionDelete) {
		return ErrForbidden
	}
	return s.Store.Users().DeleteUser(ctx, userID)
}
