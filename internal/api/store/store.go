package store

import (
	"context"
	"errors"

	"github.com/cedarhq/taskboard/internal/api/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and a Tx entry point for the mutation+audit pairs that must be
// atomic.
type Store interface {
	Users() Users
	Tasks() Tasks
	AuditLogs() AuditLogs

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error, the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to pair a task mutation with its audit append.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login and duplicate-email checks.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is already taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser persists all mutable fields of u and bumps updated_at.
	// Returns ErrAlreadyExists when the email collides with another row.
	UpdateUser(ctx context.Context, u domain.User) error

	// DeleteUser removes a user. Owned tasks cascade per schema; audit rows
	// are untouched.
	DeleteUser(ctx context.Context, id string) error

	// ListUsers returns one page of users matching the filter plus the total
	// match count.
	ListUsers(ctx context.Context, f domain.UserFilter) ([]domain.User, int, error)
}

type Tasks interface {
	// GetTaskByID returns a task by id.
	GetTaskByID(ctx context.Context, id string) (domain.Task, error)

	// CreateTask inserts a new task (id is ULID).
	CreateTask(ctx context.Context, t domain.Task) error

	// UpdateTask persists all mutable fields of t and bumps updated_at.
	UpdateTask(ctx context.Context, t domain.Task) error

	// DeleteTask removes a task. Audit rows referencing it remain.
	DeleteTask(ctx context.Context, id string) error

	// ListTasks returns one page of tasks matching the filter plus the total
	// match count. Ordering is deterministic: created_at in the requested
	// direction, then id ascending.
	ListTasks(ctx context.Context, f domain.TaskFilter) ([]domain.Task, int, error)
}

type AuditLogs interface {
	// CreateAuditLog appends an audit entry. Entries are never updated or
	// deleted through this interface.
	CreateAuditLog(ctx context.Context, e domain.AuditLogEntry) error

	// ListAuditLogs returns one page of entries matching the filter plus the
	// total match count.
	ListAuditLogs(ctx context.Context, f domain.AuditFilter) ([]domain.AuditLogEntry, int, error)
}
