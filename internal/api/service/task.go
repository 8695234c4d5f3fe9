package service

import (
	"context"
	"errors"

	"github.com/cedarhq/taskboard/internal/api/domain"
	"github.com/cedarhq/taskboard/internal/api/store"
	"github.com/cedarhq/taskboard/pkg/idx"
	"github.com/cedarhq/taskboard/pkg/validate"
)

// TaskService applies task CRUD under the authorization policy, pairing
// every mutation with an audit append in one transaction.
type TaskService struct {
	Store store.Store
}

// CreateTaskInput carries the validated fields of a create request.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	DueDate     domain.Date
	UserID      string // optional; admin-only assignment to another user
}

// UpdateTaskInput carries the validated fields of an update request. Nil
// means "field absent from the payload".
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	DueDate     *domain.Date
	UserID      *string // admin-only reassignment
}

// List returns a page of tasks. Non-admins are always scoped to their own
// tasks regardless of what the filter asks for.
func (s *TaskService) List(ctx context.Context, p domain.Principal, f domain.TaskFilter) (domain.Page[domain.Task], error) {
	if !CanTask(p, ActionList, f.OwnerID) {
		f.OwnerID = p.UserID
	}
	f.Pagination = f.Pagination.Normalize()

	tasks, total, err := s.Store.Tasks().ListTasks(ctx, f)
	if err != nil {
		return domain.Page[domain.Task]{}, err
	}
	return domain.NewPage(tasks, f.Pagination, total), nil
}

// Create stores a new task owned by the acting user, or by the supplied
// user when an admin assigns it. Emits a "created" audit entry with the
// full snapshot as new values.
func (s *TaskService) Create(ctx context.Context, p domain.Principal, in CreateTaskInput) (domain.Task, error) {
	ownerID := p.UserID
	if in.UserID != "" && in.UserID != p.UserID {
		if !p.IsAdmin() {
			return domain.Task{}, ErrForbidden
		}
		ownerID = in.UserID
	}

	// The owner must resolve; a dangling user_id is a validation problem,
	// not a 404, because the task id itself is not in question.
	if _, err := s.Store.Users().GetUserByID(ctx, ownerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Task{}, &validate.Error{Fields: map[string]string{
				"user_id": "must reference an existing user",
			}}
		}
		return domain.Task{}, err
	}

	task := domain.Task{
		ID:          idx.New().String(),
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		UserID:      ownerID,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Tasks().CreateTask(ctx, task); err != nil {
			return err
		}

		var err error
		task, err = tx.Tasks().GetTaskByID(ctx, task.ID)
		if err != nil {
			return err
		}

		return RecordTaskAudit(ctx, tx, p.UserID, task.ID, domain.AuditCreated, nil, taskSnapshot(task))
	})
	if err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// Update applies the supplied subset of fields to a task the principal may
// mutate. Emits an "updated" audit entry whose snapshots carry exactly the
// fields present in the payload: old values pre-mutation, new values post.
func (s *TaskService) Update(ctx context.Context, p domain.Principal, taskID string, in UpdateTaskInput) (domain.Task, error) {
	task, err := s.Store.Tasks().GetTaskByID(ctx, taskID)
	if err != nil {
		return domain.Task{}, err
	}

	if !CanTask(p, ActionUpdate, task.UserID) {
		return domain.Task{}, ErrForbidden
	}

	oldValues := domain.Snapshot{}
	newValues := domain.Snapshot{}

	if in.Title != nil {
		oldValues["title"], newValues["title"] = task.Title, *in.Title
		task.Title = *in.Title
	}
	if in.Description != nil {
		oldValues["description"], newValues["description"] = task.Description, *in.Description
		task.Description = *in.Description
	}
	if in.Status != nil {
		oldValues["status"], newValues["status"] = int(task.Status), int(*in.Status)
		task.Status = *in.Status
	}
	if in.Priority != nil {
		oldValues["priority"], newValues["priority"] = int(task.Priority), int(*in.Priority)
		task.Priority = *in.Priority
	}
	if in.DueDate != nil {
		oldValues["due_date"], newValues["due_date"] = task.DueDate.String(), in.DueDate.String()
		task.DueDate = *in.DueDate
	}
	if in.UserID != nil && *in.UserID != task.UserID {
		// Reassignment is an admin-only move on top of ordinary update rights.
		if !p.IsAdmin() {
			return domain.Task{}, ErrForbidden
		}
		if _, err := s.Store.Users().GetUserByID(ctx, *in.UserID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.Task{}, &validate.Error{Fields: map[string]string{
					"user_id": "must reference an existing user",
				}}
			}
			return domain.Task{}, err
		}
		oldValues["user_id"], newValues["user_id"] = task.UserID, *in.UserID
		task.UserID = *in.UserID
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Tasks().UpdateTask(ctx, task); err != nil {
			return err
		}

		var err error
		task, err = tx.Tasks().GetTaskByID(ctx, task.ID)
		if err != nil {
			return err
		}

		return RecordTaskAudit(ctx, tx, p.UserID, task.ID, domain.AuditUpdated, oldValues, newValues)
	})
	if err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// Delete removes a task the principal may mutate. Emits a "deleted" audit
// entry carrying the final snapshot as old values; the entry outlives the
// task row.
func (s *TaskService) Delete(ctx context.Context, p domain.Principal, taskID string) error {
	task, err := s.Store.Tasks().GetTaskByID(ctx, taskID)
	if err != nil {
		return err
	}

	if !CanTask(p, ActionDelete, task.UserID) {
		return ErrForbidden
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Tasks().DeleteTask(ctx, task.ID); err != nil {
			return err
		}
		return RecordTaskAudit(ctx, tx, p.UserID, task.ID, domain.AuditDeleted, taskSnapshot(task), nil)
	})
}

// taskSnapshot captures the audit-relevant fields of a task.
func taskSnapshot(t domain.Task) domain.Snapshot {
	return domain.Snapshot{
		"title":       t.Title,
		"description": t.Description,
		"status":      int(t.Status),
		"priority":    int(t.Priority),
		"due_date":    t.DueDate.String(),
		"user_id":     t.UserID,
	}
}
