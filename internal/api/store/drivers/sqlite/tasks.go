package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/cedarhq/taskboard/internal/api/domain"
)

type tasksRepo struct {
	db dbtx
}

const taskColumns = `id, title, description, status, priority, due_date, user_id, created_at, updated_at`

func scanTask(row interface{ Scan(...any) error }) (domain.Task, error) {
	var t domain.Task
	var due string
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&due, &t.UserID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Task{}, err
	}
	t.DueDate, err = domain.ParseDate(due)
	if err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

func (r *tasksRepo) GetTaskByID(ctx context.Context, id string) (domain.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err != nil {
		return domain.Task{}, mapNotFound(err)
	}
	return t, nil
}

func (r *tasksRepo) CreateTask(ctx context.Context, t domain.Task) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, description, status, priority, due_date, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, int(t.Status), int(t.Priority),
		t.DueDate.String(), t.UserID, now, now,
	)
	return err
}

func (r *tasksRepo) UpdateTask(ctx context.Context, t domain.Task) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks
		 SET title = ?, description = ?, status = ?, priority = ?, due_date = ?, user_id = ?, updated_at = ?
		 WHERE id = ?`,
		t.Title, t.Description, int(t.Status), int(t.Priority),
		t.DueDate.String(), t.UserID, time.Now().UTC(), t.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *tasksRepo) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *tasksRepo) ListTasks(ctx context.Context, f domain.TaskFilter) ([]domain.Task, int, error) {
	var where []string
	var args []any

	if f.OwnerID != "" {
		where = append(where, `user_id = ?`)
		args = append(args, f.OwnerID)
	}
	if f.Status != nil {
		where = append(where, `status = ?`)
		args = append(args, int(*f.Status))
	}
	if f.Priority != nil {
		where = append(where, `priority = ?`)
		args = append(args, int(*f.Priority))
	}
	// Dates are stored as YYYY-MM-DD text, so lexical comparison is
	// chronological and both bounds stay inclusive.
	if f.DueFrom != nil {
		where = append(where, `due_date >= ?`)
		args = append(args, f.DueFrom.String())
	}
	if f.DueTo != nil {
		where = append(where, `due_date <= ?`)
		args = append(args, f.DueTo.String())
	}
	if f.Search != "" {
		where = append(where, `(title LIKE ? COLLATE NOCASE OR description LIKE ? COLLATE NOCASE)`)
		pattern := "%" + f.Search + "%"
		args = append(args, pattern, pattern)
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks`+clause, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	// Tie-break on id so pages are stable when created_at collides.
	query := `SELECT ` + taskColumns + ` FROM tasks` + clause +
		` ORDER BY created_at ` + sortDir(f.Sort == domain.SortDesc) + `, id ASC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, append(args, f.PerPage, f.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, t)
	}
	return tasks, total, rows.Err()
}
