package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cedarhq/taskboard/internal/api/domain"
)

type auditLogsRepo struct {
	db dbtx
}

// Snapshots are persisted as JSON text; NULL means "no snapshot for this
// side of the action" (created has no old values, deleted has no new ones).

func marshalSnapshot(s domain.Snapshot) (sql.NullString, error) {
	if s == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("sqlite: marshal snapshot: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func unmarshalSnapshot(ns sql.NullString) (domain.Snapshot, error) {
	if !ns.Valid {
		return nil, nil
	}
	var s domain.Snapshot
	if err := json.Unmarshal([]byte(ns.String), &s); err != nil {
		return nil, fmt.Errorf("sqlite: unmarshal snapshot: %w", err)
	}
	return s, nil
}

func (r *auditLogsRepo) CreateAuditLog(ctx context.Context, e domain.AuditLogEntry) error {
	oldVals, err := marshalSnapshot(e.OldValues)
	if err != nil {
		return err
	}
	newVals, err := marshalSnapshot(e.NewValues)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO audit_logs (id, user_id, task_id, action, old_values, new_values, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.TaskID, string(e.Action), oldVals, newVals, time.Now().UTC(),
	)
	return err
}

func (r *auditLogsRepo) ListAuditLogs(ctx context.Context, f domain.AuditFilter) ([]domain.AuditLogEntry, int, error) {
	clause := ""
	var args []any
	if f.ActorID != "" {
		clause = ` WHERE user_id = ?`
		args = append(args, f.ActorID)
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM audit_logs`+clause, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, user_id, task_id, action, old_values, new_values, created_at
		 FROM audit_logs` + clause +
		` ORDER BY created_at ` + sortDir(f.Sort == domain.SortDesc) + `, id ASC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, append(args, f.PerPage, f.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []domain.AuditLogEntry
	for rows.Next() {
		var e domain.AuditLogEntry
		var action string
		var oldVals, newVals sql.NullString
		if err := rows.Scan(&e.ID, &e.UserID, &e.TaskID, &action, &oldVals, &newVals, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		e.Action = domain.AuditAction(action)
		if e.OldValues, err = unmarshalSnapshot(oldVals); err != nil {
			return nil, 0, err
		}
		if e.NewValues, err = unmarshalSnapshot(newVals); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}
