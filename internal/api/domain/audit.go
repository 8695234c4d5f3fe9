package domain

import "time"

// AuditAction names the mutation an audit entry records.
type AuditAction string

const (
	AuditCreated AuditAction = "created"
	AuditUpdated AuditAction = "updated"
	AuditDeleted AuditAction = "deleted"
)

// Snapshot is a field-value mapping captured at a point in time. For
// "updated" entries both snapshots carry the fields the update touched; for
// "created" only NewValues is set and for "deleted" only OldValues.
type Snapshot map[string]any

// AuditLogEntry is an immutable record of a task mutation. Entries are only
// ever appended; the API never updates or deletes them, and they survive
// deletion of the task or user they reference.
type AuditLogEntry struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"` // acting user
	TaskID    string      `json:"task_id"` // subject task
	Action    AuditAction `json:"action"`
	OldValues Snapshot    `json:"old_values"` // nil for "created"
	NewValues Snapshot    `json:"new_values"` // nil for "deleted"
	CreatedAt time.Time   `json:"created_at"`
}
