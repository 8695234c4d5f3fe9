package service

import (
	"context"

	"github.com/cedarhq/taskboard/internal/api/domain"
	"github.com/cedarhq/taskboard/internal/api/store"
	"github.com/cedarhq/taskboard/pkg/idx"
)

// RecordTaskAudit appends one audit entry for a task mutation. Callers pass
// the Tx they are mutating in so the append commits or rolls back together
// with the mutation itself.
func RecordTaskAudit(
	ctx context.Context,
	st store.Store,
	actorID, taskID string,
	action domain.AuditAction,
	oldValues, newValues domain.Snapshot,
) error {
	return st.AuditLogs().CreateAuditLog(ctx, domain.AuditLogEntry{
		ID:        idx.New().String(),
		UserID:    actorID,
		TaskID:    taskID,
		Action:    action,
		OldValues: oldValues,
		NewValues: newValues,
	})
}

// AuditService reads the audit trail. There is deliberately no update or
// delete: entries are immutable history.
type AuditService struct {
	Store store.Store
}

// List returns a page of audit entries. Admins see everything; everyone else
// sees only entries they acted in.
func (s *AuditService) List(ctx context.Context, p domain.Principal, f domain.AuditFilter) (domain.Page[domain.AuditLogEntry], error) {
	if !p.IsAdmin() {
		f.ActorID = p.UserID
	}
	f.Pagination = f.Pagination.Normalize()

	entries, total, err := s.Store.AuditLogs().ListAuditLogs(ctx, f)
	if err != nil {
		return domain.Page[domain.AuditLogEntry]{}, err
	}
	return domain.NewPage(entries, f.Pagination, total), nil
}
