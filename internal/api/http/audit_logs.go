package http

import (
	"net/http"

	"github.com/cedarhq/taskboard/internal/api/domain"
	"github.com/cedarhq/taskboard/internal/api/service"
	"github.com/cedarhq/taskboard/pkg/httpx"
	"github.com/cedarhq/taskboard/pkg/validate"
)

// AuditLogsHandler handles the read-only audit trail endpoint.
type AuditLogsHandler struct {
	AuditService *service.AuditService
}

// HandleList handles GET /audit-logs
//
//	@Summary		List Audit Logs
//	@Description	Lists audit entries for task mutations. Admins see every entry; other users only entries they acted in.
//	@Tags			Audit
//	@Produce		json
//	@Security		BearerAuth
//	@Param			sort		query		string	false	"asc or desc by created_at"
//	@Param			page		query		int		false	"Page number"
//	@Param			per_page	query		int		false	"Page size (default 15, max 100)"
//	@Success		200			{object}	httpx.Envelope	"page of audit entries"
//	@Failure		401			{object}	httpx.Envelope
//	@Failure		422			{object}	httpx.Envelope
//	@Router			/audit-logs [get].
func (h *AuditLogsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Unauthenticated", nil)
		return
	}

	v := validate.New()
	f := parseAuditFilter(r, v)
	if !v.Valid() {
		writeServiceError(w, r, v.Err())
		return
	}

	page, err := h.AuditService.List(r.Context(), p, f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, "Audit logs retrieved", page)
}

func parseAuditFilter(r *http.Request, v *validate.Validator) domain.AuditFilter {
	return domain.AuditFilter{
		Sort:       parseSort(r, v),
		Pagination: parsePagination(r, v),
	}
}
