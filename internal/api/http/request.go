package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/cedarhq/taskboard/internal/api/domain"
	"github.com/cedarhq/taskboard/internal/api/service"
	"github.com/cedarhq/taskboard/internal/api/store"
	"github.com/cedarhq/taskboard/pkg/httpx"
	"github.com/cedarhq/taskboard/pkg/slogx"
	"github.com/cedarhq/taskboard/pkg/validate"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// decodeJSON reads a JSON request body into dst. Malformed bodies surface as
// a field-level validation error so clients get the uniform 422 shape.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		httpx.WriteError(w, http.StatusUnprocessableEntity, "The given data was invalid.", map[string]string{
			"body": "must be valid JSON",
		})
		return false
	}
	return true
}

// principalFrom rebuilds the acting principal from the verified claims that
// AuthnMiddleware stored on the context.
func principalFrom(r *http.Request) (domain.Principal, bool) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		return domain.Principal{}, false
	}
	return domain.Principal{
		UserID: claims.Subject,
		Role:   domain.Role(claims.Role),
	}, true
}

// writeServiceError maps service and store errors onto the response
// envelope. Anything unrecognised is logged with its detail and reported to
// the client as a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *validate.Error
	switch {
	case errors.As(err, &ve):
		httpx.WriteError(w, http.StatusUnprocessableEntity, "The given data was invalid.", ve.Fields)
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "Invalid credentials", nil)
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, "You are not authorized to perform this action.", nil)
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Resource not found.", nil)
	default:
		slogx.FromContext(r.Context()).Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		httpx.WriteError(w, http.StatusInternalServerError, "Something went wrong.", nil)
	}
}

// parsePagination reads page and per_page query parameters. Out-of-range
// values are clamped later by Normalize; non-numeric values are a validation
// failure.
func parsePagination(r *http.Request, v *validate.Validator) domain.Pagination {
	var p domain.Pagination

	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		v.Check(err == nil, "page", "must be an integer")
		p.Page = n
	}
	if raw := r.URL.Query().Get("per_page"); raw != "" {
		n, err := strconv.Atoi(raw)
		v.Check(err == nil, "per_page", "must be an integer")
		p.PerPage = n
	}
	return p
}

// parseSort reads the sort query parameter, defaulting to ascending.
func parseSort(r *http.Request, v *validate.Validator) domain.SortDirection {
	raw := r.URL.Query().Get("sort")
	if raw == "" {
		return domain.SortAsc
	}
	s := domain.SortDirection(raw)
	v.Check(s.Valid(), "sort", "must be one of: asc, desc")
	return s
}
