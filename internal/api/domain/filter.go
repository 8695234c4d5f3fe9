package domain

// Filter field semantics: all present filters are conjunctive, absent ones
// are ignored. Pointer fields distinguish "not filtered" from zero values.

// SortDirection orders a listing by its default ordering field (created_at).
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Valid reports whether s is a recognised direction.
func (s SortDirection) Valid() bool {
	return s == SortAsc || s == SortDesc
}

const (
	// DefaultPerPage matches the pagination default of the public API.
	DefaultPerPage = 15
	// MaxPerPage caps a single page to keep result sets bounded.
	MaxPerPage = 100
)

// Pagination selects a page of a listing. Zero values mean "use defaults".
type Pagination struct {
	Page    int
	PerPage int
}

// Normalize clamps pagination to sane bounds: page >= 1, 1 <= per_page <= MaxPerPage.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset returns the row offset of the selected page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Page is one page of results plus its pagination metadata.
type Page[T any] struct {
	Data        []T `json:"data"`
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// NewPage assembles a result page. A nil row set becomes an empty slice so
// the wire form is always a JSON array.
func NewPage[T any](rows []T, p Pagination, total int) Page[T] {
	if rows == nil {
		rows = []T{}
	}
	return Page[T]{
		Data:        rows,
		CurrentPage: p.Page,
		PerPage:     p.PerPage,
		Total:       total,
	}
}

// TaskFilter narrows a task listing.
type TaskFilter struct {
	OwnerID  string // restrict to a single owner; empty means all owners
	Status   *TaskStatus
	Priority *TaskPriority
	DueFrom  *Date  // inclusive
	DueTo    *Date  // inclusive
	Search   string // case-insensitive substring over title OR description
	Sort     SortDirection
	Pagination
}

// UserFilter narrows a user listing.
type UserFilter struct {
	Name  string // substring
	Email string // substring
	Role  *Role
	Sort  SortDirection
	Pagination
}

// AuditFilter narrows an audit log listing.
type AuditFilter struct {
	ActorID string // restrict to entries by a single acting user
	Sort    SortDirection
	Pagination
}
