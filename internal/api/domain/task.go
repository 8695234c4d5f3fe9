package domain

import (
	"fmt"
	"strconv"
	"time"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus int

const (
	StatusPending    TaskStatus = 1
	StatusInProgress TaskStatus = 2
	StatusDone       TaskStatus = 3
)

// Valid reports whether s is one of the enumerated statuses.
func (s TaskStatus) Valid() bool {
	return s >= StatusPending && s <= StatusDone
}

// TaskPriority is the urgency level of a task.
type TaskPriority int

const (
	PriorityLow    TaskPriority = 1
	PriorityMedium TaskPriority = 2
	PriorityHigh   TaskPriority = 3
)

// Valid reports whether p is one of the enumerated priorities.
func (p TaskPriority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

// DateLayout is the wire and storage format for date-only values.
const DateLayout = "2006-01-02"

// Date is a date-only value. It marshals as "2006-01-02" and sorts lexically
// in storage, which the due_date range filters rely on.
type Date struct {
	time.Time
}

// ParseDate parses a "2006-01-02" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("domain: invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

// NewDate builds a Date from a year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string { return d.Format(DateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.Format(DateLayout))), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("domain: invalid date value %s", data)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     Date         `json:"due_date"`
	UserID      string       `json:"user_id"` // owning user
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
