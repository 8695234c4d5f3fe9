// Package validate collects field-level validation failures for request
// payloads. A handler builds a Validator, runs its checks, and converts any
// failures into a single *Error whose Fields map feeds the 422 response body.
package validate

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegexp = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

// Error carries per-field validation messages.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for k, v := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", k, v))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator accumulates failed checks keyed by field name. The first failure
// per field wins so the client sees the most basic problem first.
type Validator struct {
	fields map[string]string
}

func New() *Validator {
	return &Validator{fields: make(map[string]string)}
}

// Check records msg under key when cond is false.
func (v *Validator) Check(cond bool, key, msg string) {
	if cond {
		return
	}
	if _, ok := v.fields[key]; !ok {
		v.fields[key] = msg
	}
}

// Required records a failure when value is empty after trimming.
func (v *Validator) Required(value, key string) {
	v.Check(strings.TrimSpace(value) != "", key, "must be provided")
}

// Email validates an RFC-shaped email address.
func (v *Validator) Email(email string) {
	v.Required(email, "email")
	if email != "" {
		v.Check(emailRegexp.MatchString(email), "email", "must be a valid email address")
	}
}

// Password enforces the minimum password policy.
func (v *Validator) Password(password string) {
	v.Required(password, "password")
	if password != "" {
		v.Check(len(password) >= 8, "password", "must be at least 8 characters long")
		v.Check(len(password) <= 72, "password", "must be at most 72 characters long")
	}
}

// OneOf records a failure when value is not in the allowed set.
func (v *Validator) OneOf(value, key string, allowed ...string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.Check(false, key, "must be one of: "+strings.Join(allowed, ", "))
}

// Valid reports whether no checks failed.
func (v *Validator) Valid() bool { return len(v.fields) == 0 }

// Err returns an *Error carrying the collected failures, or nil when all
// checks passed.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	return &Error{Fields: v.fields}
}
