package domain

// Principal is the authenticated identity a request acts as. It is passed
// explicitly into every service call rather than living in ambient state, so
// authorization decisions always see exactly who is acting.
type Principal struct {
	UserID string
	Role   Role
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }
