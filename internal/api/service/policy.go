package service

import (
	"errors"

	"github.com/cedarhq/taskboard/internal/api/domain"
)

// ErrForbidden is returned whenever the policy rejects the acting principal.
var ErrForbidden = errors.New("service: forbidden")

// Action is something a principal wants to do to a subject.
type Action string

const (
	ActionList   Action = "list"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// decision is the outcome of a policy lookup.
type decision int

const (
	deny decision = iota
	allowOwn
	allowAny
)

// The policy is a pure decision table keyed by (role, action). Evaluating it
// takes the principal and, for ownership-scoped subjects, the owner of the
// record being acted on. Decisions are made fresh per request and never
// cached.
var taskPolicy = map[domain.Role]map[Action]decision{
	domain.RoleAdmin: {
		ActionList:   allowAny,
		ActionCreate: allowAny, // may create on behalf of any user
		ActionUpdate: allowAny,
		ActionDelete: allowAny,
	},
	domain.RoleUser: {
		ActionList:   allowOwn,
		ActionCreate: allowOwn, // may only create tasks owned by themselves
		ActionUpdate: allowOwn,
		ActionDelete: allowOwn,
	},
}

var userPolicy = map[domain.Role]map[Action]decision{
	domain.RoleAdmin: {
		ActionList:   allowAny,
		ActionCreate: allowAny,
		ActionUpdate: allowAny,
		ActionDelete: allowAny,
	},
	// Regular users have no access to user management at all.
	domain.RoleUser: {},
}

// CanTask reports whether p may perform action on a task owned by ownerID.
func CanTask(p domain.Principal, action Action, ownerID string) bool {
	switch taskPolicy[p.Role][action] {
	case allowAny:
		return true
	case allowOwn:
		return ownerID == p.UserID
	default:
		return false
	}
}

// CanUser reports whether p may perform action on user records.
func CanUser(p domain.Principal, action Action) bool {
	return userPolicy[p.Role][action] == allowAny
}
