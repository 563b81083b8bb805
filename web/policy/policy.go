// Package policy centralizes every role and ownership decision of the API.
// Controllers ask it whether a principal may perform an action on a resource
// class; nothing here touches routing or the database.
package policy

import "github.com/Slavchick12/api-yamdb/database/model"

// Action is the viewset-style operation being attempted.
type Action int

const (
	List Action = iota
	Retrieve
	Create
	Update // full replace, PUT
	PartialUpdate
	Destroy
)

// Resource is the class of object the action targets.
type Resource int

const (
	Users Resource = iota
	Categories
	Genres
	Titles
	Reviews
	Comments
)

// Decision is the outcome of a policy check.
type Decision int

const (
	Allow Decision = iota
	DenyUnauthorized
	DenyForbidden
	DenyMethodNotAllowed
)

// PutNotAllowedDetail is the fixed message returned whenever a full replace
// is rejected.
const PutNotAllowedDetail = "PUT is not allowed, use PATCH"

// Principal is the authenticated caller. A nil *Principal is anonymous.
type Principal struct {
	UserID    int
	Role      model.Role
	Superuser bool
}

func (p *Principal) isAdmin() bool {
	return p.Role == model.RoleAdmin || p.Superuser
}

func (p *Principal) isModerator() bool {
	return p.Role == model.RoleModerator
}

func isRead(a Action) bool {
	return a == List || a == Retrieve
}

// putRestricted lists the resources where full replace is rejected outright,
// forcing clients onto PATCH.
func putRestricted(r Resource) bool {
	return r == Users || r == Reviews || r == Comments
}

// Decide resolves an action that needs no ownership context.
//
// Catalog writes are admin-gated. Categories and Genres honor the superuser
// shortcut while Titles checks the literal admin role only.
func Decide(p *Principal, action Action, resource Resource) Decision {
	if action == Update && putRestricted(resource) {
		return DenyMethodNotAllowed
	}

	switch resource {
	case Users:
		if p == nil {
			return DenyUnauthorized
		}
		if p.isAdmin() {
			return Allow
		}
		return DenyForbidden

	case Categories, Genres:
		if isRead(action) {
			return Allow
		}
		if p == nil {
			return DenyUnauthorized
		}
		if p.isAdmin() {
			return Allow
		}
		return DenyForbidden

	case Titles:
		if isRead(action) {
			return Allow
		}
		if p == nil {
			return DenyUnauthorized
		}
		if p.Role == model.RoleAdmin {
			return Allow
		}
		return DenyForbidden

	case Reviews, Comments:
		if isRead(action) {
			return Allow
		}
		if p == nil {
			return DenyUnauthorized
		}
		if action == Create {
			return Allow
		}
		// Mutations without ownership context pass only for elevated roles;
		// owners go through DecideOwned.
		if p.isModerator() || p.isAdmin() {
			return Allow
		}
		return DenyForbidden
	}

	return DenyForbidden
}

// DecideOwned resolves mutations on an owned resource (reviews, comments):
// the author may modify their own record, moderators and admins anyone's.
func DecideOwned(p *Principal, action Action, resource Resource, authorID int) Decision {
	if action == Update && putRestricted(resource) {
		return DenyMethodNotAllowed
	}
	if isRead(action) {
		return Allow
	}
	if p == nil {
		return DenyUnauthorized
	}
	if p.UserID == authorID || p.isModerator() || p.isAdmin() {
		return Allow
	}
	return DenyForbidden
}
