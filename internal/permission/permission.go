// Package permission holds the role checks applied to API requests.
//
// Every check is a Predicate over an explicit Request. A Request without a
// Target is a collection-level check (may the actor call this endpoint at
// all); a Request with a Target is an object-level check.
package permission

import "net/http"

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// Actor is the authenticated caller. A nil *Actor is an anonymous caller.
type Actor struct {
	ID       int64
	Username string
	Role     string
	IsStaff  bool
}

func (a *Actor) IsAuthenticated() bool {
	return a != nil
}

func (a *Actor) IsAdmin() bool {
	return a != nil && (a.IsStaff || a.Role == RoleAdmin)
}

func (a *Actor) IsModerator() bool {
	return a != nil && a.Role == RoleModerator
}

// Owned is implemented by objects that have an author.
type Owned interface {
	OwnerID() int64
}

type Request struct {
	Actor  *Actor
	Method string
	Target Owned
}

type Predicate func(Request) bool

func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func AllowAny(Request) bool { return true }

func Authenticated(r Request) bool {
	return r.Actor.IsAuthenticated()
}

func ReadOnly(r Request) bool {
	return IsSafeMethod(r.Method)
}

// AdminOnly allows authenticated admins (role admin or staff flag).
func AdminOnly(r Request) bool {
	return r.Actor.IsAdmin()
}

// AdminOrReadOnly lets anyone read and only admins write.
func AdminOrReadOnly(r Request) bool {
	return Any(ReadOnly, AdminOnly)(r)
}

// ContributionAdminModeratorOrReadOnly lets anyone read and authenticated
// actors create. Changing an existing object requires being its author or
// holding the admin or moderator role.
func ContributionAdminModeratorOrReadOnly(r Request) bool {
	if IsSafeMethod(r.Method) {
		return true
	}
	if !r.Actor.IsAuthenticated() {
		return false
	}
	if r.Target == nil {
		return true
	}
	return r.Target.OwnerID() == r.Actor.ID || r.Actor.IsAdmin() || r.Actor.IsModerator()
}

func Any(preds ...Predicate) Predicate {
	return func(r Request) bool {
		for _, p := range preds {
			if p(r) {
				return true
			}
		}
		return false
	}
}

func All(preds ...Predicate) Predicate {
	return func(r Request) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}
