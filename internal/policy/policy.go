// Package policy holds the ownership rules that decide who may change a room or comment.
package policy

import "roomboard/internal/models"

// Decision is the outcome of an authorization check.
type Decision bool

const (
	Allow Decision = true
	Deny  Decision = false
)

// Allowed reports whether the decision permits the action.
func (d Decision) Allowed() bool { return bool(d) }

// Actor identifies who is making a request. The zero value is an anonymous visitor.
type Actor struct {
	UserID uint
}

// Authenticated reports whether the actor has a session.
func (a Actor) Authenticated() bool { return a.UserID != 0 }

// CanModifyRoom allows only the room's author to update or delete it. A room whose
// author was deleted has no owner and cannot be modified by anyone.
func CanModifyRoom(actor Actor, room *models.Room) Decision {
	if !actor.Authenticated() || room == nil || room.AuthorID == nil {
		return Deny
	}
	return Decision(*room.AuthorID == actor.UserID)
}

// CanDeleteComment allows only the comment's author to delete it.
func CanDeleteComment(actor Actor, comment *models.Comment) Decision {
	if !actor.Authenticated() || comment == nil {
		return Deny
	}
	return Decision(comment.AuthorID == actor.UserID)
}

// CanComment allows any authenticated actor to post in an existing room.
func CanComment(actor Actor, room *models.Room) Decision {
	return Decision(actor.Authenticated() && room != nil)
}
