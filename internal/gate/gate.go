// Package gate holds the client-side authorization rules for the calendar.
// The predicates are pure and must be consulted before any modal is opened
// or any mutating request is sent. The backend enforces the same rules and
// remains the authority of record.
package gate

import (
	"teamcal/internal/backend"
	"teamcal/internal/feed"
)

// CanCreate reports whether a creation affordance may open at all.
// Personal items are creatable by anyone; general items only by owners.
func CanCreate(view feed.View, role backend.Role) bool {
	if view == feed.ViewPersonal {
		return true
	}
	return view == feed.ViewGeneral && role == backend.RoleOwner
}

// CanInteract reports whether clicking an existing item opens its detail
// panel. Employees are read-only on the general calendar; everything else
// is clickable.
func CanInteract(view feed.View, role backend.Role, kind feed.Kind) bool {
	_ = kind // both kinds follow the same rule today
	if view == feed.ViewGeneral && role == backend.RoleEmployee {
		return false
	}
	return true
}

// Affordances is the full set of creation-form toggles for one
// (view, role) pair. Initial render and every re-evaluation after a
// navigation consume the same struct.
type Affordances struct {
	CanCreate    bool
	OfferTask    bool
	CalendarType feed.View
}

// FormAffordances consolidates the form visibility rules. Tasks are
// offered only to owners on the general view; under personal only events
// are offered.
func FormAffordances(view feed.View, role backend.Role) Affordances {
	return Affordances{
		CanCreate:    CanCreate(view, role),
		OfferTask:    view == feed.ViewGeneral && role == backend.RoleOwner,
		CalendarType: view,
	}
}
