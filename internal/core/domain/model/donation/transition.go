package donation

import (
	"fmt"

	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/pkg/errs"
)

// rule describes one row of the transition table: the statuses an event may be
// applied from, the status it leads to, and the role allowed to issue it from
// each of those statuses.
type rule struct {
	result Status
	from   map[Status]kernel.Role
}

var transitionTable = map[Event]rule{
	Claim: {
		result: Claimed,
		from:   map[Status]kernel.Role{Pending: kernel.NGO},
	},
	AssignCourier: {
		result: Assigned,
		from:   map[Status]kernel.Role{Claimed: kernel.NGO},
	},
	ConfirmPickup: {
		result: PickedUp,
		from:   map[Status]kernel.Role{Assigned: kernel.Courier},
	},
	DepartForDropoff: {
		result: InTransit,
		from:   map[Status]kernel.Role{PickedUp: kernel.Courier},
	},
	ConfirmDelivery: {
		result: Delivered,
		from:   map[Status]kernel.Role{InTransit: kernel.Courier},
	},
	// Couriers never cancel: once the goods are on the road they report an
	// issue and the claiming organization decides.
	Cancel: {
		result: Canceled,
		from: map[Status]kernel.Role{
			Pending:   kernel.Donor,
			Claimed:   kernel.NGO,
			Assigned:  kernel.NGO,
			PickedUp:  kernel.NGO,
			InTransit: kernel.NGO,
		},
	},
}

// Transition is the donation state machine. Given the current status, an event
// and the role of the actor issuing it, it returns the next status or a typed
// rejection:
//   - errs.ErrInvalidTransition when the event is not legal from current
//   - errs.ErrUnauthorized when the event is legal but not for this role
//
// Transition performs no I/O and is fully deterministic. Identity checks against
// the recorded donor, organization and courier are done by the Donation aggregate.
//
//	next, err := donation.Transition(donation.Pending, donation.Claim, kernel.NGO)
//	// next == donation.Claimed
func Transition(current Status, event Event, role kernel.Role) (Status, error) {
	r, ok := transitionTable[event]
	if !ok {
		return Unknown, errs.NewInvalidTransitionError(fmt.Sprintf("%s is not a lifecycle event", event))
	}

	required, ok := r.from[current]
	if !ok {
		return Unknown, errs.NewInvalidTransitionError(
			fmt.Sprintf("%s is not allowed from status %s", event, current),
		)
	}

	if role != required {
		return Unknown, errs.NewUnauthorizedError(
			fmt.Sprintf("%s from status %s requires role %s, got %s", event, current, required, role),
		)
	}

	return r.result, nil
}

// RequiredRole returns the role allowed to issue event from current, and false
// when the event is not legal from that status.
func RequiredRole(current Status, event Event) (kernel.Role, bool) {
	r, ok := transitionTable[event]
	if !ok {
		return kernel.UnknownRole, false
	}
	role, ok := r.from[current]
	return role, ok
}
