package donation

import (
	"fmt"

	"connectfood/internal/pkg/errs"
)

// Status represents the lifecycle state of a donation.
//
// State transitions:
//
//	Pending ──> Claimed ──> Assigned ──> PickedUp ──> InTransit ──> Delivered
//	   │           │           │            │             │
//	   └───────────┴───────────┴────────────┴─────────────┴──────> Canceled
//
// Delivered and Canceled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status and catches uninitialized values.
	Unknown Status = iota

	// Pending is the initial status: published by a donor, waiting for an organization.
	Pending

	// Claimed means one organization has exclusively accepted the donation.
	Claimed

	// Assigned means the claiming organization picked a courier.
	Assigned

	// PickedUp means the courier verified the items and collected them from the donor.
	PickedUp

	// InTransit means the courier left for the drop-off.
	InTransit

	// Delivered means the hand-over to the organization was verified. Terminal.
	Delivered

	// Canceled means the donation was withdrawn or lapsed. Terminal.
	Canceled
)

var statusNames = map[Status]string{
	Pending:   "Pending",
	Claimed:   "Claimed",
	Assigned:  "Assigned",
	PickedUp:  "PickedUp",
	InTransit: "InTransit",
	Delivered: "Delivered",
	Canceled:  "Canceled",
}

// ParseStatus converts a status name such as "InTransit" back into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Claimed, Assigned, PickedUp, InTransit, Delivered, Canceled}
}

// Validate checks if the Status value is one of the seven lifecycle states.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the status name, or "Unknown" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// IsTerminal reports whether no further event can be applied.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Canceled
}

// HasClaimant reports whether a donation in this status must have claimedBy set.
func (s Status) HasClaimant() bool {
	switch s {
	case Claimed, Assigned, PickedUp, InTransit, Delivered:
		return true
	}
	return false
}

// HasCourier reports whether a donation in this status must have assignedCourier set.
func (s Status) HasCourier() bool {
	switch s {
	case Assigned, PickedUp, InTransit, Delivered:
		return true
	}
	return false
}

// ValidateCanHaveClaimant checks that claimant presence matches the status.
func (s Status) ValidateCanHaveClaimant(claimed bool) error {
	if claimed != s.HasClaimant() {
		return errs.NewValueIsInvalidErrorWithCause(
			"claimedBy",
			fmt.Errorf("%s is not a valid status for claimed=%t", s, claimed),
		)
	}
	return nil
}

// ValidateCanHaveCourier checks that courier presence matches the status.
func (s Status) ValidateCanHaveCourier(assigned bool) error {
	if assigned != s.HasCourier() {
		return errs.NewValueIsInvalidErrorWithCause(
			"assignedCourier",
			fmt.Errorf("%s is not a valid status for assigned=%t", s, assigned),
		)
	}
	return nil
}
