package donation

import (
	"fmt"

	"connectfood/internal/pkg/errs"
)

// Event is an actor-initiated request to move a donation to its next status.
type Event int

const (
	UnknownEvent Event = iota
	Claim
	AssignCourier
	ConfirmPickup
	DepartForDropoff
	ConfirmDelivery
	Cancel
)

var eventNames = map[Event]string{
	Claim:            "Claim",
	AssignCourier:    "AssignCourier",
	ConfirmPickup:    "ConfirmPickup",
	DepartForDropoff: "DepartForDropoff",
	ConfirmDelivery:  "ConfirmDelivery",
	Cancel:           "Cancel",
}

// AllEvents lists every lifecycle event.
func AllEvents() []Event {
	return []Event{Claim, AssignCourier, ConfirmPickup, DepartForDropoff, ConfirmDelivery, Cancel}
}

func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return "Unknown"
}

func (e Event) Validate() error {
	if _, ok := eventNames[e]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("event", fmt.Errorf("%d is not a valid event", e))
	}
	return nil
}
