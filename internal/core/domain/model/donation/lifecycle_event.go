package donation

import (
	"time"

	"connectfood/internal/core/domain/model/kernel"
)

// EventKind distinguishes committed transitions from out-of-band annotations.
type EventKind string

const (
	KindCreated       EventKind = "created"
	KindTransition    EventKind = "transition"
	KindIssueReported EventKind = "issue_reported"
)

// LifecycleEvent is emitted after a donation change is durably committed.
// For KindCreated, From is Unknown. For KindIssueReported, From and To are both
// the current status and Reason carries the description.
//
// DonorID, Claimant and Courier are the donation's participants after the
// change; for a canceled donation they are the prior participants.
type LifecycleEvent struct {
	ID         string
	Kind       EventKind
	DonationID kernel.UUID
	Event      Event
	From       Status
	To         Status
	ActorID    kernel.UUID
	ActorRole  kernel.Role
	Reason     string
	OccurredAt time.Time

	DonorID  kernel.UUID
	Claimant *kernel.UUID
	Courier  *kernel.UUID
}

// Concerns reports whether actor should be told about the event. Participants
// hear about every change to their donation, and organizations also hear about
// newly published donations they could claim.
func (e LifecycleEvent) Concerns(actor kernel.Actor) bool {
	switch actor.Role() {
	case kernel.Donor:
		return e.DonorID.IsEqual(actor.ID())
	case kernel.NGO:
		return e.Kind == KindCreated || sameUUID(e.Claimant, actor.ID())
	case kernel.Courier:
		return sameUUID(e.Courier, actor.ID())
	}
	return false
}
