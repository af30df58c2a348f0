package queries

import (
	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/pkg/errs"
)

// canView reports whether actor's role view includes d:
//   - a donor sees the donations it published
//   - an organization sees every pending donation and those it claimed
//   - a courier sees the donations assigned to it
//
// Participants keep their view after a cancellation.
func canView(d *donation.Donation, actor kernel.Actor) bool {
	switch actor.Role() {
	case kernel.Donor:
		return d.DonorID().IsEqual(actor.ID())
	case kernel.NGO:
		return d.Status() == donation.Pending || isParticipant(d.Claimant(), actor.ID())
	case kernel.Courier:
		return isParticipant(d.Courier(), actor.ID())
	}
	return false
}

// isInvolved is stricter than canView: an organization only counts once it has
// claimed the donation.
func isInvolved(d *donation.Donation, actor kernel.Actor) bool {
	switch actor.Role() {
	case kernel.Donor:
		return d.DonorID().IsEqual(actor.ID())
	case kernel.NGO:
		return isParticipant(d.Claimant(), actor.ID())
	case kernel.Courier:
		return isParticipant(d.Courier(), actor.ID())
	}
	return false
}

func isParticipant(recorded *kernel.UUID, id kernel.UUID) bool {
	return recorded != nil && recorded.IsEqual(id)
}

func validateActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return errs.NewUnauthorizedError("caller is not identified")
	}
	return nil
}
