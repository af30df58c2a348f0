package commands

import (
	"errors"

	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/pkg/guard"
)

var ErrClaimDonationCommandIsNotConstructed = errors.New(
	"ClaimDonationCommand must be created via NewClaimDonationCommand constructor",
)

// ClaimDonationCommand is an organization's request to take a pending donation
// exclusively.
type ClaimDonationCommand struct {
	actor      kernel.Actor
	donationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewClaimDonationCommand(actor kernel.Actor, donationID kernel.UUID) (ClaimDonationCommand, error) {
	if err := errors.Join(validateActor(actor), validateDonationID(donationID)); err != nil {
		return ClaimDonationCommand{}, err
	}

	return ClaimDonationCommand{
		actor:      actor,
		donationID: donationID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ClaimDonationCommand) Validate() error {
	return c.guard.Validate(ErrClaimDonationCommandIsNotConstructed)
}

func (c ClaimDonationCommand) Actor() kernel.Actor {
	return c.actor
}

func (c ClaimDonationCommand) DonationID() kernel.UUID {
	return c.donationID
}
