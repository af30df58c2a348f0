package commands

import (
	"errors"

	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/pkg/errs"
	"connectfood/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand is the claiming organization choosing who transports
// the donation.
type AssignCourierCommand struct {
	actor      kernel.Actor
	donationID kernel.UUID
	courierID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignCourierCommand(actor kernel.Actor, donationID, courierID kernel.UUID) (AssignCourierCommand, error) {
	var courierErr error
	if err := courierID.Validate(); err != nil {
		courierErr = errs.NewInvalidInputError("courier id is required",
			errs.NewValueIsRequiredErrorWithCause("courierId", err))
	}

	if err := errors.Join(validateActor(actor), validateDonationID(donationID), courierErr); err != nil {
		return AssignCourierCommand{}, err
	}

	return AssignCourierCommand{
		actor:      actor,
		donationID: donationID,
		courierID:  courierID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

func (c AssignCourierCommand) Actor() kernel.Actor {
	return c.actor
}

func (c AssignCourierCommand) DonationID() kernel.UUID {
	return c.donationID
}

func (c AssignCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}
