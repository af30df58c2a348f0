package commands

import (
	"errors"

	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/pkg/guard"
)

var ErrDepartForDropoffCommandIsNotConstructed = errors.New(
	"DepartForDropoffCommand must be created via NewDepartForDropoffCommand constructor",
)

type DepartForDropoffCommand struct {
	actor      kernel.Actor
	donationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDepartForDropoffCommand(actor kernel.Actor, donationID kernel.UUID) (DepartForDropoffCommand, error) {
	if err := errors.Join(validateActor(actor), validateDonationID(donationID)); err != nil {
		return DepartForDropoffCommand{}, err
	}

	return DepartForDropoffCommand{
		actor:      actor,
		donationID: donationID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c DepartForDropoffCommand) Validate() error {
	return c.guard.Validate(ErrDepartForDropoffCommandIsNotConstructed)
}

func (c DepartForDropoffCommand) Actor() kernel.Actor {
	return c.actor
}

func (c DepartForDropoffCommand) DonationID() kernel.UUID {
	return c.donationID
}
