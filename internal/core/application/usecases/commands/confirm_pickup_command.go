package commands

import (
	"errors"

	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/core/domain/services"
	"connectfood/internal/pkg/guard"
)

var ErrConfirmPickupCommandIsNotConstructed = errors.New(
	"ConfirmPickupCommand must be created via NewConfirmPickupCommand constructor",
)

// ConfirmPickupCommand carries the courier's pickup evidence. Completeness of
// the evidence is judged by the verification gate when the command is handled,
// against the items declared on the stored donation.
type ConfirmPickupCommand struct {
	actor      kernel.Actor
	donationID kernel.UUID
	payload    services.PickupPayload

	guard guard.ConstructorGuard
}

func NewConfirmPickupCommand(
	actor kernel.Actor,
	donationID kernel.UUID,
	payload services.PickupPayload,
) (ConfirmPickupCommand, error) {
	if err := errors.Join(validateActor(actor), validateDonationID(donationID)); err != nil {
		return ConfirmPickupCommand{}, err
	}

	payload.CheckedItems = append([]string(nil), payload.CheckedItems...)

	return ConfirmPickupCommand{
		actor:      actor,
		donationID: donationID,
		payload:    payload,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmPickupCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPickupCommandIsNotConstructed)
}

func (c ConfirmPickupCommand) Actor() kernel.Actor {
	return c.actor
}

func (c ConfirmPickupCommand) DonationID() kernel.UUID {
	return c.donationID
}

func (c ConfirmPickupCommand) Payload() services.PickupPayload {
	return c.payload
}
