package commands

import (
	"errors"

	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/core/domain/services"
	"connectfood/internal/pkg/guard"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

// ConfirmDeliveryCommand carries the courier's hand-over evidence at the
// organization.
type ConfirmDeliveryCommand struct {
	actor      kernel.Actor
	donationID kernel.UUID
	payload    services.DeliveryPayload

	guard guard.ConstructorGuard
}

func NewConfirmDeliveryCommand(
	actor kernel.Actor,
	donationID kernel.UUID,
	payload services.DeliveryPayload,
) (ConfirmDeliveryCommand, error) {
	if err := errors.Join(validateActor(actor), validateDonationID(donationID)); err != nil {
		return ConfirmDeliveryCommand{}, err
	}

	return ConfirmDeliveryCommand{
		actor:      actor,
		donationID: donationID,
		payload:    payload,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

func (c ConfirmDeliveryCommand) Actor() kernel.Actor {
	return c.actor
}

func (c ConfirmDeliveryCommand) DonationID() kernel.UUID {
	return c.donationID
}

func (c ConfirmDeliveryCommand) Payload() services.DeliveryPayload {
	return c.payload
}
