package commands

import (
	"context"
	"time"

	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/services"
)

// ConfirmPickupCommandHandler runs the pickup verification gate and, if the
// evidence is complete, moves the donation to PickedUp with the verification
// record attached. Incomplete evidence leaves status and version untouched.
// Status and courier are checked before the evidence, so a request that could
// never apply fails the same way whatever its payload.
type ConfirmPickupCommandHandler struct {
	arbiter   Arbiter
	announcer Announcer
	gate      services.VerificationGate
}

func NewConfirmPickupCommandHandler(
	arbiter Arbiter,
	announcer Announcer,
	gate services.VerificationGate,
) ConfirmPickupCommandHandler {
	return ConfirmPickupCommandHandler{
		arbiter:   arbiter,
		announcer: announcer,
		gate:      gate,
	}
}

func (h ConfirmPickupCommandHandler) Handle(ctx context.Context, cmd ConfirmPickupCommand) (*donation.Donation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	actor := cmd.Actor()
	decide := idempotent(donation.ConfirmPickup, actor, nil, func(d *donation.Donation, now time.Time) error {
		if err := d.CanApply(donation.ConfirmPickup, actor); err != nil {
			return err
		}
		verification, err := h.gate.VerifyPickup(d.Details().Items, cmd.Payload(), actor.ID(), now)
		if err != nil {
			return err
		}
		return d.ConfirmPickup(actor, verification, now)
	})

	return transition(ctx, h.arbiter, h.announcer, cmd.DonationID(), donation.ConfirmPickup, actor, "", decide)
}
