package commands

import (
	"context"
	"time"

	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/services"
)

// ConfirmDeliveryCommandHandler runs the delivery verification gate and
// completes the donation. Delivered is terminal, so a resubmission is rejected
// with errs.ErrInvalidTransition rather than treated as a no-op.
type ConfirmDeliveryCommandHandler struct {
	arbiter   Arbiter
	announcer Announcer
	gate      services.VerificationGate
}

func NewConfirmDeliveryCommandHandler(
	arbiter Arbiter,
	announcer Announcer,
	gate services.VerificationGate,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		arbiter:   arbiter,
		announcer: announcer,
		gate:      gate,
	}
}

func (h ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) (*donation.Donation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	actor := cmd.Actor()
	decide := idempotent(donation.ConfirmDelivery, actor, nil, func(d *donation.Donation, now time.Time) error {
		if err := d.CanApply(donation.ConfirmDelivery, actor); err != nil {
			return err
		}
		verification, err := h.gate.VerifyDelivery(cmd.Payload(), actor.ID(), now)
		if err != nil {
			return err
		}
		return d.ConfirmDelivery(actor, verification, now)
	})

	return transition(ctx, h.arbiter, h.announcer, cmd.DonationID(), donation.ConfirmDelivery, actor, "", decide)
}
