package commands

import (
	"context"
	"time"

	"connectfood/internal/core/domain/model/donation"
)

// CancelDonationCommandHandler withdraws a donation: the donor while it is
// pending, the claiming organization afterwards. Couriers cannot cancel.
type CancelDonationCommandHandler struct {
	arbiter   Arbiter
	announcer Announcer
}

func NewCancelDonationCommandHandler(arbiter Arbiter, announcer Announcer) CancelDonationCommandHandler {
	return CancelDonationCommandHandler{
		arbiter:   arbiter,
		announcer: announcer,
	}
}

func (h CancelDonationCommandHandler) Handle(ctx context.Context, cmd CancelDonationCommand) (*donation.Donation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	actor := cmd.Actor()
	decide := idempotent(donation.Cancel, actor, nil, func(d *donation.Donation, now time.Time) error {
		return d.Cancel(actor, cmd.Reason(), now)
	})

	return transition(ctx, h.arbiter, h.announcer, cmd.DonationID(), donation.Cancel, actor, cmd.Reason(), decide)
}
