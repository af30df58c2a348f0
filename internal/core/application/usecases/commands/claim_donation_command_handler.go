package commands

import (
	"context"
	"time"

	"connectfood/internal/core/domain/model/donation"
)

// ClaimDonationCommandHandler resolves competing claims. Exactly one
// organization wins; the others see errs.ErrInvalidTransition once the winner
// has committed, or errs.ErrConflict if they kept losing the race. A claim on a
// lapsed donation expires it and returns errs.ErrExpired.
//
// Example:
//
//	cmd, _ := NewClaimDonationCommand(ngo, donationID)
//	d, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrInvalidTransition):
//	    // somebody else was faster
//	case errors.Is(err, errs.ErrExpired):
//	    // too late, the food is gone
//	}
type ClaimDonationCommandHandler struct {
	arbiter   Arbiter
	announcer Announcer
}

func NewClaimDonationCommandHandler(arbiter Arbiter, announcer Announcer) ClaimDonationCommandHandler {
	return ClaimDonationCommandHandler{
		arbiter:   arbiter,
		announcer: announcer,
	}
}

func (h ClaimDonationCommandHandler) Handle(ctx context.Context, cmd ClaimDonationCommand) (*donation.Donation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	actor := cmd.Actor()
	decide := idempotent(donation.Claim, actor, nil, func(d *donation.Donation, now time.Time) error {
		return d.Claim(actor, now)
	})

	return transition(ctx, h.arbiter, h.announcer, cmd.DonationID(), donation.Claim, actor, "", decide)
}
