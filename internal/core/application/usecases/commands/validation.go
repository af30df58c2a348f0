package commands

import (
	"context"
	"time"

	"connectfood/internal/core/application/arbiter"
	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/pkg/errs"
)

func validateActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return errs.NewUnauthorizedError("caller is not identified")
	}
	return nil
}

func validateDonationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewInvalidInputError("donation id is required", errs.NewValueIsRequiredErrorWithCause("donationId", err))
	}
	return nil
}

// transition runs decide through the arbiter and announces whatever it
// committed, including an expiry committed on the way to a rejection.
func transition(
	ctx context.Context,
	arb Arbiter,
	announcer Announcer,
	id kernel.UUID,
	event donation.Event,
	actor kernel.Actor,
	reason string,
	decide arbiter.Decide,
) (*donation.Donation, error) {
	res, err := arb.Apply(ctx, id, event, decide)
	announcer.Transitioned(ctx, res, event, actor, reason)
	if err != nil {
		return nil, err
	}
	return res.Donation, nil
}

// idempotent wraps a state change so that a resubmitted request for a change
// the record already reflects succeeds without a second transition.
func idempotent(
	event donation.Event,
	actor kernel.Actor,
	courierID *kernel.UUID,
	change func(d *donation.Donation, now time.Time) error,
) arbiter.Decide {
	return func(d *donation.Donation, now time.Time) (arbiter.Outcome, error) {
		if d.AlreadyApplied(event, actor, courierID) {
			return arbiter.NoOp, nil
		}
		if err := change(d, now); err != nil {
			return 0, err
		}
		return arbiter.Apply, nil
	}
}
