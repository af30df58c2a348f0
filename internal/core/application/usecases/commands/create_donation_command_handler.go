package commands

import (
	"context"

	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/core/ports"
	"connectfood/internal/pkg/errs"
)

// CreateDonationCommandHandler publishes a new donation in status Pending at
// version 0 and announces it to organizations.
type CreateDonationCommandHandler struct {
	repo      DonationAdder
	announcer Announcer
	clock     ports.Clock
}

func NewCreateDonationCommandHandler(
	repo DonationAdder,
	announcer Announcer,
	clock ports.Clock,
) CreateDonationCommandHandler {
	return CreateDonationCommandHandler{
		repo:      repo,
		announcer: announcer,
		clock:     clock,
	}
}

// Handle creates the donation. Only donors may publish; the donor of record is
// the caller.
func (h CreateDonationCommandHandler) Handle(ctx context.Context, cmd CreateDonationCommand) (*donation.Donation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	actor := cmd.Actor()
	if actor.Role() != kernel.Donor {
		return nil, errs.NewUnauthorizedError("only donors publish donations, got " + actor.Role().String())
	}

	d, err := donation.NewDonation(kernel.NewUUID(), actor.ID(), cmd.Details(), cmd.ExpiresAt(), h.clock.Now())
	if err != nil {
		return nil, errs.NewInvalidInputError("donation is invalid", err)
	}

	if err = h.repo.Add(ctx, d); err != nil {
		return nil, err
	}

	h.announcer.Created(ctx, d, actor)
	return d, nil
}
