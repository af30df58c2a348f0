package commands

import (
	"context"
	"time"

	"connectfood/internal/core/domain/model/donation"
)

type DepartForDropoffCommandHandler struct {
	arbiter   Arbiter
	announcer Announcer
}

func NewDepartForDropoffCommandHandler(arbiter Arbiter, announcer Announcer) DepartForDropoffCommandHandler {
	return DepartForDropoffCommandHandler{
		arbiter:   arbiter,
		announcer: announcer,
	}
}

// Handle moves a picked-up donation to InTransit on behalf of its courier.
func (h DepartForDropoffCommandHandler) Handle(ctx context.Context, cmd DepartForDropoffCommand) (*donation.Donation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	actor := cmd.Actor()
	decide := idempotent(donation.DepartForDropoff, actor, nil, func(d *donation.Donation, now time.Time) error {
		return d.DepartForDropoff(actor, now)
	})

	return transition(ctx, h.arbiter, h.announcer, cmd.DonationID(), donation.DepartForDropoff, actor, "", decide)
}
