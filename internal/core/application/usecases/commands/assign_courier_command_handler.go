package commands

import (
	"context"
	"time"

	"connectfood/internal/core/domain/model/donation"
)

// AssignCourierCommandHandler records the courier chosen by the claiming
// organization. At most one assignment commits; re-sending the same courier is
// a no-op success.
type AssignCourierCommandHandler struct {
	arbiter   Arbiter
	announcer Announcer
}

func NewAssignCourierCommandHandler(arbiter Arbiter, announcer Announcer) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		arbiter:   arbiter,
		announcer: announcer,
	}
}

func (h AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) (*donation.Donation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	actor := cmd.Actor()
	courierID := cmd.CourierID()
	decide := idempotent(donation.AssignCourier, actor, &courierID, func(d *donation.Donation, now time.Time) error {
		return d.AssignCourier(actor, courierID, now)
	})

	return transition(ctx, h.arbiter, h.announcer, cmd.DonationID(), donation.AssignCourier, actor, "", decide)
}
