package queries

import (
	"context"
	"log/slog"
	"slices"

	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/core/ports"
)

// ListDonationsQueryHandler serves the role views:
//   - donor: the donations it published
//   - organization: every pending donation plus the ones it claimed
//   - courier: the donations assigned to it
//
// Lapsed donations found on the page are expired before they are returned.
// A failure to expire one is logged and the donation is left out of the page.
type ListDonationsQueryHandler struct {
	reader    DonationLister
	expirer   Expirer
	announcer ExpiryAnnouncer
	clock     ports.Clock
	logger    *slog.Logger
}

func NewListDonationsQueryHandler(
	reader DonationLister,
	expirer Expirer,
	announcer ExpiryAnnouncer,
	clock ports.Clock,
	logger *slog.Logger,
) ListDonationsQueryHandler {
	return ListDonationsQueryHandler{
		reader:    reader,
		expirer:   expirer,
		announcer: announcer,
		clock:     clock,
		logger:    logger.With("component", "list_donations"),
	}
}

func (h ListDonationsQueryHandler) Handle(ctx context.Context, query ListDonationsQuery) ([]*donation.Donation, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor := query.Actor()
	filter := roleFilter(actor)
	filter.Statuses = query.Statuses()
	filter.Limit = query.Limit()
	filter.Offset = query.Offset()

	found, err := h.reader.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	result := make([]*donation.Donation, 0, len(found))
	for _, d := range found {
		if d.IsExpired(now) {
			res, expErr := h.expirer.ExpireIfDue(ctx, d.ID())
			if expErr != nil {
				h.logger.WarnContext(ctx, "failed to expire donation", "donation_id", d.ID().String(), "error", expErr)
				continue
			}
			h.announcer.Transitioned(ctx, res, donation.Cancel, actor, "")
			d = res.Donation
		}

		if !canView(d, actor) {
			continue
		}
		if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, d.Status()) {
			continue
		}
		result = append(result, d)
	}

	return result, nil
}

func roleFilter(actor kernel.Actor) ports.DonationFilter {
	id := actor.ID()
	switch actor.Role() {
	case kernel.Donor:
		return ports.DonationFilter{DonorID: &id}
	case kernel.NGO:
		return ports.DonationFilter{ClaimedBy: &id, IncludeAvailable: true}
	case kernel.Courier:
		return ports.DonationFilter{AssignedCourier: &id}
	}
	return ports.DonationFilter{}
}
