package commands

import (
	"context"
	"errors"
	"fmt"

	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/core/ports"
)

// ExpireLapsedDonationsCommandHandler commits the expiry of every lapsed
// donation it finds. Each expiry goes through the arbiter, so a donation that
// was claimed or assigned meanwhile is left alone.
type ExpireLapsedDonationsCommandHandler struct {
	lister    DonationLister
	expirer   Expirer
	announcer Announcer
	clock     ports.Clock
}

func NewExpireLapsedDonationsCommandHandler(
	lister DonationLister,
	expirer Expirer,
	announcer Announcer,
	clock ports.Clock,
) ExpireLapsedDonationsCommandHandler {
	return ExpireLapsedDonationsCommandHandler{
		lister:    lister,
		expirer:   expirer,
		announcer: announcer,
		clock:     clock,
	}
}

// Handle returns how many donations were expired. Failures on single
// donations do not stop the sweep and are returned joined.
func (h ExpireLapsedDonationsCommandHandler) Handle(ctx context.Context, cmd ExpireLapsedDonationsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	lapsed, err := h.findLapsed(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	var (
		expired  int
		failures []error
	)
	for _, id := range lapsed {
		res, err := h.expirer.ExpireIfDue(ctx, id)
		if err != nil {
			failures = append(failures, fmt.Errorf("expire donation %s: %w", id, err))
			continue
		}
		if !res.Expired {
			continue
		}
		expired++
		h.announcer.Transitioned(ctx, res, donation.Cancel, kernel.Actor{}, donation.ExpiredReason)
	}
	return expired, errors.Join(failures...)
}

func (h ExpireLapsedDonationsCommandHandler) findLapsed(ctx context.Context, batchSize int) ([]kernel.UUID, error) {
	now := h.clock.Now()
	filter := ports.DonationFilter{
		Statuses: []donation.Status{donation.Pending, donation.Claimed},
		Limit:    batchSize,
	}

	var lapsed []kernel.UUID
	for {
		page, err := h.lister.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		for _, d := range page {
			if d.IsExpired(now) {
				lapsed = append(lapsed, d.ID())
			}
		}
		if len(page) < batchSize {
			return lapsed, nil
		}
		filter.Offset += batchSize
	}
}
