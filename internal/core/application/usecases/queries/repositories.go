// Package queries contains the read side of the donation lifecycle. Role views
// (what a donor, an organization or a courier sees) are derived from the
// canonical donation record here and never stored.
package queries

import (
	"context"

	"connectfood/internal/core/application/arbiter"
	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/core/ports"
)

type (
	// Expirer commits the implicit expiry of a lapsed donation.
	Expirer interface {
		ExpireIfDue(ctx context.Context, id kernel.UUID) (arbiter.Result, error)
	}

	// ExpiryAnnouncer emits the lifecycle event of a committed expiry.
	ExpiryAnnouncer interface {
		Transitioned(ctx context.Context, res arbiter.Result, event donation.Event, actor kernel.Actor, reason string)
	}

	DonationLister interface {
		List(ctx context.Context, filter ports.DonationFilter) ([]*donation.Donation, error)
	}

	DonationGetter interface {
		Get(ctx context.Context, id kernel.UUID) (*donation.Donation, error)
	}

	StatusCounter interface {
		CountByStatus(ctx context.Context) (map[donation.Status]int64, error)
	}

	IssueLister interface {
		ListByDonation(ctx context.Context, donationID kernel.UUID) ([]donation.IssueReport, error)
	}
)
