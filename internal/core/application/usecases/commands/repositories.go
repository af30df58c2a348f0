// Package commands contains the lifecycle operations that change a donation.
// Every command is validated at construction, and every handler follows the
// same sequence: verification gate (where one applies), exclusivity arbiter
// wrapping the state machine, then a fire-and-forget lifecycle event.
package commands

import (
	"context"

	"connectfood/internal/core/application/arbiter"
	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/core/ports"
)

// Collaborators of the command handlers.
type (
	// Arbiter applies a decision to a donation with compare-and-set semantics.
	Arbiter interface {
		Apply(ctx context.Context, id kernel.UUID, event donation.Event, decide arbiter.Decide) (arbiter.Result, error)
	}

	// Announcer emits lifecycle events for committed changes.
	Announcer interface {
		Created(ctx context.Context, d *donation.Donation, actor kernel.Actor)
		Transitioned(ctx context.Context, res arbiter.Result, event donation.Event, actor kernel.Actor, reason string)
		IssueReported(ctx context.Context, d *donation.Donation, report donation.IssueReport, actor kernel.Actor)
	}

	// DonationAdder stores new donations.
	DonationAdder interface {
		Add(ctx context.Context, d *donation.Donation) error
	}

	// DonationGetter reads the current donation record.
	DonationGetter interface {
		Get(ctx context.Context, id kernel.UUID) (*donation.Donation, error)
	}

	// IssueAdder stores courier issue reports.
	IssueAdder interface {
		Add(ctx context.Context, report donation.IssueReport) error
	}

	// DonationLister finds sweep candidates.
	DonationLister interface {
		List(ctx context.Context, filter ports.DonationFilter) ([]*donation.Donation, error)
	}

	// Expirer commits the implicit expiry of a lapsed donation.
	Expirer interface {
		ExpireIfDue(ctx context.Context, id kernel.UUID) (arbiter.Result, error)
	}
)
