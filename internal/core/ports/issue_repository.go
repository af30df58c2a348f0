package ports

import (
	"context"

	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"
)

// IssueRepository stores courier issue reports. Reports are append-only and do
// not touch the donation record or its version.
type IssueRepository interface {
	Add(ctx context.Context, report donation.IssueReport) error

	// ListByDonation returns the reports for a donation, oldest first.
	ListByDonation(ctx context.Context, donationID kernel.UUID) ([]donation.IssueReport, error)
}
