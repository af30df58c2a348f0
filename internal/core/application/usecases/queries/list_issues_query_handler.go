package queries

import (
	"context"

	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/pkg/errs"
)

type ListIssuesQueryHandler struct {
	donations DonationGetter
	issues    IssueLister
}

func NewListIssuesQueryHandler(donations DonationGetter, issues IssueLister) ListIssuesQueryHandler {
	return ListIssuesQueryHandler{
		donations: donations,
		issues:    issues,
	}
}

// Handle returns the reports oldest first.
func (h ListIssuesQueryHandler) Handle(ctx context.Context, query ListIssuesQuery) ([]donation.IssueReport, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	d, err := h.donations.Get(ctx, query.DonationID())
	if err != nil {
		return nil, err
	}
	if !isInvolved(d, query.Actor()) {
		return nil, errs.NewUnauthorizedError("issue reports are visible to the donation's participants only")
	}

	return h.issues.ListByDonation(ctx, d.ID())
}
