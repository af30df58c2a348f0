package commands

import (
	"context"

	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/ports"
	"connectfood/internal/pkg/errs"
	"connectfood/internal/pkg/ids"
)

// ReportIssueCommandHandler stores a courier's issue report and notifies the
// claiming organization. The donation record and its version are not touched,
// so the report never competes with lifecycle transitions.
type ReportIssueCommandHandler struct {
	donations DonationGetter
	issues    IssueAdder
	announcer Announcer
	clock     ports.Clock
}

func NewReportIssueCommandHandler(
	donations DonationGetter,
	issues IssueAdder,
	announcer Announcer,
	clock ports.Clock,
) ReportIssueCommandHandler {
	return ReportIssueCommandHandler{
		donations: donations,
		issues:    issues,
		announcer: announcer,
		clock:     clock,
	}
}

func (h ReportIssueCommandHandler) Handle(ctx context.Context, cmd ReportIssueCommand) (donation.IssueReport, error) {
	if err := cmd.Validate(); err != nil {
		return donation.IssueReport{}, err
	}

	d, err := h.donations.Get(ctx, cmd.DonationID())
	if err != nil {
		return donation.IssueReport{}, err
	}

	actor := cmd.Actor()
	if err = d.CanReportIssue(actor); err != nil {
		return donation.IssueReport{}, err
	}

	now := h.clock.Now()
	id, err := ids.NewULID(now)
	if err != nil {
		return donation.IssueReport{}, err
	}

	report, err := donation.NewIssueReport(id, d.ID(), actor.ID(), cmd.Description(), now)
	if err != nil {
		return donation.IssueReport{}, errs.NewInvalidInputError("issue report is invalid", err)
	}

	if err = h.issues.Add(ctx, report); err != nil {
		return donation.IssueReport{}, err
	}

	h.announcer.IssueReported(ctx, d, report, actor)
	return report, nil
}
