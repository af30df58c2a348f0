package donation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/pkg/errs"
)

const maxIssueDescriptionLength = 2000

// IssueReport is a courier's out-of-band note about a problem with a donation
// it is carrying. It never changes the donation's status: the claiming
// organization reads it and decides whether to Cancel.
type IssueReport struct {
	ID          string
	DonationID  kernel.UUID
	CourierID   kernel.UUID
	Description string
	ReportedAt  time.Time
}

// NewIssueReport validates and builds an IssueReport. id is an opaque,
// time-sortable identifier supplied by the caller.
func NewIssueReport(id string, donationID, courierID kernel.UUID, description string, now time.Time) (IssueReport, error) {
	description = strings.TrimSpace(description)

	var descriptionErr error
	switch {
	case description == "":
		descriptionErr = errs.NewValueIsRequiredError("description")
	case len(description) > maxIssueDescriptionLength:
		descriptionErr = errs.NewValueIsOutOfRangeError("description", len(description), 1, maxIssueDescriptionLength)
	}

	var idErr error
	if strings.TrimSpace(id) == "" {
		idErr = errs.NewValueIsRequiredError("id")
	}

	if err := errors.Join(idErr, donationID.Validate(), courierID.Validate(), descriptionErr); err != nil {
		return IssueReport{}, err
	}

	return IssueReport{
		ID:          id,
		DonationID:  donationID,
		CourierID:   courierID,
		Description: description,
		ReportedAt:  now.UTC(),
	}, nil
}

// CanReportIssue checks that actor is the courier currently responsible for the
// donation. Issues can be reported from assignment until drop-off.
func (d *Donation) CanReportIssue(actor kernel.Actor) error {
	switch d.status {
	case Assigned, PickedUp, InTransit:
	default:
		return errs.NewInvalidTransitionError(fmt.Sprintf("issues cannot be reported in status %s", d.status))
	}

	if actor.Role() != kernel.Courier {
		return errs.NewUnauthorizedError(fmt.Sprintf("issues are reported by couriers, got %s", actor.Role()))
	}
	if !sameUUID(d.assignedCourier, actor.ID()) {
		return errs.NewUnauthorizedError("only the assigned courier can report an issue")
	}
	return nil
}
