package commands

import (
	"errors"
	"strings"

	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/pkg/errs"
	"connectfood/internal/pkg/guard"
)

var ErrReportIssueCommandIsNotConstructed = errors.New(
	"ReportIssueCommand must be created via NewReportIssueCommand constructor",
)

// ReportIssueCommand is a courier flagging a problem with a donation in its
// care. It does not change the donation's status.
type ReportIssueCommand struct {
	actor       kernel.Actor
	donationID  kernel.UUID
	description string

	guard guard.ConstructorGuard
}

func NewReportIssueCommand(actor kernel.Actor, donationID kernel.UUID, description string) (ReportIssueCommand, error) {
	description = strings.TrimSpace(description)

	var descriptionErr error
	if description == "" {
		descriptionErr = errs.NewInvalidInputError("issue description is required",
			errs.NewValueIsRequiredError("description"))
	}

	if err := errors.Join(validateActor(actor), validateDonationID(donationID), descriptionErr); err != nil {
		return ReportIssueCommand{}, err
	}

	return ReportIssueCommand{
		actor:       actor,
		donationID:  donationID,
		description: description,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ReportIssueCommand) Validate() error {
	return c.guard.Validate(ErrReportIssueCommandIsNotConstructed)
}

func (c ReportIssueCommand) Actor() kernel.Actor {
	return c.actor
}

func (c ReportIssueCommand) DonationID() kernel.UUID {
	return c.donationID
}

func (c ReportIssueCommand) Description() string {
	return c.description
}
