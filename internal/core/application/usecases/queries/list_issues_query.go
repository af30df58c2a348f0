package queries

import (
	"errors"

	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/pkg/errs"
	"connectfood/internal/pkg/guard"
)

var ErrListIssuesQueryIsNotConstructed = errors.New(
	"ListIssuesQuery must be created via NewListIssuesQuery constructor",
)

// ListIssuesQuery reads the issue reports filed against a donation. Only its
// donor, its claiming organization and its courier may read them.
type ListIssuesQuery struct {
	actor      kernel.Actor
	donationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListIssuesQuery(actor kernel.Actor, donationID kernel.UUID) (ListIssuesQuery, error) {
	var idErr error
	if err := donationID.Validate(); err != nil {
		idErr = errs.NewInvalidInputError("donation id is required", errs.NewValueIsRequiredErrorWithCause("donationId", err))
	}
	if err := errors.Join(validateActor(actor), idErr); err != nil {
		return ListIssuesQuery{}, err
	}

	return ListIssuesQuery{
		actor:      actor,
		donationID: donationID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListIssuesQuery) Validate() error {
	return q.guard.Validate(ErrListIssuesQueryIsNotConstructed)
}

func (q ListIssuesQuery) Actor() kernel.Actor {
	return q.actor
}

func (q ListIssuesQuery) DonationID() kernel.UUID {
	return q.donationID
}
