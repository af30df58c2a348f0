package queries

import (
	"errors"

	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/pkg/errs"
	"connectfood/internal/pkg/guard"
)

var ErrGetDonationQueryIsNotConstructed = errors.New(
	"GetDonationQuery must be created via NewGetDonationQuery constructor",
)

// GetDonationQuery reads one donation as seen by the caller.
type GetDonationQuery struct {
	actor      kernel.Actor
	donationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDonationQuery(actor kernel.Actor, donationID kernel.UUID) (GetDonationQuery, error) {
	var idErr error
	if err := donationID.Validate(); err != nil {
		idErr = errs.NewInvalidInputError("donation id is required", errs.NewValueIsRequiredErrorWithCause("donationId", err))
	}
	if err := errors.Join(validateActor(actor), idErr); err != nil {
		return GetDonationQuery{}, err
	}

	return GetDonationQuery{
		actor:      actor,
		donationID: donationID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetDonationQuery) Validate() error {
	return q.guard.Validate(ErrGetDonationQueryIsNotConstructed)
}

func (q GetDonationQuery) Actor() kernel.Actor {
	return q.actor
}

func (q GetDonationQuery) DonationID() kernel.UUID {
	return q.donationID
}
