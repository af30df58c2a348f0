package commands

import (
	"errors"
	"time"

	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/pkg/errs"
	"connectfood/internal/pkg/guard"
)

var ErrCreateDonationCommandIsNotConstructed = errors.New(
	"CreateDonationCommand must be created via NewCreateDonationCommand constructor",
)

// CreateDonationCommand represents a donor publishing surplus food.
//
// Example:
//
//	cmd, err := NewCreateDonationCommand(donor, details, time.Now().Add(6*time.Hour))
//	if err != nil {
//	    return err // errs.ErrInvalidInput lists the offending fields
//	}
//	d, err := handler.Handle(ctx, cmd)
type CreateDonationCommand struct {
	actor     kernel.Actor
	details   donation.Details
	expiresAt time.Time

	guard guard.ConstructorGuard
}

// NewCreateDonationCommand validates the shape of the donation. Every invalid
// field is reported at once through errs.ErrInvalidInput.
func NewCreateDonationCommand(
	actor kernel.Actor,
	details donation.Details,
	expiresAt time.Time,
) (CreateDonationCommand, error) {
	if err := validateActor(actor); err != nil {
		return CreateDonationCommand{}, err
	}

	var expiresErr error
	if expiresAt.IsZero() {
		expiresErr = errs.NewValueIsRequiredError("expiresAt")
	}

	if err := errors.Join(details.Validate(), expiresErr); err != nil {
		return CreateDonationCommand{}, errs.NewInvalidInputError("donation is invalid", err)
	}

	return CreateDonationCommand{
		actor:     actor,
		details:   details,
		expiresAt: expiresAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateDonationCommand) Validate() error {
	return c.guard.Validate(ErrCreateDonationCommandIsNotConstructed)
}

func (c CreateDonationCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CreateDonationCommand) Details() donation.Details {
	return c.details
}

func (c CreateDonationCommand) ExpiresAt() time.Time {
	return c.expiresAt
}
