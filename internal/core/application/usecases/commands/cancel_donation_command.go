package commands

import (
	"errors"
	"strings"
	"unicode/utf8"

	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/pkg/errs"
	"connectfood/internal/pkg/guard"
)

const maxCancelReasonLength = 500

var ErrCancelDonationCommandIsNotConstructed = errors.New(
	"CancelDonationCommand must be created via NewCancelDonationCommand constructor",
)

// CancelDonationCommand withdraws a donation. The reason is optional free text
// shown to the other participants.
type CancelDonationCommand struct {
	actor      kernel.Actor
	donationID kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

func NewCancelDonationCommand(actor kernel.Actor, donationID kernel.UUID, reason string) (CancelDonationCommand, error) {
	reason = strings.TrimSpace(reason)

	var reasonErr error
	if n := utf8.RuneCountInString(reason); n > maxCancelReasonLength {
		reasonErr = errs.NewInvalidInputError("cancellation reason is too long",
			errs.NewValueIsOutOfRangeError("reason", n, 0, maxCancelReasonLength))
	}

	if err := errors.Join(validateActor(actor), validateDonationID(donationID), reasonErr); err != nil {
		return CancelDonationCommand{}, err
	}

	return CancelDonationCommand{
		actor:      actor,
		donationID: donationID,
		reason:     reason,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CancelDonationCommand) Validate() error {
	return c.guard.Validate(ErrCancelDonationCommandIsNotConstructed)
}

func (c CancelDonationCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CancelDonationCommand) DonationID() kernel.UUID {
	return c.donationID
}

func (c CancelDonationCommand) Reason() string {
	return c.reason
}
