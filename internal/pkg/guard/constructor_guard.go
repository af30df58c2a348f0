// Package guard provides ConstructorGuard, which lets command and query values
// detect that they were built as zero values instead of through their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is given.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in values that must only be created through a
// constructor. The zero value reports itself as not constructed.
//
//	type ClaimDonationCommand struct {
//	    donationID kernel.UUID
//	    guard      guard.ConstructorGuard
//	}
//
//	func (c ClaimDonationCommand) Validate() error {
//	    return c.guard.Validate(ErrClaimDonationCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
