package donation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/pkg/errs"
	"connectfood/internal/pkg/guard"
)

var (
	// ErrDonationIsNotConstructed is returned when a Donation instance was not created
	// through NewDonation or RestoreDonation.
	ErrDonationIsNotConstructed = errors.New("Donation must be created via NewDonation constructor")
)

// Donation is the aggregate root tracked from publication by a donor to the
// verified hand-over at the receiving organization.
//
// Donation follows these invariants:
//   - id and donorID are set at creation and never change
//   - claimedBy is set iff status is Claimed, Assigned, PickedUp, InTransit or Delivered
//   - assignedCourier is set iff status is Assigned, PickedUp, InTransit or Delivered
//   - pickup and delivery verifications are written exactly once, at their transition
//   - Delivered and Canceled are terminal; the record is immutable afterwards
//   - version grows by exactly one on every successful transition
//
// Transition methods mutate the receiver. Callers that need to keep the
// original (the arbiter does, to compare versions) work on a Clone.
type Donation struct {
	id      kernel.UUID
	donorID kernel.UUID
	details Details

	status          Status
	claimedBy       *kernel.UUID
	assignedCourier *kernel.UUID

	pickupVerification   *PickupVerification
	deliveryVerification *DeliveryVerification
	cancellation         *Cancellation

	expiresAt time.Time
	createdAt time.Time
	updatedAt time.Time
	version   int64

	guard guard.ConstructorGuard
}

// NewDonation creates a Pending donation at version 0.
//
// expiresAt may already be in the past: such a donation is created normally and
// rejects its first claim with errs.ErrExpired.
//
//	d, err := donation.NewDonation(kernel.NewUUID(), donorID, details, time.Now().Add(6*time.Hour), time.Now())
func NewDonation(id, donorID kernel.UUID, details Details, expiresAt, now time.Time) (*Donation, error) {
	d := &Donation{
		id:        id,
		donorID:   donorID,
		details:   details.clone(),
		status:    Pending,
		expiresAt: expiresAt.UTC(),
		createdAt: now.UTC(),
		updatedAt: now.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		validateDonor(donorID),
		details.Validate(),
		d.validateExpiry(),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Snapshot is the flat representation of a Donation used by persistence adapters.
type Snapshot struct {
	ID                   kernel.UUID
	DonorID              kernel.UUID
	Details              Details
	Status               Status
	ClaimedBy            *kernel.UUID
	AssignedCourier      *kernel.UUID
	PickupVerification   *PickupVerification
	DeliveryVerification *DeliveryVerification
	Cancellation         *Cancellation
	ExpiresAt            time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
	Version              int64
}

// RestoreDonation rebuilds a Donation from a stored snapshot and re-checks every
// invariant, so a corrupted row never reaches the lifecycle rules.
func RestoreDonation(s Snapshot) (*Donation, error) {
	d := &Donation{
		id:                   s.ID,
		donorID:              s.DonorID,
		details:              s.Details.clone(),
		status:               s.Status,
		claimedBy:            cloneUUID(s.ClaimedBy),
		assignedCourier:      cloneUUID(s.AssignedCourier),
		pickupVerification:   s.PickupVerification.clone(),
		deliveryVerification: s.DeliveryVerification.clone(),
		cancellation:         s.Cancellation.clone(),
		expiresAt:            s.ExpiresAt.UTC(),
		createdAt:            s.CreatedAt.UTC(),
		updatedAt:            s.UpdatedAt.UTC(),
		version:              s.Version,
		guard:                guard.NewConstructorGuard(),
	}

	var versionErr error
	if s.Version < 0 {
		versionErr = errs.NewVersionIsInvalidErrorWithCause("version", fmt.Errorf("%d is negative", s.Version))
	}

	if err := errors.Join(
		s.ID.Validate(),
		validateDonor(s.DonorID),
		s.Details.Validate(),
		s.Status.Validate(),
		s.Status.ValidateCanHaveClaimant(s.ClaimedBy != nil),
		s.Status.ValidateCanHaveCourier(s.AssignedCourier != nil),
		d.validateVerifications(),
		d.validateExpiry(),
		versionErr,
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate ensures the Donation was built through NewDonation or RestoreDonation.
func (d *Donation) Validate() error {
	if d == nil {
		return ErrDonationIsNotConstructed
	}
	return d.guard.Validate(ErrDonationIsNotConstructed)
}

// Snapshot returns a deep copy of the aggregate state for persistence.
func (d *Donation) Snapshot() Snapshot {
	return Snapshot{
		ID:                   d.id,
		DonorID:              d.donorID,
		Details:              d.details.clone(),
		Status:               d.status,
		ClaimedBy:            cloneUUID(d.claimedBy),
		AssignedCourier:      cloneUUID(d.assignedCourier),
		PickupVerification:   d.pickupVerification.clone(),
		DeliveryVerification: d.deliveryVerification.clone(),
		Cancellation:         d.cancellation.clone(),
		ExpiresAt:            d.expiresAt,
		CreatedAt:            d.createdAt,
		UpdatedAt:            d.updatedAt,
		Version:              d.version,
	}
}

// Clone returns an independent copy of the donation.
func (d *Donation) Clone() *Donation {
	c := *d
	c.details = d.details.clone()
	c.claimedBy = cloneUUID(d.claimedBy)
	c.assignedCourier = cloneUUID(d.assignedCourier)
	c.pickupVerification = d.pickupVerification.clone()
	c.deliveryVerification = d.deliveryVerification.clone()
	c.cancellation = d.cancellation.clone()
	return &c
}

// ID returns the donation's unique identifier.
func (d *Donation) ID() kernel.UUID {
	return d.id
}

// DonorID returns the donor who published the donation.
func (d *Donation) DonorID() kernel.UUID {
	return d.donorID
}

// Details returns a copy of the published details.
func (d *Donation) Details() Details {
	return d.details.clone()
}

// Status returns the current lifecycle status.
func (d *Donation) Status() Status {
	return d.status
}

// ClaimedBy returns the claiming organization, or nil before Claim.
func (d *Donation) ClaimedBy() *kernel.UUID {
	return cloneUUID(d.claimedBy)
}

// AssignedCourier returns the assigned courier, or nil before AssignCourier.
func (d *Donation) AssignedCourier() *kernel.UUID {
	return cloneUUID(d.assignedCourier)
}

func (d *Donation) ExpiresAt() time.Time {
	return d.expiresAt
}

func (d *Donation) CreatedAt() time.Time {
	return d.createdAt
}

func (d *Donation) UpdatedAt() time.Time {
	return d.updatedAt
}

// Version returns the optimistic-concurrency token of the record.
func (d *Donation) Version() int64 {
	return d.version
}

// Claimant returns the organization holding the claim or, once canceled, the
// one that held it.
func (d *Donation) Claimant() *kernel.UUID {
	if d.cancellation != nil {
		return cloneUUID(d.cancellation.PriorClaimant)
	}
	return cloneUUID(d.claimedBy)
}

// Courier returns the assigned courier or, once canceled, the one that was assigned.
func (d *Donation) Courier() *kernel.UUID {
	if d.cancellation != nil {
		return cloneUUID(d.cancellation.PriorCourier)
	}
	return cloneUUID(d.assignedCourier)
}

func (d *Donation) Cancellation() *Cancellation {
	return d.cancellation.clone()
}

func (d *Donation) PickupVerification() *PickupVerification {
	return d.pickupVerification.clone()
}

func (d *Donation) DeliveryVerification() *DeliveryVerification {
	return d.deliveryVerification.clone()
}

// IsExpired reports whether a donation that nobody is transporting yet has
// passed its expiry. Once a courier is assigned the goods are on their way and
// expiry no longer applies.
func (d *Donation) IsExpired(now time.Time) bool {
	return (d.status == Pending || d.status == Claimed) && now.After(d.expiresAt)
}

// Claim records the exclusive acceptance of a pending donation by an organization.
func (d *Donation) Claim(actor kernel.Actor, now time.Time) error {
	next, err := d.authorize(Claim, actor)
	if err != nil {
		return err
	}

	id := actor.ID()
	d.claimedBy = &id
	d.commit(next, now)
	return nil
}

// AssignCourier records the claiming organization's choice of courier.
func (d *Donation) AssignCourier(actor kernel.Actor, courierID kernel.UUID, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return errs.NewInvalidInputError("courier id is required", errs.NewValueIsRequiredErrorWithCause("courierId", err))
	}

	next, err := d.authorize(AssignCourier, actor)
	if err != nil {
		return err
	}

	d.assignedCourier = &courierID
	d.commit(next, now)
	return nil
}

// ConfirmPickup records the verified collection of the goods by the assigned courier.
// The verification must already have passed the verification gate.
func (d *Donation) ConfirmPickup(actor kernel.Actor, verification PickupVerification, now time.Time) error {
	next, err := d.authorize(ConfirmPickup, actor)
	if err != nil {
		return err
	}

	d.pickupVerification = verification.clone()
	d.commit(next, now)
	return nil
}

// DepartForDropoff records that the assigned courier left for the organization.
func (d *Donation) DepartForDropoff(actor kernel.Actor, now time.Time) error {
	next, err := d.authorize(DepartForDropoff, actor)
	if err != nil {
		return err
	}

	d.commit(next, now)
	return nil
}

// ConfirmDelivery records the verified hand-over at the organization.
// The verification must already have passed the verification gate.
func (d *Donation) ConfirmDelivery(actor kernel.Actor, verification DeliveryVerification, now time.Time) error {
	next, err := d.authorize(ConfirmDelivery, actor)
	if err != nil {
		return err
	}

	d.deliveryVerification = verification.clone()
	d.commit(next, now)
	return nil
}

// Cancel withdraws the donation. The donor may cancel while it is pending; the
// claiming organization may cancel any later non-terminal status.
func (d *Donation) Cancel(actor kernel.Actor, reason string, now time.Time) error {
	next, err := d.authorize(Cancel, actor)
	if err != nil {
		return err
	}

	id := actor.ID()
	d.withdraw(Cancellation{
		By:     &id,
		Role:   actor.Role(),
		Reason: strings.TrimSpace(reason),
		At:     now.UTC(),
	})
	d.commit(next, now)
	return nil
}

// Expire commits the implicit cancellation of a lapsed donation. It is only
// legal while IsExpired holds.
func (d *Donation) Expire(now time.Time) error {
	if !d.IsExpired(now) {
		return errs.NewInvalidTransitionError(
			fmt.Sprintf("donation in status %s expiring at %s has not expired", d.status, d.expiresAt.Format(time.RFC3339)),
		)
	}

	d.withdraw(Cancellation{Reason: ExpiredReason, At: now.UTC()})
	d.commit(Canceled, now)
	return nil
}

// AlreadyApplied reports whether the donation already reflects event issued by
// actor, so that a resubmitted request can succeed without a second transition.
// Only non-terminal targets qualify; a terminal donation rejects every event.
// courierID is consulted for AssignCourier only.
func (d *Donation) AlreadyApplied(event Event, actor kernel.Actor, courierID *kernel.UUID) bool {
	switch event {
	case Claim:
		return d.status == Claimed && actor.Role() == kernel.NGO && sameUUID(d.claimedBy, actor.ID())
	case AssignCourier:
		return d.status == Assigned && actor.Role() == kernel.NGO && sameUUID(d.claimedBy, actor.ID()) &&
			courierID != nil && sameUUID(d.assignedCourier, *courierID)
	case ConfirmPickup:
		return d.status == PickedUp && actor.Role() == kernel.Courier && sameUUID(d.assignedCourier, actor.ID())
	case DepartForDropoff:
		return d.status == InTransit && actor.Role() == kernel.Courier && sameUUID(d.assignedCourier, actor.ID())
	}
	return false
}

// CanApply reports whether actor may issue event against the donation's
// current state, without changing it. Callers use it to reject a request
// before validating its payload.
func (d *Donation) CanApply(event Event, actor kernel.Actor) error {
	_, err := d.authorize(event, actor)
	return err
}

// authorize runs the state machine and then checks the actor against the
// identities recorded on the donation.
func (d *Donation) authorize(event Event, actor kernel.Actor) (Status, error) {
	if err := actor.Validate(); err != nil {
		return Unknown, errs.NewUnauthorizedError("actor is not identified")
	}

	next, err := Transition(d.status, event, actor.Role())
	if err != nil {
		return Unknown, err
	}

	switch event {
	case Claim:
		// any organization may claim a pending donation
	case AssignCourier:
		if !sameUUID(d.claimedBy, actor.ID()) {
			return Unknown, errs.NewUnauthorizedError("only the claiming organization can assign a courier")
		}
	case ConfirmPickup, DepartForDropoff, ConfirmDelivery:
		if !sameUUID(d.assignedCourier, actor.ID()) {
			return Unknown, errs.NewUnauthorizedError(fmt.Sprintf("only the assigned courier can %s", event))
		}
	case Cancel:
		if d.status == Pending && !d.donorID.IsEqual(actor.ID()) {
			return Unknown, errs.NewUnauthorizedError("only the donor can cancel a pending donation")
		}
		if d.status != Pending && !sameUUID(d.claimedBy, actor.ID()) {
			return Unknown, errs.NewUnauthorizedError("only the claiming organization can cancel a claimed donation")
		}
	case UnknownEvent:
		return Unknown, errs.NewInvalidTransitionError("unknown event")
	}

	return next, nil
}

// withdraw moves the current participants into the cancellation record.
func (d *Donation) withdraw(c Cancellation) {
	c.PriorClaimant = d.claimedBy
	c.PriorCourier = d.assignedCourier
	d.claimedBy = nil
	d.assignedCourier = nil
	d.cancellation = &c
}

func (d *Donation) commit(next Status, now time.Time) {
	d.status = next
	d.updatedAt = now.UTC()
	d.version++
}

func (d *Donation) validateExpiry() error {
	if d.expiresAt.IsZero() {
		return errs.NewValueIsRequiredError("expiresAt")
	}
	if p := d.details.PreparedAt; p != nil && p.After(d.expiresAt) {
		return errs.NewValueIsInvalidErrorWithCause("details.preparedAt", errors.New("must not be after expiresAt"))
	}
	return nil
}

func (d *Donation) validateVerifications() error {
	var problems []error
	pastPickup := d.status == PickedUp || d.status == InTransit || d.status == Delivered
	if pastPickup != (d.pickupVerification != nil) && d.status != Canceled {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"pickupVerification", fmt.Errorf("inconsistent with status %s", d.status)))
	}
	if (d.status == Delivered) != (d.deliveryVerification != nil) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"deliveryVerification", fmt.Errorf("inconsistent with status %s", d.status)))
	}
	if (d.status == Canceled) != (d.cancellation != nil) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"cancellation", fmt.Errorf("inconsistent with status %s", d.status)))
	}
	if c := d.cancellation; c != nil && c.PriorCourier != nil && c.PriorClaimant == nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"cancellation.priorCourier", errors.New("set without a prior claimant")))
	}
	return errors.Join(problems...)
}

func validateDonor(donorID kernel.UUID) error {
	if err := donorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("donorId", err)
	}
	return nil
}

func sameUUID(recorded *kernel.UUID, id kernel.UUID) bool {
	return recorded != nil && recorded.IsEqual(id)
}

func cloneUUID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
