// Package ports defines the contracts between the donation lifecycle core and
// its infrastructure: storage, read models and event delivery.
package ports

import (
	"context"

	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"
)

// DonationRepository is the durable store of donation records. Writes never
// overwrite blindly: every change goes through CompareAndSet.
type DonationRepository interface {
	// Add persists a new donation at version 0.
	// Returns *errs.LifecycleError with code conflict if the id is already taken.
	Add(ctx context.Context, d *donation.Donation) error

	// Get returns the current record, or *errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*donation.Donation, error)

	// CompareAndSet replaces the stored record with next if and only if the
	// stored version still equals expectedVersion. It reports false, with a nil
	// error, when another writer got there first.
	//
	// Example:
	//   ok, err := repo.CompareAndSet(ctx, current.Version(), next)
	//   if err != nil {
	//       return err
	//   }
	//   if !ok {
	//       // re-read and retry
	//   }
	CompareAndSet(ctx context.Context, expectedVersion int64, next *donation.Donation) (bool, error)
}

// DonationFilter narrows a donation listing. Participant fields that are set
// must all match; ClaimedBy and AssignedCourier also match the prior
// participants recorded on a canceled donation. IncludeAvailable additionally
// matches every Pending donation, which is how an organization sees both its
// own claims and what it can claim.
type DonationFilter struct {
	DonorID          *kernel.UUID
	ClaimedBy        *kernel.UUID
	AssignedCourier  *kernel.UUID
	IncludeAvailable bool
	Statuses         []donation.Status
	Limit            int
	Offset           int
}

// DonationReader serves read-side queries. Results are ordered newest first.
type DonationReader interface {
	List(ctx context.Context, filter DonationFilter) ([]*donation.Donation, error)
	CountByStatus(ctx context.Context) (map[donation.Status]int64, error)
}

// DonationStore is implemented by every storage adapter.
type DonationStore interface {
	DonationRepository
	DonationReader
}
