// Package memory provides in-process implementations of the storage ports.
// They back the "memory" store driver and the lifecycle property tests.
package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/core/ports"
	"connectfood/internal/pkg/errs"
)

var _ ports.DonationStore = (*DonationStore)(nil)

// DonationStore keeps donation snapshots in a map guarded by a mutex.
// CompareAndSet checks and writes under the same lock, so it is atomic.
type DonationStore struct {
	mu        sync.RWMutex
	donations map[string]donation.Snapshot
}

func NewDonationStore() *DonationStore {
	return &DonationStore{donations: make(map[string]donation.Snapshot)}
}

func (s *DonationStore) Add(ctx context.Context, d *donation.Donation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d == nil {
		return errs.NewValueIsRequiredError("donation")
	}
	if err := d.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := d.ID().String()
	if _, exists := s.donations[key]; exists {
		return errs.NewConflictError(fmt.Sprintf("donation %s already exists", key))
	}
	s.donations[key] = d.Snapshot()
	return nil
}

func (s *DonationStore) Get(ctx context.Context, id kernel.UUID) (*donation.Donation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	snapshot, ok := s.donations[id.String()]
	s.mu.RUnlock()

	if !ok {
		return nil, errs.NewObjectNotFoundError("donation", id)
	}
	return donation.RestoreDonation(snapshot)
}

func (s *DonationStore) CompareAndSet(ctx context.Context, expectedVersion int64, next *donation.Donation) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if next == nil {
		return false, errs.NewValueIsRequiredError("donation")
	}
	if err := next.Validate(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := next.ID().String()
	stored, ok := s.donations[key]
	if !ok {
		return false, errs.NewObjectNotFoundError("donation", next.ID())
	}
	if stored.Version != expectedVersion {
		return false, nil
	}
	s.donations[key] = next.Snapshot()
	return true, nil
}

func (s *DonationStore) List(ctx context.Context, filter ports.DonationFilter) ([]*donation.Donation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	matched := make([]donation.Snapshot, 0, len(s.donations))
	for _, snapshot := range s.donations {
		if matches(snapshot, filter) {
			matched = append(matched, snapshot)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(matched, func(a, b donation.Snapshot) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})

	matched = paginate(matched, filter.Offset, filter.Limit)

	result := make([]*donation.Donation, 0, len(matched))
	var restoreErrs []error
	for _, snapshot := range matched {
		d, err := donation.RestoreDonation(snapshot)
		if err != nil {
			restoreErrs = append(restoreErrs, err)
			continue
		}
		result = append(result, d)
	}
	return result, errors.Join(restoreErrs...)
}

func (s *DonationStore) CountByStatus(ctx context.Context) (map[donation.Status]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[donation.Status]int64)
	for _, snapshot := range s.donations {
		counts[snapshot.Status]++
	}
	return counts, nil
}

func matches(s donation.Snapshot, f ports.DonationFilter) bool {
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, s.Status) {
		return false
	}
	if f.IncludeAvailable && s.Status == donation.Pending {
		return true
	}
	if f.DonorID != nil && !s.DonorID.IsEqual(*f.DonorID) {
		return false
	}
	claimant, courier := s.ClaimedBy, s.AssignedCourier
	if c := s.Cancellation; c != nil {
		claimant, courier = c.PriorClaimant, c.PriorCourier
	}
	if f.ClaimedBy != nil && (claimant == nil || !claimant.IsEqual(*f.ClaimedBy)) {
		return false
	}
	if f.AssignedCourier != nil && (courier == nil || !courier.IsEqual(*f.AssignedCourier)) {
		return false
	}
	return true
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
