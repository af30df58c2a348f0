package donationrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"connectfood/internal/adapters/out/postgres/pgerr"
	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/core/ports"
	"connectfood/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.DonationStore = (*GormDonationRepository)(nil)

// GormDonationRepository implements ports.DonationStore using GORM.
type GormDonationRepository struct {
	db *gorm.DB
}

// NewGormDonationRepository creates a new GORM donation repository.
func NewGormDonationRepository(db *gorm.DB) *GormDonationRepository {
	return &GormDonationRepository{db: db}
}

// Add inserts a new donation. A second insert of the same id is a conflict.
func (r *GormDonationRepository) Add(ctx context.Context, aggregate *donation.Donation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if _, dup := pgerr.IsUniqueViolation(err); dup {
			return errs.NewConflictError(fmt.Sprintf("donation %s already exists", aggregate.ID()))
		}
		return err
	}
	return nil
}

// Get retrieves a donation by ID.
func (r *GormDonationRepository) Get(ctx context.Context, id kernel.UUID) (*donation.Donation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DonationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("donation", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// CompareAndSet replaces the stored row with next in a single conditional
// UPDATE on (id, version). It returns false when the stored version is no
// longer expectedVersion.
func (r *GormDonationRepository) CompareAndSet(
	ctx context.Context,
	expectedVersion int64,
	next *donation.Donation,
) (bool, error) {
	if err := next.Validate(); err != nil {
		return false, err
	}

	dto := fromDomain(next)
	result := r.db.WithContext(ctx).
		Model(&DonationDTO{}).
		Where("id = ? AND version = ?", dto.ID, expectedVersion).
		Select("*").
		Omit("id", "donor_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 1 {
		return true, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&DonationDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, errs.NewObjectNotFoundError("donation", next.ID().String())
	}
	return false, nil
}

// List returns the donations matching filter, newest first. IncludeAvailable
// widens the participant filters with every pending donation.
func (r *GormDonationRepository) List(ctx context.Context, filter ports.DonationFilter) ([]*donation.Donation, error) {
	query := r.db.WithContext(ctx).Model(&DonationDTO{})

	if len(filter.Statuses) > 0 {
		statuses := make([]int, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, int(s))
		}
		query = query.Where("status IN ?", statuses)
	}

	var (
		conditions []string
		args       []any
	)
	if filter.DonorID != nil {
		conditions = append(conditions, "donor_id = ?")
		args = append(args, filter.DonorID.Bytes())
	}
	if filter.ClaimedBy != nil {
		conditions = append(conditions, "(claimed_by = ? OR cancellation->>'prior_claimant' = ?)")
		args = append(args, filter.ClaimedBy.Bytes(), filter.ClaimedBy.String())
	}
	if filter.AssignedCourier != nil {
		conditions = append(conditions, "(assigned_courier = ? OR cancellation->>'prior_courier' = ?)")
		args = append(args, filter.AssignedCourier.Bytes(), filter.AssignedCourier.String())
	}
	if len(conditions) > 0 {
		clause := strings.Join(conditions, " AND ")
		if filter.IncludeAvailable {
			clause = "status = ? OR (" + clause + ")"
			args = append([]any{int(donation.Pending)}, args...)
		}
		query = query.Where("("+clause+")", args...)
	}

	query = query.Order("created_at DESC").Order("id")
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var dtos []DonationDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	donations := make([]*donation.Donation, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, fmt.Errorf("donation %s: %w", dto.ID, err)
		}
		donations = append(donations, d)
	}
	return donations, nil
}

// CountByStatus returns how many donations are in each status. Statuses with
// no donations are absent from the map.
func (r *GormDonationRepository) CountByStatus(ctx context.Context) (map[donation.Status]int64, error) {
	var rows []struct {
		Status int
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&DonationDTO{}).
		Select("status, count(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[donation.Status]int64, len(rows))
	for _, row := range rows {
		counts[donation.Status(row.Status)] = row.Total
	}
	return counts, nil
}
