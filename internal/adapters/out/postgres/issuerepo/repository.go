package issuerepo

import (
	"context"
	"fmt"

	"connectfood/internal/adapters/out/postgres/pgerr"
	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/core/ports"
	"connectfood/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.IssueRepository = (*GormIssueRepository)(nil)

// GormIssueRepository implements ports.IssueRepository using GORM.
type GormIssueRepository struct {
	db *gorm.DB
}

func NewGormIssueRepository(db *gorm.DB) *GormIssueRepository {
	return &GormIssueRepository{db: db}
}

func (r *GormIssueRepository) Add(ctx context.Context, report donation.IssueReport) error {
	if report.ID == "" {
		return errs.NewValueIsRequiredError("id")
	}

	dto := fromDomain(report)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if _, dup := pgerr.IsUniqueViolation(err); dup {
			return errs.NewConflictError(fmt.Sprintf("issue %s already exists", report.ID))
		}
		return err
	}
	return nil
}

// ListByDonation returns the reports for a donation, oldest first.
func (r *GormIssueRepository) ListByDonation(ctx context.Context, donationID kernel.UUID) ([]donation.IssueReport, error) {
	var dtos []IssueDTO
	err := r.db.WithContext(ctx).
		Where("donation_id = ?", donationID.Bytes()).
		Order("reported_at").
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	reports := make([]donation.IssueReport, 0, len(dtos))
	for _, dto := range dtos {
		report, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}
