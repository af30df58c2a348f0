// Package issuerepo persists courier issue reports in PostgreSQL through GORM.
package issuerepo

import (
	"time"

	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// IssueDTO is the row layout of the donation_issues table. ID is a ULID, so
// ordering by it follows report time.
type IssueDTO struct {
	ID          string    `gorm:"type:char(26);primaryKey"`
	DonationID  uuid.UUID `gorm:"type:uuid;index;not null"`
	CourierID   uuid.UUID `gorm:"type:uuid;not null"`
	Description string    `gorm:"type:text;not null"`
	ReportedAt  time.Time `gorm:"not null"`
}

func (IssueDTO) TableName() string {
	return "donation_issues"
}

func fromDomain(report donation.IssueReport) IssueDTO {
	return IssueDTO{
		ID:          report.ID,
		DonationID:  report.DonationID.Bytes(),
		CourierID:   report.CourierID.Bytes(),
		Description: report.Description,
		ReportedAt:  report.ReportedAt,
	}
}

func toDomain(dto IssueDTO) (donation.IssueReport, error) {
	donationID, err := kernel.UUIDFromBytes(dto.DonationID[:])
	if err != nil {
		return donation.IssueReport{}, err
	}
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return donation.IssueReport{}, err
	}
	return donation.NewIssueReport(dto.ID, donationID, courierID, dto.Description, dto.ReportedAt)
}
