// Package donationrepo persists the donation aggregate in PostgreSQL through GORM.
//
// Identity, status and the participant columns are plain indexed columns so
// that role views can be queried. Details, verification records and the
// cancellation are written once and only read back whole, so they live in
// jsonb columns.
package donationrepo

import (
	"errors"
	"time"

	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DonationDTO is the row layout of the donations table.
type DonationDTO struct {
	ID                   uuid.UUID                `gorm:"type:uuid;primaryKey"`
	DonorID              uuid.UUID                `gorm:"type:uuid;index;not null"`
	Status               int                      `gorm:"index;not null"`
	ClaimedBy            *uuid.UUID               `gorm:"type:uuid;index"`
	AssignedCourier      *uuid.UUID               `gorm:"type:uuid;index"`
	Details              DetailsDTO               `gorm:"type:jsonb;serializer:json;not null"`
	PickupVerification   *PickupVerificationDTO   `gorm:"type:jsonb;serializer:json"`
	DeliveryVerification *DeliveryVerificationDTO `gorm:"type:jsonb;serializer:json"`
	Cancellation         *CancellationDTO         `gorm:"type:jsonb;serializer:json"`
	ExpiresAt            time.Time                `gorm:"not null"`
	CreatedAt            time.Time                `gorm:"index;not null;autoCreateTime:false"`
	UpdatedAt            time.Time                `gorm:"not null;autoUpdateTime:false"`
	Version              int64                    `gorm:"not null"`
}

func (DonationDTO) TableName() string {
	return "donations"
}

type DetailsDTO struct {
	FoodType            string     `json:"foodType"`
	FoodName            string     `json:"foodName"`
	Quantity            float64    `json:"quantity"`
	Unit                string     `json:"unit"`
	Items               []ItemDTO  `json:"items"`
	PreparedAt          *time.Time `json:"preparedAt,omitempty"`
	Pickup              PickupDTO  `json:"pickup"`
	SpecialInstructions string     `json:"specialInstructions,omitempty"`
}

type ItemDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
}

type PickupDTO struct {
	Address      string     `json:"address"`
	ContactName  string     `json:"contactName"`
	ContactPhone string     `json:"contactPhone"`
	WindowStart  *time.Time `json:"windowStart,omitempty"`
	WindowEnd    *time.Time `json:"windowEnd,omitempty"`
	Instructions string     `json:"instructions,omitempty"`
}

type PickupVerificationDTO struct {
	CheckedItems    []string  `json:"checkedItems"`
	GoodCondition   bool      `json:"goodCondition"`
	PackagingIntact bool      `json:"packagingIntact"`
	TemperatureOK   bool      `json:"temperatureOk"`
	PhotoRef        string    `json:"photoRef"`
	VerifiedBy      uuid.UUID `json:"verifiedBy"`
	VerifiedAt      time.Time `json:"verifiedAt"`
}

type DeliveryVerificationDTO struct {
	ItemsHandedOver       bool      `json:"itemsHandedOver"`
	ConditionVerified     bool      `json:"conditionVerified"`
	TemperatureMaintained bool      `json:"temperatureMaintained"`
	PhotoRef              string    `json:"photoRef"`
	Rating                int       `json:"rating"`
	Comment               string    `json:"comment,omitempty"`
	VerifiedBy            uuid.UUID `json:"verifiedBy"`
	VerifiedAt            time.Time `json:"verifiedAt"`
}

// CancellationDTO keeps By empty for donations that lapsed. The prior
// participant keys are matched by List.
type CancellationDTO struct {
	By            *uuid.UUID `json:"by,omitempty"`
	Role          int        `json:"role"`
	Reason        string     `json:"reason"`
	At            time.Time  `json:"at"`
	PriorClaimant *uuid.UUID `json:"prior_claimant,omitempty"`
	PriorCourier  *uuid.UUID `json:"prior_courier,omitempty"`
}

// fromDomain maps the aggregate to its row through its snapshot.
func fromDomain(d *donation.Donation) DonationDTO {
	s := d.Snapshot()

	dto := DonationDTO{
		ID:              s.ID.Bytes(),
		DonorID:         s.DonorID.Bytes(),
		Status:          int(s.Status),
		ClaimedBy:       toRawUUID(s.ClaimedBy),
		AssignedCourier: toRawUUID(s.AssignedCourier),
		Details:         fromDetails(s.Details),
		ExpiresAt:       s.ExpiresAt,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
		Version:         s.Version,
	}

	if v := s.PickupVerification; v != nil {
		dto.PickupVerification = &PickupVerificationDTO{
			CheckedItems:    v.CheckedItems,
			GoodCondition:   v.Quality.GoodCondition,
			PackagingIntact: v.Quality.PackagingIntact,
			TemperatureOK:   v.Quality.TemperatureOK,
			PhotoRef:        v.PhotoRef,
			VerifiedBy:      v.VerifiedBy.Bytes(),
			VerifiedAt:      v.VerifiedAt,
		}
	}

	if v := s.DeliveryVerification; v != nil {
		dto.DeliveryVerification = &DeliveryVerificationDTO{
			ItemsHandedOver:       v.Handover.ItemsHandedOver,
			ConditionVerified:     v.Handover.ConditionVerified,
			TemperatureMaintained: v.Handover.TemperatureMaintained,
			PhotoRef:              v.PhotoRef,
			Rating:                v.Rating,
			Comment:               v.Comment,
			VerifiedBy:            v.VerifiedBy.Bytes(),
			VerifiedAt:            v.VerifiedAt,
		}
	}

	if c := s.Cancellation; c != nil {
		dto.Cancellation = &CancellationDTO{
			By:            toRawUUID(c.By),
			Role:          int(c.Role),
			Reason:        c.Reason,
			At:            c.At,
			PriorClaimant: toRawUUID(c.PriorClaimant),
			PriorCourier:  toRawUUID(c.PriorCourier),
		}
	}

	return dto
}

func fromDetails(d donation.Details) DetailsDTO {
	items := make([]ItemDTO, 0, len(d.Items))
	for _, item := range d.Items {
		items = append(items, ItemDTO(item))
	}

	return DetailsDTO{
		FoodType:            string(d.FoodType),
		FoodName:            d.FoodName,
		Quantity:            d.Quantity,
		Unit:                string(d.Unit),
		Items:               items,
		PreparedAt:          d.PreparedAt,
		Pickup:              PickupDTO(d.Pickup),
		SpecialInstructions: d.SpecialInstructions,
	}
}

// toDomain rebuilds the aggregate with RestoreDonation, which rejects rows that
// break a lifecycle invariant.
func toDomain(dto DonationDTO) (*donation.Donation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	donorID, err := kernel.UUIDFromBytes(dto.DonorID[:])
	if err != nil {
		return nil, err
	}
	claimedBy, err := fromRawUUID(dto.ClaimedBy)
	if err != nil {
		return nil, err
	}
	assignedCourier, err := fromRawUUID(dto.AssignedCourier)
	if err != nil {
		return nil, err
	}

	s := donation.Snapshot{
		ID:              id,
		DonorID:         donorID,
		Details:         toDetails(dto.Details),
		Status:          donation.Status(dto.Status),
		ClaimedBy:       claimedBy,
		AssignedCourier: assignedCourier,
		ExpiresAt:       dto.ExpiresAt,
		CreatedAt:       dto.CreatedAt,
		UpdatedAt:       dto.UpdatedAt,
		Version:         dto.Version,
	}

	if v := dto.PickupVerification; v != nil {
		verifiedBy, err := kernel.UUIDFromBytes(v.VerifiedBy[:])
		if err != nil {
			return nil, err
		}
		s.PickupVerification = &donation.PickupVerification{
			CheckedItems: v.CheckedItems,
			Quality: donation.QualityChecks{
				GoodCondition:   v.GoodCondition,
				PackagingIntact: v.PackagingIntact,
				TemperatureOK:   v.TemperatureOK,
			},
			PhotoRef:   v.PhotoRef,
			VerifiedBy: verifiedBy,
			VerifiedAt: v.VerifiedAt,
		}
	}

	if v := dto.DeliveryVerification; v != nil {
		verifiedBy, err := kernel.UUIDFromBytes(v.VerifiedBy[:])
		if err != nil {
			return nil, err
		}
		s.DeliveryVerification = &donation.DeliveryVerification{
			Handover: donation.HandoverChecklist{
				ItemsHandedOver:       v.ItemsHandedOver,
				ConditionVerified:     v.ConditionVerified,
				TemperatureMaintained: v.TemperatureMaintained,
			},
			PhotoRef:   v.PhotoRef,
			Rating:     v.Rating,
			Comment:    v.Comment,
			VerifiedBy: verifiedBy,
			VerifiedAt: v.VerifiedAt,
		}
	}

	if c := dto.Cancellation; c != nil {
		by, byErr := fromRawUUID(c.By)
		claimant, claimantErr := fromRawUUID(c.PriorClaimant)
		courier, courierErr := fromRawUUID(c.PriorCourier)
		if err := errors.Join(byErr, claimantErr, courierErr); err != nil {
			return nil, err
		}
		s.Cancellation = &donation.Cancellation{
			By:            by,
			Role:          kernel.Role(c.Role),
			Reason:        c.Reason,
			At:            c.At,
			PriorClaimant: claimant,
			PriorCourier:  courier,
		}
	}

	return donation.RestoreDonation(s)
}

func toDetails(dto DetailsDTO) donation.Details {
	items := make([]donation.Item, 0, len(dto.Items))
	for _, item := range dto.Items {
		items = append(items, donation.Item(item))
	}

	return donation.Details{
		FoodType:            donation.FoodType(dto.FoodType),
		FoodName:            dto.FoodName,
		Quantity:            dto.Quantity,
		Unit:                donation.Unit(dto.Unit),
		Items:               items,
		PreparedAt:          dto.PreparedAt,
		Pickup:              donation.Pickup(dto.Pickup),
		SpecialInstructions: dto.SpecialInstructions,
	}
}

func toRawUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func fromRawUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
