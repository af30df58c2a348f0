package services

import (
	"strings"
	"time"

	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/pkg/errs"
)

const (
	minRating           = 1
	maxRating           = 5
	maxCommentLength    = 1000
	maxPhotoRefLength   = 2048
	fieldCheckedItems   = "checkedItems"
	fieldPhotoRef       = "photoRef"
	fieldRating         = "rating"
	fieldComment        = "comment"
	fieldGoodCondition  = "quality.goodCondition"
	fieldPackaging      = "quality.packagingIntact"
	fieldTemperature    = "quality.temperatureOk"
	fieldHandedOver     = "handover.itemsHandedOver"
	fieldCondition      = "handover.conditionVerified"
	fieldTempMaintained = "handover.temperatureMaintained"
)

// PickupPayload is the evidence a courier submits with ConfirmPickup.
type PickupPayload struct {
	CheckedItems []string
	Quality      donation.QualityChecks
	PhotoRef     string
}

// DeliveryPayload is the evidence a courier submits with ConfirmDelivery.
type DeliveryPayload struct {
	Handover donation.HandoverChecklist
	PhotoRef string
	Rating   int
	Comment  string
}

// VerificationGate decides whether a courier's evidence is complete enough to
// let a pickup or a delivery be recorded.
//
// Business rules:
//   - Pickup: every declared item is checked, no undeclared item is checked,
//     all quality checks hold and a photo reference is present
//   - Delivery: every hand-over confirmation holds, a photo reference is present
//     and the rating is between 1 and 5
//
// Every missing or failed field is reported at once, in a stable order, through
// errs.ErrIncompleteVerification.
//
// Example usage:
//
//	gate := services.NewVerificationGate()
//	verification, err := gate.VerifyPickup(d.Details().Items, payload, courierID, now)
//	if errors.Is(err, errs.ErrIncompleteVerification) {
//	    // tell the courier what is missing
//	}
type VerificationGate struct{}

// NewVerificationGate creates a new VerificationGate.
func NewVerificationGate() VerificationGate {
	return VerificationGate{}
}

// VerifyPickup validates pickup evidence.
//
// Parameters:
//   - declared: the items published by the donor
//   - payload: what the courier submitted
//   - courierID: the courier performing the check
//   - now: the verification time
//
// Returns:
//   - donation.PickupVerification: the record to store on the donation
//   - error: *errs.LifecycleError with code incomplete_verification listing every failed field
func (VerificationGate) VerifyPickup(
	declared []donation.Item,
	payload PickupPayload,
	courierID kernel.UUID,
	now time.Time,
) (donation.PickupVerification, error) {
	var missing []string

	checked, itemsOK := checkItems(declared, payload.CheckedItems)
	if !itemsOK {
		missing = append(missing, fieldCheckedItems)
	}

	if !payload.Quality.GoodCondition {
		missing = append(missing, fieldGoodCondition)
	}
	if !payload.Quality.PackagingIntact {
		missing = append(missing, fieldPackaging)
	}
	if !payload.Quality.TemperatureOK {
		missing = append(missing, fieldTemperature)
	}

	photo, photoOK := checkPhotoRef(payload.PhotoRef)
	if !photoOK {
		missing = append(missing, fieldPhotoRef)
	}

	if len(missing) > 0 {
		return donation.PickupVerification{}, errs.NewIncompleteVerificationError(missing)
	}

	return donation.PickupVerification{
		CheckedItems: checked,
		Quality:      payload.Quality,
		PhotoRef:     photo,
		VerifiedBy:   courierID,
		VerifiedAt:   now.UTC(),
	}, nil
}

// VerifyDelivery validates drop-off evidence.
//
// Parameters:
//   - payload: what the courier submitted
//   - courierID: the courier performing the hand-over
//   - now: the verification time
//
// Returns:
//   - donation.DeliveryVerification: the record to store on the donation
//   - error: *errs.LifecycleError with code incomplete_verification listing every failed field
func (VerificationGate) VerifyDelivery(
	payload DeliveryPayload,
	courierID kernel.UUID,
	now time.Time,
) (donation.DeliveryVerification, error) {
	var missing []string

	if !payload.Handover.ItemsHandedOver {
		missing = append(missing, fieldHandedOver)
	}
	if !payload.Handover.ConditionVerified {
		missing = append(missing, fieldCondition)
	}
	if !payload.Handover.TemperatureMaintained {
		missing = append(missing, fieldTempMaintained)
	}

	photo, photoOK := checkPhotoRef(payload.PhotoRef)
	if !photoOK {
		missing = append(missing, fieldPhotoRef)
	}

	if payload.Rating < minRating || payload.Rating > maxRating {
		missing = append(missing, fieldRating)
	}

	comment := strings.TrimSpace(payload.Comment)
	if len(comment) > maxCommentLength {
		missing = append(missing, fieldComment)
	}

	if len(missing) > 0 {
		return donation.DeliveryVerification{}, errs.NewIncompleteVerificationError(missing)
	}

	return donation.DeliveryVerification{
		Handover:   payload.Handover,
		PhotoRef:   photo,
		Rating:     payload.Rating,
		Comment:    comment,
		VerifiedBy: courierID,
		VerifiedAt: now.UTC(),
	}, nil
}

// checkItems returns the checked IDs in declaration order and whether they
// cover exactly the declared set.
func checkItems(declared []donation.Item, checked []string) ([]string, bool) {
	submitted := make(map[string]struct{}, len(checked))
	for _, id := range checked {
		submitted[strings.TrimSpace(id)] = struct{}{}
	}

	ordered := make([]string, 0, len(declared))
	for _, item := range declared {
		if _, ok := submitted[item.ID]; !ok {
			return nil, false
		}
		ordered = append(ordered, item.ID)
		delete(submitted, item.ID)
	}

	return ordered, len(submitted) == 0 && len(declared) > 0
}

func checkPhotoRef(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" || len(ref) > maxPhotoRefLength || strings.ContainsFunc(ref, isControl) {
		return "", false
	}
	return ref, true
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f
}
