package donation

import (
	"time"

	"connectfood/internal/core/domain/model/kernel"
)

// QualityChecks are the courier's observations at pickup.
type QualityChecks struct {
	GoodCondition   bool
	PackagingIntact bool
	TemperatureOK   bool
}

// PickupVerification is the validated record written once, at ConfirmPickup.
type PickupVerification struct {
	CheckedItems []string
	Quality      QualityChecks
	PhotoRef     string
	VerifiedBy   kernel.UUID
	VerifiedAt   time.Time
}

// HandoverChecklist are the courier's confirmations at drop-off.
type HandoverChecklist struct {
	ItemsHandedOver       bool
	ConditionVerified     bool
	TemperatureMaintained bool
}

// DeliveryVerification is the validated record written once, at ConfirmDelivery.
type DeliveryVerification struct {
	Handover   HandoverChecklist
	PhotoRef   string
	Rating     int
	Comment    string
	VerifiedBy kernel.UUID
	VerifiedAt time.Time
}

// Cancellation records who withdrew a donation and why. By is nil when the
// donation lapsed past its expiry. PriorClaimant and PriorCourier keep the
// participants the donation had when it was canceled.
type Cancellation struct {
	By            *kernel.UUID
	Role          kernel.Role
	Reason        string
	At            time.Time
	PriorClaimant *kernel.UUID
	PriorCourier  *kernel.UUID
}

// ExpiredReason is the cancellation reason recorded for lapsed donations.
const ExpiredReason = "expired before delivery was arranged"

func (v *PickupVerification) clone() *PickupVerification {
	if v == nil {
		return nil
	}
	c := *v
	c.CheckedItems = append([]string(nil), v.CheckedItems...)
	return &c
}

func (v *DeliveryVerification) clone() *DeliveryVerification {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func (c *Cancellation) clone() *Cancellation {
	if c == nil {
		return nil
	}
	cc := *c
	cc.By = cloneUUID(c.By)
	cc.PriorClaimant = cloneUUID(c.PriorClaimant)
	cc.PriorCourier = cloneUUID(c.PriorCourier)
	return &cc
}
