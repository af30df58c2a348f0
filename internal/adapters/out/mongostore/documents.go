package mongostore

import (
	"time"

	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"
)

// donationDocument stores identifiers as canonical UUID strings so that
// filters and sort order match the other stores.
type donationDocument struct {
	ID                   string                `bson:"_id"`
	DonorID              string                `bson:"donor_id"`
	Status               int                   `bson:"status"`
	ClaimedBy            *string               `bson:"claimed_by,omitempty"`
	AssignedCourier      *string               `bson:"assigned_courier,omitempty"`
	Details              detailsDocument       `bson:"details"`
	PickupVerification   *pickupDocument       `bson:"pickup_verification,omitempty"`
	DeliveryVerification *deliveryDocument     `bson:"delivery_verification,omitempty"`
	Cancellation         *cancellationDocument `bson:"cancellation,omitempty"`
	ExpiresAt            time.Time             `bson:"expires_at"`
	CreatedAt            time.Time             `bson:"created_at"`
	UpdatedAt            time.Time             `bson:"updated_at"`
	Version              int64                 `bson:"version"`
}

type detailsDocument struct {
	FoodType            string         `bson:"food_type"`
	FoodName            string         `bson:"food_name"`
	Quantity            float64        `bson:"quantity"`
	Unit                string         `bson:"unit"`
	Items               []itemDocument `bson:"items"`
	PreparedAt          *time.Time     `bson:"prepared_at,omitempty"`
	Pickup              pickupPlace    `bson:"pickup"`
	SpecialInstructions string         `bson:"special_instructions,omitempty"`
}

type itemDocument struct {
	ID       string `bson:"id"`
	Name     string `bson:"name"`
	Quantity string `bson:"quantity,omitempty"`
}

type pickupPlace struct {
	Address      string     `bson:"address"`
	ContactName  string     `bson:"contact_name"`
	ContactPhone string     `bson:"contact_phone"`
	WindowStart  *time.Time `bson:"window_start,omitempty"`
	WindowEnd    *time.Time `bson:"window_end,omitempty"`
	Instructions string     `bson:"instructions,omitempty"`
}

type pickupDocument struct {
	CheckedItems    []string  `bson:"checked_items"`
	GoodCondition   bool      `bson:"good_condition"`
	PackagingIntact bool      `bson:"packaging_intact"`
	TemperatureOK   bool      `bson:"temperature_ok"`
	PhotoRef        string    `bson:"photo_ref"`
	VerifiedBy      string    `bson:"verified_by"`
	VerifiedAt      time.Time `bson:"verified_at"`
}

type deliveryDocument struct {
	ItemsHandedOver       bool      `bson:"items_handed_over"`
	ConditionVerified     bool      `bson:"condition_verified"`
	TemperatureMaintained bool      `bson:"temperature_maintained"`
	PhotoRef              string    `bson:"photo_ref"`
	Rating                int       `bson:"rating"`
	Comment               string    `bson:"comment,omitempty"`
	VerifiedBy            string    `bson:"verified_by"`
	VerifiedAt            time.Time `bson:"verified_at"`
}

type cancellationDocument struct {
	By            *string   `bson:"by,omitempty"`
	Role          int       `bson:"role"`
	Reason        string    `bson:"reason"`
	At            time.Time `bson:"at"`
	PriorClaimant *string   `bson:"prior_claimant,omitempty"`
	PriorCourier  *string   `bson:"prior_courier,omitempty"`
}

type issueDocument struct {
	ID          string    `bson:"_id"`
	DonationID  string    `bson:"donation_id"`
	CourierID   string    `bson:"courier_id"`
	Description string    `bson:"description"`
	ReportedAt  time.Time `bson:"reported_at"`
}

func toDocument(d *donation.Donation) donationDocument {
	s := d.Snapshot()

	doc := donationDocument{
		ID:              s.ID.String(),
		DonorID:         s.DonorID.String(),
		Status:          int(s.Status),
		ClaimedBy:       idString(s.ClaimedBy),
		AssignedCourier: idString(s.AssignedCourier),
		ExpiresAt:       s.ExpiresAt,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
		Version:         s.Version,
	}

	doc.Details = detailsDocument{
		FoodType:            string(s.Details.FoodType),
		FoodName:            s.Details.FoodName,
		Quantity:            s.Details.Quantity,
		Unit:                string(s.Details.Unit),
		Items:               make([]itemDocument, 0, len(s.Details.Items)),
		PreparedAt:          s.Details.PreparedAt,
		Pickup:              pickupPlace(s.Details.Pickup),
		SpecialInstructions: s.Details.SpecialInstructions,
	}
	for _, item := range s.Details.Items {
		doc.Details.Items = append(doc.Details.Items, itemDocument(item))
	}

	if v := s.PickupVerification; v != nil {
		doc.PickupVerification = &pickupDocument{
			CheckedItems:    v.CheckedItems,
			GoodCondition:   v.Quality.GoodCondition,
			PackagingIntact: v.Quality.PackagingIntact,
			TemperatureOK:   v.Quality.TemperatureOK,
			PhotoRef:        v.PhotoRef,
			VerifiedBy:      v.VerifiedBy.String(),
			VerifiedAt:      v.VerifiedAt,
		}
	}
	if v := s.DeliveryVerification; v != nil {
		doc.DeliveryVerification = &deliveryDocument{
			ItemsHandedOver:       v.Handover.ItemsHandedOver,
			ConditionVerified:     v.Handover.ConditionVerified,
			TemperatureMaintained: v.Handover.TemperatureMaintained,
			PhotoRef:              v.PhotoRef,
			Rating:                v.Rating,
			Comment:               v.Comment,
			VerifiedBy:            v.VerifiedBy.String(),
			VerifiedAt:            v.VerifiedAt,
		}
	}
	if c := s.Cancellation; c != nil {
		doc.Cancellation = &cancellationDocument{
			By:            idString(c.By),
			Role:          int(c.Role),
			Reason:        c.Reason,
			At:            c.At,
			PriorClaimant: idString(c.PriorClaimant),
			PriorCourier:  idString(c.PriorCourier),
		}
	}

	return doc
}

func fromDocument(doc donationDocument) (*donation.Donation, error) {
	var p idParser
	s := donation.Snapshot{
		ID:              p.parse(doc.ID),
		DonorID:         p.parse(doc.DonorID),
		Status:          donation.Status(doc.Status),
		ClaimedBy:       p.parseOptional(doc.ClaimedBy),
		AssignedCourier: p.parseOptional(doc.AssignedCourier),
		ExpiresAt:       doc.ExpiresAt,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
		Version:         doc.Version,
	}

	s.Details = donation.Details{
		FoodType:            donation.FoodType(doc.Details.FoodType),
		FoodName:            doc.Details.FoodName,
		Quantity:            doc.Details.Quantity,
		Unit:                donation.Unit(doc.Details.Unit),
		Items:               make([]donation.Item, 0, len(doc.Details.Items)),
		PreparedAt:          utcPtr(doc.Details.PreparedAt),
		Pickup:              donation.Pickup(doc.Details.Pickup),
		SpecialInstructions: doc.Details.SpecialInstructions,
	}
	s.Details.Pickup.WindowStart = utcPtr(doc.Details.Pickup.WindowStart)
	s.Details.Pickup.WindowEnd = utcPtr(doc.Details.Pickup.WindowEnd)
	for _, item := range doc.Details.Items {
		s.Details.Items = append(s.Details.Items, donation.Item(item))
	}

	if v := doc.PickupVerification; v != nil {
		s.PickupVerification = &donation.PickupVerification{
			CheckedItems: v.CheckedItems,
			Quality: donation.QualityChecks{
				GoodCondition:   v.GoodCondition,
				PackagingIntact: v.PackagingIntact,
				TemperatureOK:   v.TemperatureOK,
			},
			PhotoRef:   v.PhotoRef,
			VerifiedBy: p.parse(v.VerifiedBy),
			VerifiedAt: v.VerifiedAt.UTC(),
		}
	}
	if v := doc.DeliveryVerification; v != nil {
		s.DeliveryVerification = &donation.DeliveryVerification{
			Handover: donation.HandoverChecklist{
				ItemsHandedOver:       v.ItemsHandedOver,
				ConditionVerified:     v.ConditionVerified,
				TemperatureMaintained: v.TemperatureMaintained,
			},
			PhotoRef:   v.PhotoRef,
			Rating:     v.Rating,
			Comment:    v.Comment,
			VerifiedBy: p.parse(v.VerifiedBy),
			VerifiedAt: v.VerifiedAt.UTC(),
		}
	}
	if c := doc.Cancellation; c != nil {
		s.Cancellation = &donation.Cancellation{
			By:            p.parseOptional(c.By),
			Role:          kernel.Role(c.Role),
			Reason:        c.Reason,
			At:            c.At.UTC(),
			PriorClaimant: p.parseOptional(c.PriorClaimant),
			PriorCourier:  p.parseOptional(c.PriorCourier),
		}
	}

	if p.err != nil {
		return nil, p.err
	}
	return donation.RestoreDonation(s)
}

func toIssueDocument(report donation.IssueReport) issueDocument {
	return issueDocument{
		ID:          report.ID,
		DonationID:  report.DonationID.String(),
		CourierID:   report.CourierID.String(),
		Description: report.Description,
		ReportedAt:  report.ReportedAt,
	}
}

func fromIssueDocument(doc issueDocument) (donation.IssueReport, error) {
	var p idParser
	donationID := p.parse(doc.DonationID)
	courierID := p.parse(doc.CourierID)
	if p.err != nil {
		return donation.IssueReport{}, p.err
	}
	return donation.NewIssueReport(doc.ID, donationID, courierID, doc.Description, doc.ReportedAt)
}

// idParser keeps the first parse failure so a document can be mapped in one pass.
type idParser struct {
	err error
}

func (p *idParser) parse(s string) kernel.UUID {
	id, err := kernel.UUIDFromString(s)
	if err != nil && p.err == nil {
		p.err = err
	}
	return id
}

func (p *idParser) parseOptional(s *string) *kernel.UUID {
	if s == nil {
		return nil
	}
	id := p.parse(*s)
	return &id
}

func idString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
