package http

import (
	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/generated/servers"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func toDomainDetails(in servers.DonationDetails) donation.Details {
	details := donation.Details{
		FoodType:            donation.FoodType(in.FoodType),
		FoodName:            in.FoodName,
		Quantity:            in.Quantity,
		Unit:                donation.Unit(in.Unit),
		Items:               make([]donation.Item, 0, len(in.Items)),
		PreparedAt:          in.PreparedAt,
		SpecialInstructions: deref(in.SpecialInstructions),
		Pickup: donation.Pickup{
			Address:      in.Pickup.Address,
			ContactName:  in.Pickup.ContactName,
			ContactPhone: in.Pickup.ContactPhone,
			WindowStart:  in.Pickup.WindowStart,
			WindowEnd:    in.Pickup.WindowEnd,
			Instructions: deref(in.Pickup.Instructions),
		},
	}
	for _, item := range in.Items {
		details.Items = append(details.Items, donation.Item{
			ID:       item.Id,
			Name:     item.Name,
			Quantity: deref(item.Quantity),
		})
	}
	return details
}

func toDonationResponse(d *donation.Donation) servers.Donation {
	s := d.Snapshot()

	response := servers.Donation{
		Id:              s.ID.Bytes(),
		DonorId:         s.DonorID.Bytes(),
		Status:          servers.DonationStatus(s.Status.String()),
		Details:         toDetailsResponse(s.Details),
		ClaimedBy:       optionalID(s.ClaimedBy),
		AssignedCourier: optionalID(s.AssignedCourier),
		ExpiresAt:       s.ExpiresAt,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
		Version:         s.Version,
	}

	if v := s.PickupVerification; v != nil {
		response.PickupVerification = &servers.PickupVerification{
			CheckedItems: v.CheckedItems,
			Quality: servers.QualityChecks{
				GoodCondition:   v.Quality.GoodCondition,
				PackagingIntact: v.Quality.PackagingIntact,
				TemperatureOk:   v.Quality.TemperatureOK,
			},
			PhotoRef:   v.PhotoRef,
			VerifiedBy: v.VerifiedBy.Bytes(),
			VerifiedAt: v.VerifiedAt,
		}
	}
	if v := s.DeliveryVerification; v != nil {
		response.DeliveryVerification = &servers.DeliveryVerification{
			Handover: servers.HandoverChecklist{
				ItemsHandedOver:       v.Handover.ItemsHandedOver,
				ConditionVerified:     v.Handover.ConditionVerified,
				TemperatureMaintained: v.Handover.TemperatureMaintained,
			},
			PhotoRef:   v.PhotoRef,
			Rating:     v.Rating,
			Comment:    optionalString(v.Comment),
			VerifiedBy: v.VerifiedBy.Bytes(),
			VerifiedAt: v.VerifiedAt,
		}
	}
	if c := s.Cancellation; c != nil {
		response.Cancellation = &servers.Cancellation{
			By:            optionalID(c.By),
			Role:          c.Role.String(),
			Reason:        c.Reason,
			At:            c.At,
			PriorClaimant: optionalID(c.PriorClaimant),
			PriorCourier:  optionalID(c.PriorCourier),
		}
	}

	return response
}

func toDetailsResponse(d donation.Details) servers.DonationDetails {
	details := servers.DonationDetails{
		FoodType:            string(d.FoodType),
		FoodName:            d.FoodName,
		Quantity:            d.Quantity,
		Unit:                string(d.Unit),
		Items:               make([]servers.Item, 0, len(d.Items)),
		PreparedAt:          d.PreparedAt,
		SpecialInstructions: optionalString(d.SpecialInstructions),
		Pickup: servers.PickupDetails{
			Address:      d.Pickup.Address,
			ContactName:  d.Pickup.ContactName,
			ContactPhone: d.Pickup.ContactPhone,
			WindowStart:  d.Pickup.WindowStart,
			WindowEnd:    d.Pickup.WindowEnd,
			Instructions: optionalString(d.Pickup.Instructions),
		},
	}
	for _, item := range d.Items {
		details.Items = append(details.Items, servers.Item{
			Id:       item.ID,
			Name:     item.Name,
			Quantity: optionalString(item.Quantity),
		})
	}
	return details
}

func toIssueResponse(report donation.IssueReport) servers.Issue {
	return servers.Issue{
		Id:          report.ID,
		DonationId:  report.DonationID.Bytes(),
		CourierId:   report.CourierID.Bytes(),
		Description: report.Description,
		ReportedAt:  report.ReportedAt,
	}
}

func optionalID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
