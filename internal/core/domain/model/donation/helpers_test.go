package donation_test

import (
	"testing"
	"time"

	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func validDetails() donation.Details {
	return donation.Details{
		FoodType: donation.FoodProduce,
		FoodName: "Fresh vegetables",
		Quantity: 5,
		Unit:     donation.UnitKilogram,
		Items: []donation.Item{
			{ID: "item1", Name: "Carrots", Quantity: "1 kg"},
			{ID: "item2", Name: "Tomatoes", Quantity: "2 kg"},
		},
		Pickup: donation.Pickup{
			Address:      "12 Market Street",
			ContactName:  "Ana",
			ContactPhone: "+1 (555) 010-0199",
		},
	}
}

func mustActor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return actor
}

func actorWithID(t *testing.T, id kernel.UUID, role kernel.Role) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(id, role)
	require.NoError(t, err)
	return actor
}

func newPending(t *testing.T, donorID kernel.UUID) *donation.Donation {
	t.Helper()
	d, err := donation.NewDonation(kernel.NewUUID(), donorID, validDetails(), testNow.Add(6*time.Hour), testNow)
	require.NoError(t, err)
	return d
}

func pickupVerification(courierID kernel.UUID) donation.PickupVerification {
	return donation.PickupVerification{
		CheckedItems: []string{"item1", "item2"},
		Quality:      donation.QualityChecks{GoodCondition: true, PackagingIntact: true, TemperatureOK: true},
		PhotoRef:     "photos/pickup.jpg",
		VerifiedBy:   courierID,
		VerifiedAt:   testNow,
	}
}

func deliveryVerification(courierID kernel.UUID) donation.DeliveryVerification {
	return donation.DeliveryVerification{
		Handover:   donation.HandoverChecklist{ItemsHandedOver: true, ConditionVerified: true, TemperatureMaintained: true},
		PhotoRef:   "photos/handover.jpg",
		Rating:     5,
		VerifiedBy: courierID,
		VerifiedAt: testNow,
	}
}
