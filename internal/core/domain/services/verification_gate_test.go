package services_test

import (
	"strings"
	"testing"
	"time"

	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/core/domain/services"
	"connectfood/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	gateNow  = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	declared = []donation.Item{
		{ID: "item1", Name: "Rice"},
		{ID: "item2", Name: "Beans"},
		{ID: "item3", Name: "Bread"},
	}
)

func completePickup() services.PickupPayload {
	return services.PickupPayload{
		CheckedItems: []string{"item3", "item1", "item2"},
		Quality:      donation.QualityChecks{GoodCondition: true, PackagingIntact: true, TemperatureOK: true},
		PhotoRef:     "uploads/pickup/123.jpg",
	}
}

func completeDelivery() services.DeliveryPayload {
	return services.DeliveryPayload{
		Handover: donation.HandoverChecklist{ItemsHandedOver: true, ConditionVerified: true, TemperatureMaintained: true},
		PhotoRef: "uploads/delivery/123.jpg",
		Rating:   4,
		Comment:  "  all good  ",
	}
}

func incompleteFields(t *testing.T, err error) []string {
	t.Helper()
	require.ErrorIs(t, err, errs.ErrIncompleteVerification)

	var lifecycleErr *errs.LifecycleError
	require.ErrorAs(t, err, &lifecycleErr)
	return lifecycleErr.Fields
}

func TestVerificationGate_VerifyPickup(t *testing.T) {
	gate := services.NewVerificationGate()
	courierID := kernel.NewUUID()

	t.Run("complete payload passes", func(t *testing.T) {
		verification, err := gate.VerifyPickup(declared, completePickup(), courierID, gateNow)

		require.NoError(t, err)
		assert.Equal(t, []string{"item1", "item2", "item3"}, verification.CheckedItems)
		assert.Equal(t, "uploads/pickup/123.jpg", verification.PhotoRef)
		assert.True(t, verification.VerifiedBy.IsEqual(courierID))
		assert.Equal(t, gateNow, verification.VerifiedAt)
	})

	testCases := []struct {
		name   string
		mutate func(p *services.PickupPayload)
		fields []string
	}{
		{"unchecked item", func(p *services.PickupPayload) { p.CheckedItems = p.CheckedItems[:2] },
			[]string{"checkedItems"}},
		{"undeclared item", func(p *services.PickupPayload) { p.CheckedItems = append(p.CheckedItems, "item9") },
			[]string{"checkedItems"}},
		{"bad packaging", func(p *services.PickupPayload) { p.Quality.PackagingIntact = false },
			[]string{"quality.packagingIntact"}},
		{"blank photo", func(p *services.PickupPayload) { p.PhotoRef = "   " },
			[]string{"photoRef"}},
		{"photo with control characters", func(p *services.PickupPayload) { p.PhotoRef = "a\nb" },
			[]string{"photoRef"}},
		{"everything missing", func(p *services.PickupPayload) { *p = services.PickupPayload{} },
			[]string{"checkedItems", "quality.goodCondition", "quality.packagingIntact",
				"quality.temperatureOk", "photoRef"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			payload := completePickup()
			tc.mutate(&payload)

			_, err := gate.VerifyPickup(declared, payload, courierID, gateNow)

			assert.Equal(t, tc.fields, incompleteFields(t, err))
		})
	}

	t.Run("same payload gives same verdict", func(t *testing.T) {
		payload := completePickup()
		payload.Quality.TemperatureOK = false

		_, first := gate.VerifyPickup(declared, payload, courierID, gateNow)
		_, second := gate.VerifyPickup(declared, payload, courierID, gateNow.Add(time.Hour))

		assert.Equal(t, first.Error(), second.Error())
	})
}

func TestVerificationGate_VerifyDelivery(t *testing.T) {
	gate := services.NewVerificationGate()
	courierID := kernel.NewUUID()

	t.Run("complete payload passes", func(t *testing.T) {
		verification, err := gate.VerifyDelivery(completeDelivery(), courierID, gateNow)

		require.NoError(t, err)
		assert.Equal(t, 4, verification.Rating)
		assert.Equal(t, "all good", verification.Comment)
		assert.True(t, verification.VerifiedBy.IsEqual(courierID))
	})

	testCases := []struct {
		name   string
		mutate func(p *services.DeliveryPayload)
		fields []string
	}{
		{"rating too low", func(p *services.DeliveryPayload) { p.Rating = 0 }, []string{"rating"}},
		{"rating too high", func(p *services.DeliveryPayload) { p.Rating = 6 }, []string{"rating"}},
		{"items not handed over", func(p *services.DeliveryPayload) { p.Handover.ItemsHandedOver = false },
			[]string{"handover.itemsHandedOver"}},
		{"comment too long", func(p *services.DeliveryPayload) { p.Comment = strings.Repeat("x", 1001) },
			[]string{"comment"}},
		{"temperature and photo", func(p *services.DeliveryPayload) {
			p.Handover.TemperatureMaintained = false
			p.PhotoRef = ""
		}, []string{"handover.temperatureMaintained", "photoRef"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			payload := completeDelivery()
			tc.mutate(&payload)

			_, err := gate.VerifyDelivery(payload, courierID, gateNow)

			assert.Equal(t, tc.fields, incompleteFields(t, err))
		})
	}
}
