package mongostore

import (
	"testing"
	"time"

	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

var createdAt = time.Date(2026, 7, 3, 9, 30, 0, 0, time.UTC)

func canceledDonation(t *testing.T) *donation.Donation {
	t.Helper()
	d, err := donation.NewDonation(kernel.NewUUID(), kernel.NewUUID(), donation.Details{
		FoodType: donation.FoodPackaged,
		FoodName: "Cereal boxes",
		Quantity: 30,
		Unit:     donation.UnitBoxes,
		Items:    []donation.Item{{ID: "cereal", Name: "Oat cereal"}},
		Pickup: donation.Pickup{
			Address:      "9 Warehouse Row",
			ContactName:  "Lee",
			ContactPhone: "(555) 010-2030",
		},
	}, createdAt.Add(time.Hour), createdAt)
	require.NoError(t, err)

	ngo, err := kernel.NewActor(kernel.NewUUID(), kernel.NGO)
	require.NoError(t, err)
	require.NoError(t, d.Claim(ngo, createdAt))
	require.NoError(t, d.Cancel(ngo, "truck broke down", createdAt.Add(time.Minute)))
	return d
}

func TestDocumentMapping_KeepsCancellationAndPriorClaimant(t *testing.T) {
	d := canceledDonation(t)

	doc := toDocument(d)
	assert.Nil(t, doc.ClaimedBy)
	assert.Nil(t, doc.AssignedCourier)
	require.NotNil(t, doc.Cancellation)
	assert.Equal(t, int(kernel.NGO), doc.Cancellation.Role)
	require.NotNil(t, doc.Cancellation.PriorClaimant)
	assert.Equal(t, d.Cancellation().PriorClaimant.String(), *doc.Cancellation.PriorClaimant)
	assert.Nil(t, doc.Cancellation.PriorCourier)

	restored, err := fromDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, d.Snapshot(), restored.Snapshot())
}

func TestDocumentMapping_RejectsBrokenIdentifiers(t *testing.T) {
	doc := toDocument(canceledDonation(t))
	doc.DonorID = "not-a-uuid"

	_, err := fromDocument(doc)

	require.Error(t, err)
}

func TestBuildFilter(t *testing.T) {
	ngo := kernel.NewUUID()

	t.Run("no filter", func(t *testing.T) {
		assert.Equal(t, bson.M{}, buildFilter(ports.DonationFilter{}))
	})

	t.Run("organization view", func(t *testing.T) {
		got := buildFilter(ports.DonationFilter{
			ClaimedBy:        &ngo,
			IncludeAvailable: true,
			Statuses:         []donation.Status{donation.Pending, donation.Claimed},
		})

		assert.Equal(t, bson.M{
			"status": bson.M{"$in": []int{int(donation.Pending), int(donation.Claimed)}},
			"$or": bson.A{
				bson.M{"status": int(donation.Pending)},
				bson.M{"$and": bson.A{
					bson.M{"$or": bson.A{
						bson.M{"claimed_by": ngo.String()},
						bson.M{"cancellation.prior_claimant": ngo.String()},
					}},
				}},
			},
		}, got)
	})

	t.Run("courier view includes canceled assignments", func(t *testing.T) {
		got := buildFilter(ports.DonationFilter{AssignedCourier: &ngo})

		assert.Equal(t, bson.M{"$and": bson.A{
			bson.M{"$or": bson.A{
				bson.M{"assigned_courier": ngo.String()},
				bson.M{"cancellation.prior_courier": ngo.String()},
			}},
		}}, got)
	})
}
