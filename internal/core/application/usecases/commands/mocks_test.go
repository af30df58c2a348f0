package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"connectfood/internal/core/application/arbiter"
	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

type MockArbiter struct{ mock.Mock }

func (m *MockArbiter) Apply(
	ctx context.Context,
	id kernel.UUID,
	event donation.Event,
	decide arbiter.Decide,
) (arbiter.Result, error) {
	args := m.Called(ctx, id, event, decide)
	return args.Get(0).(arbiter.Result), args.Error(1)
}

type MockAnnouncer struct{ mock.Mock }

func (m *MockAnnouncer) Created(ctx context.Context, d *donation.Donation, actor kernel.Actor) {
	m.Called(ctx, d, actor)
}

func (m *MockAnnouncer) Transitioned(
	ctx context.Context,
	res arbiter.Result,
	event donation.Event,
	actor kernel.Actor,
	reason string,
) {
	m.Called(ctx, res, event, actor, reason)
}

func (m *MockAnnouncer) IssueReported(
	ctx context.Context,
	d *donation.Donation,
	report donation.IssueReport,
	actor kernel.Actor,
) {
	m.Called(ctx, d, report, actor)
}

type MockDonationRepository struct{ mock.Mock }

func (m *MockDonationRepository) Add(ctx context.Context, d *donation.Donation) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDonationRepository) Get(ctx context.Context, id kernel.UUID) (*donation.Donation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*donation.Donation), args.Error(1)
}

type MockIssueRepository struct{ mock.Mock }

func (m *MockIssueRepository) Add(ctx context.Context, report donation.IssueReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

// recordingAnnouncer keeps every announced transition for property checks.
type recordingAnnouncer struct {
	mu      sync.Mutex
	created []*donation.Donation
	results []arbiter.Result
	events  []donation.Event
	issues  []donation.IssueReport
}

func (r *recordingAnnouncer) Created(_ context.Context, d *donation.Donation, _ kernel.Actor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, d)
}

func (r *recordingAnnouncer) Transitioned(
	_ context.Context,
	res arbiter.Result,
	event donation.Event,
	_ kernel.Actor,
	_ string,
) {
	if !res.Applied {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
	r.events = append(r.events, event)
}

func (r *recordingAnnouncer) IssueReported(
	_ context.Context,
	_ *donation.Donation,
	report donation.IssueReport,
	_ kernel.Actor,
) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.issues = append(r.issues, report)
}

func (r *recordingAnnouncer) transitions() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.results)
}

func newActor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return actor
}

func actorAs(t *testing.T, id kernel.UUID, role kernel.Role) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(id, role)
	require.NoError(t, err)
	return actor
}

func validDetails() donation.Details {
	return donation.Details{
		FoodType: donation.FoodPackaged,
		FoodName: "Canned soup",
		Quantity: 24,
		Unit:     donation.UnitItems,
		Items: []donation.Item{
			{ID: "soup-tomato", Name: "Tomato soup", Quantity: "12 cans"},
			{ID: "soup-lentil", Name: "Lentil soup", Quantity: "12 cans"},
		},
		Pickup: donation.Pickup{
			Address:      "99 Harbour Road",
			ContactName:  "Noor",
			ContactPhone: "+44 20 7946 0123",
		},
	}
}

func newPending(t *testing.T, donorID kernel.UUID, expiresAt time.Time) *donation.Donation {
	t.Helper()
	d, err := donation.NewDonation(kernel.NewUUID(), donorID, validDetails(), expiresAt, testNow)
	require.NoError(t, err)
	return d
}

func fixedClock(now time.Time) ports.Clock {
	return ports.ClockFunc(func() time.Time { return now })
}
