package queries_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"connectfood/internal/adapters/out/memory"
	"connectfood/internal/core/application/arbiter"
	"connectfood/internal/core/application/usecases/queries"
	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/core/ports"
	"connectfood/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var baseNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

type MockExpiryAnnouncer struct{ mock.Mock }

func (m *MockExpiryAnnouncer) Transitioned(
	ctx context.Context,
	res arbiter.Result,
	event donation.Event,
	actor kernel.Actor,
	reason string,
) {
	m.Called(ctx, res, event, actor, reason)
}

type MockStatusCounter struct{ mock.Mock }

func (m *MockStatusCounter) CountByStatus(ctx context.Context) (map[donation.Status]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[donation.Status]int64), args.Error(1)
}

type QueriesSuite struct {
	suite.Suite
	ctx       context.Context
	store     *memory.DonationStore
	issues    *memory.IssueStore
	announcer *MockExpiryAnnouncer
	now       time.Time

	get        queries.GetDonationQueryHandler
	list       queries.ListDonationsQueryHandler
	listIssues queries.ListIssuesQueryHandler

	donor   kernel.Actor
	ngo     kernel.Actor
	other   kernel.Actor
	courier kernel.Actor
}

func TestQueriesSuite(t *testing.T) {
	suite.Run(t, new(QueriesSuite))
}

func (s *QueriesSuite) SetupTest() {
	s.ctx = s.T().Context()
	s.store = memory.NewDonationStore()
	s.issues = memory.NewIssueStore()
	s.announcer = new(MockExpiryAnnouncer)
	s.announcer.On("Transitioned", mock.Anything, mock.Anything, donation.Cancel, mock.Anything, "").Return()
	s.now = baseNow

	clock := ports.ClockFunc(func() time.Time { return s.now })
	arb, err := arbiter.New(s.store, clock)
	s.Require().NoError(err)

	s.get = queries.NewGetDonationQueryHandler(arb, s.announcer)
	s.list = queries.NewListDonationsQueryHandler(s.store, arb, s.announcer, clock, slog.Default())
	s.listIssues = queries.NewListIssuesQueryHandler(s.store, s.issues)

	s.donor = s.actor(kernel.Donor)
	s.ngo = s.actor(kernel.NGO)
	s.other = s.actor(kernel.NGO)
	s.courier = s.actor(kernel.Courier)
}

func (s *QueriesSuite) actor(role kernel.Role) kernel.Actor {
	actor, err := kernel.NewActor(kernel.NewUUID(), role)
	s.Require().NoError(err)
	return actor
}

// seed stores a donation published by s.donor at createdAt, optionally claimed
// by s.ngo and assigned to s.courier.
func (s *QueriesSuite) seed(createdAt time.Time, expiresIn time.Duration, claim, assign bool) *donation.Donation {
	d, err := donation.NewDonation(kernel.NewUUID(), s.donor.ID(), donation.Details{
		FoodType: donation.FoodDairy,
		FoodName: "Yoghurt pots",
		Quantity: 40,
		Unit:     donation.UnitItems,
		Items:    []donation.Item{{ID: "yoghurt", Name: "Plain yoghurt"}},
		Pickup: donation.Pickup{
			Address:      "3 Dairy Close",
			ContactName:  "Ivo",
			ContactPhone: "555 123 4567 8",
		},
	}, createdAt.Add(expiresIn), createdAt)
	s.Require().NoError(err)
	if claim {
		s.Require().NoError(d.Claim(s.ngo, createdAt))
	}
	if assign {
		s.Require().NoError(d.AssignCourier(s.ngo, s.courier.ID(), createdAt))
	}
	s.Require().NoError(s.store.Add(s.ctx, d))
	return d
}

func (s *QueriesSuite) listFor(actor kernel.Actor, statuses ...donation.Status) []*donation.Donation {
	query, err := queries.NewListDonationsQuery(actor, statuses, 0, 0)
	s.Require().NoError(err)
	result, err := s.list.Handle(s.ctx, query)
	s.Require().NoError(err)
	return result
}

func ids(list []*donation.Donation) []kernel.UUID {
	out := make([]kernel.UUID, 0, len(list))
	for _, d := range list {
		out = append(out, d.ID())
	}
	return out
}

func (s *QueriesSuite) TestRoleViews() {
	pending := s.seed(baseNow.Add(-3*time.Minute), time.Hour, false, false)
	claimed := s.seed(baseNow.Add(-2*time.Minute), time.Hour, true, false)
	assigned := s.seed(baseNow.Add(-time.Minute), time.Hour, true, true)

	s.Equal([]kernel.UUID{assigned.ID(), claimed.ID(), pending.ID()}, ids(s.listFor(s.donor)))
	s.Equal([]kernel.UUID{assigned.ID(), claimed.ID(), pending.ID()}, ids(s.listFor(s.ngo)))
	s.Equal([]kernel.UUID{pending.ID()}, ids(s.listFor(s.other)))
	s.Equal([]kernel.UUID{assigned.ID()}, ids(s.listFor(s.courier)))
	s.Empty(s.listFor(s.actor(kernel.Donor)))

	s.Equal([]kernel.UUID{claimed.ID()}, ids(s.listFor(s.ngo, donation.Claimed)))
}

func (s *QueriesSuite) TestListExpiresLapsedDonations() {
	lapsed := s.seed(baseNow.Add(-2*time.Hour), time.Hour, false, false)
	fresh := s.seed(baseNow.Add(-time.Minute), time.Hour, false, false)

	s.Equal([]kernel.UUID{fresh.ID()}, ids(s.listFor(s.other)), "expired donations are no longer available")

	stored, err := s.store.Get(s.ctx, lapsed.ID())
	s.Require().NoError(err)
	s.Equal(donation.Canceled, stored.Status())
	s.announcer.AssertCalled(s.T(), "Transitioned", mock.Anything,
		mock.MatchedBy(func(res arbiter.Result) bool { return res.Expired }), donation.Cancel, s.other, "")

	s.Len(s.listFor(s.donor), 2, "the donor still sees its canceled donation")
}

func (s *QueriesSuite) TestGetDonation() {
	claimed := s.seed(baseNow.Add(-time.Minute), time.Hour, true, false)

	query, err := queries.NewGetDonationQuery(s.ngo, claimed.ID())
	s.Require().NoError(err)
	d, err := s.get.Handle(s.ctx, query)
	s.Require().NoError(err)
	s.Equal(claimed.Snapshot(), d.Snapshot())

	query, err = queries.NewGetDonationQuery(s.other, claimed.ID())
	s.Require().NoError(err)
	_, err = s.get.Handle(s.ctx, query)
	s.Require().ErrorIs(err, errs.ErrUnauthorized)

	query, err = queries.NewGetDonationQuery(s.ngo, kernel.NewUUID())
	s.Require().NoError(err)
	_, err = s.get.Handle(s.ctx, query)
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *QueriesSuite) TestGetDonationCommitsExpiry() {
	d := s.seed(baseNow.Add(-2*time.Hour), time.Hour, false, false)

	query, err := queries.NewGetDonationQuery(s.other, d.ID())
	s.Require().NoError(err)
	got, err := s.get.Handle(s.ctx, query)

	s.Require().NoError(err)
	s.Equal(donation.Canceled, got.Status())
	s.Equal(int64(1), got.Version())
	s.Equal(donation.ExpiredReason, got.Cancellation().Reason)
}

func (s *QueriesSuite) TestListIssues() {
	d := s.seed(baseNow.Add(-time.Minute), time.Hour, true, true)
	report, err := donation.NewIssueReport("01HV0000000000000000000001", d.ID(), s.courier.ID(), "road closed", baseNow)
	s.Require().NoError(err)
	s.Require().NoError(s.issues.Add(s.ctx, report))

	for _, actor := range []kernel.Actor{s.donor, s.ngo, s.courier} {
		query, err := queries.NewListIssuesQuery(actor, d.ID())
		s.Require().NoError(err)
		reports, err := s.listIssues.Handle(s.ctx, query)
		s.Require().NoError(err)
		s.Equal([]donation.IssueReport{report}, reports)
	}

	query, err := queries.NewListIssuesQuery(s.other, d.ID())
	s.Require().NoError(err)
	_, err = s.listIssues.Handle(s.ctx, query)
	s.Require().ErrorIs(err, errs.ErrUnauthorized)
}

func TestNewListDonationsQuery(t *testing.T) {
	actor, err := kernel.NewActor(kernel.NewUUID(), kernel.NGO)
	require.NoError(t, err)

	t.Run("zero limit selects the default", func(t *testing.T) {
		query, err := queries.NewListDonationsQuery(actor, nil, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, queries.DefaultListLimit, query.Limit())
		require.NoError(t, query.Validate())
	})

	t.Run("reports every bad parameter", func(t *testing.T) {
		_, err := queries.NewListDonationsQuery(actor, []donation.Status{donation.Unknown}, 500, -1)
		require.ErrorIs(t, err, errs.ErrInvalidInput)
		assert.Equal(t, []string{"status", "limit", "offset"}, errs.ParamNames(err))
	})

	t.Run("anonymous caller", func(t *testing.T) {
		_, err := queries.NewListDonationsQuery(kernel.Actor{}, nil, 10, 0)
		require.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var query queries.ListDonationsQuery
		require.ErrorIs(t, query.Validate(), queries.ErrListDonationsQueryIsNotConstructed)
	})
}

func TestCountDonationsByStatusQueryHandler_FillsMissingStatuses(t *testing.T) {
	ctx := t.Context()
	counter := new(MockStatusCounter)
	counter.On("CountByStatus", ctx).
		Return(map[donation.Status]int64{donation.Pending: 3, donation.Delivered: 1}, nil).
		Once()

	handler := queries.NewCountDonationsByStatusQueryHandler(counter)
	counts, err := handler.Handle(ctx, queries.NewCountDonationsByStatusQuery())

	require.NoError(t, err)
	assert.Len(t, counts, len(donation.AllStatuses()))
	assert.Equal(t, int64(3), counts[donation.Pending])
	assert.Equal(t, int64(1), counts[donation.Delivered])
	assert.Zero(t, counts[donation.Claimed])
	counter.AssertExpectations(t)
}

func TestCountDonationsByStatusQueryHandler_StoreFailure(t *testing.T) {
	ctx := t.Context()
	counter := new(MockStatusCounter)
	counter.On("CountByStatus", ctx).Return(nil, errors.New("connection refused")).Once()

	_, err := queries.NewCountDonationsByStatusQueryHandler(counter).Handle(ctx, queries.NewCountDonationsByStatusQuery())

	require.EqualError(t, err, "connection refused")
}
