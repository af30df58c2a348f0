package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	httpin "connectfood/internal/adapters/in/http"
	"connectfood/internal/adapters/in/http/identity"
	"connectfood/internal/adapters/out/memory"
	"connectfood/internal/core/application/announce"
	"connectfood/internal/core/application/arbiter"
	"connectfood/internal/core/application/usecases/commands"
	"connectfood/internal/core/application/usecases/queries"
	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/core/domain/services"
	"connectfood/internal/core/ports"
	"connectfood/internal/generated/servers"
	"connectfood/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var openedAt = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []donation.LifecycleEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event donation.LifecycleEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Last() donation.LifecycleEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.events) == 0 {
		return donation.LifecycleEvent{}
	}
	return p.events[len(p.events)-1]
}

func (p *recordingPublisher) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

type ServerTestSuite struct {
	suite.Suite
	now       time.Time
	tokens    *identity.JWTProvider
	publisher *recordingPublisher
	healthErr error
	router    *echo.Echo

	donor   kernel.Actor
	ngo     kernel.Actor
	otherNG kernel.Actor
	courier kernel.Actor
}

func (suite *ServerTestSuite) SetupTest() {
	suite.now = openedAt
	suite.healthErr = nil
	clock := ports.ClockFunc(func() time.Time { return suite.now })

	store := memory.NewDonationStore()
	issues := memory.NewIssueStore()
	arb, err := arbiter.New(store, clock)
	suite.Require().NoError(err)

	suite.publisher = &recordingPublisher{}
	announcer, err := announce.New(suite.publisher, nil)
	suite.Require().NoError(err)
	gate := services.NewVerificationGate()

	server := httpin.NewServer(httpin.Handlers{
		CreateDonation:         commands.NewCreateDonationCommandHandler(store, announcer, clock),
		ClaimDonation:          commands.NewClaimDonationCommandHandler(arb, announcer),
		AssignCourier:          commands.NewAssignCourierCommandHandler(arb, announcer),
		ConfirmPickup:          commands.NewConfirmPickupCommandHandler(arb, announcer, gate),
		DepartForDropoff:       commands.NewDepartForDropoffCommandHandler(arb, announcer),
		ConfirmDelivery:        commands.NewConfirmDeliveryCommandHandler(arb, announcer, gate),
		CancelDonation:         commands.NewCancelDonationCommandHandler(arb, announcer),
		ReportIssue:            commands.NewReportIssueCommandHandler(store, issues, announcer, clock),
		GetDonation:            queries.NewGetDonationQueryHandler(arb, announcer),
		ListDonations:          queries.NewListDonationsQueryHandler(store, arb, announcer, clock, nil),
		ListIssues:             queries.NewListIssuesQueryHandler(store, issues),
		CountDonationsByStatus: queries.NewCountDonationsByStatusQueryHandler(store),
	}, nil)

	suite.tokens, err = identity.NewJWTProvider("server-test-secret",
		identity.WithClock(func() time.Time { return suite.now }))
	suite.Require().NoError(err)

	suite.router = httpin.NewRouter(httpin.RouterConfig{
		Server:   server,
		Identity: suite.tokens,
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("# metrics"))
		}),
		Health: func(context.Context) error { return suite.healthErr },
	})

	suite.donor = suite.actor(kernel.Donor)
	suite.ngo = suite.actor(kernel.NGO)
	suite.otherNG = suite.actor(kernel.NGO)
	suite.courier = suite.actor(kernel.Courier)
}

func (suite *ServerTestSuite) actor(role kernel.Role) kernel.Actor {
	a, err := kernel.NewActor(kernel.NewUUID(), role)
	suite.Require().NoError(err)
	return a
}

func (suite *ServerTestSuite) do(actor *kernel.Actor, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if actor != nil {
		token, err := suite.tokens.Issue(*actor, time.Hour)
		suite.Require().NoError(err)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](suite *ServerTestSuite, rec *httptest.ResponseRecorder) T {
	var v T
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (suite *ServerTestSuite) newDonationBody() servers.NewDonation {
	quantity := "2 trays"
	return servers.NewDonation{
		Details: servers.DonationDetails{
			FoodType: "cooked",
			FoodName: "Vegetable lasagne",
			Quantity: 6,
			Unit:     "kg",
			Items: []servers.Item{
				{Id: "lasagne", Name: "Lasagne tray", Quantity: &quantity},
				{Id: "salad", Name: "Side salad"},
			},
			Pickup: servers.PickupDetails{
				Address:      "12 Market Street",
				ContactName:  "Rosa",
				ContactPhone: "+1 555 010 2030",
			},
		},
		ExpiresAt: openedAt.Add(6 * time.Hour),
	}
}

func (suite *ServerTestSuite) create() servers.Donation {
	rec := suite.do(&suite.donor, http.MethodPost, "/api/v1/donations", suite.newDonationBody())
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	return decode[servers.Donation](suite, rec)
}

func donationPath(d servers.Donation, suffix string) string {
	return "/api/v1/donations/" + d.Id.String() + suffix
}

func (suite *ServerTestSuite) TestFullLifecycle() {
	created := suite.create()
	suite.Equal(servers.DonationStatusPending, created.Status)
	suite.Equal(int64(0), created.Version)
	suite.Equal(suite.donor.ID().Bytes(), created.DonorId)

	rec := suite.do(&suite.ngo, http.MethodPost, donationPath(created, "/claim"), nil)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	claimed := decode[servers.Donation](suite, rec)
	suite.Equal(servers.DonationStatusClaimed, claimed.Status)
	suite.Require().NotNil(claimed.ClaimedBy)
	suite.Equal(suite.ngo.ID().Bytes(), *claimed.ClaimedBy)

	rec = suite.do(&suite.ngo, http.MethodPost, donationPath(created, "/courier"),
		servers.CourierAssignment{CourierId: suite.courier.ID().Bytes()})
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = suite.do(&suite.courier, http.MethodPost, donationPath(created, "/pickup"), servers.PickupConfirmation{
		CheckedItems: []string{"lasagne"},
		Quality:      servers.QualityChecks{GoodCondition: true, PackagingIntact: true, TemperatureOk: true},
	})
	suite.Require().Equal(http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	rejection := decode[servers.Error](suite, rec)
	suite.Require().NotNil(rejection.Kind)
	suite.Equal(string(errs.CodeIncompleteVerification), *rejection.Kind)
	suite.Require().NotNil(rejection.Fields)
	suite.ElementsMatch([]string{"checkedItems", "photoRef"}, *rejection.Fields)

	rec = suite.do(&suite.courier, http.MethodPost, donationPath(created, "/pickup"), servers.PickupConfirmation{
		CheckedItems: []string{"salad", "lasagne"},
		Quality:      servers.QualityChecks{GoodCondition: true, PackagingIntact: true, TemperatureOk: true},
		PhotoRef:     "photos/pickup-1.jpg",
	})
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	pickedUp := decode[servers.Donation](suite, rec)
	suite.Require().NotNil(pickedUp.PickupVerification)
	suite.Equal([]string{"lasagne", "salad"}, pickedUp.PickupVerification.CheckedItems)

	rec = suite.do(&suite.courier, http.MethodPost, donationPath(created, "/departure"), nil)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = suite.do(&suite.courier, http.MethodPost, donationPath(created, "/issues"),
		servers.NewIssue{Description: "Road closed, taking a detour"})
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	issue := decode[servers.Issue](suite, rec)
	suite.Equal(suite.courier.ID().Bytes(), issue.CourierId)

	rec = suite.do(&suite.ngo, http.MethodGet, donationPath(created, "/issues"), nil)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	suite.Len(decode[[]servers.Issue](suite, rec), 1)

	rec = suite.do(&suite.courier, http.MethodPost, donationPath(created, "/delivery"), servers.DeliveryConfirmation{
		Handover: servers.HandoverChecklist{ItemsHandedOver: true, ConditionVerified: true, TemperatureMaintained: true},
		PhotoRef: "photos/dropoff-1.jpg",
		Rating:   5,
	})
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	delivered := decode[servers.Donation](suite, rec)
	suite.Equal(servers.DonationStatusDelivered, delivered.Status)
	suite.Equal(int64(5), delivered.Version)
	suite.Require().NotNil(delivered.DeliveryVerification)
	suite.Nil(delivered.DeliveryVerification.Comment)

	rec = suite.do(&suite.donor, http.MethodPost, donationPath(created, "/cancellation"), nil)
	suite.Require().Equal(http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	suite.Equal(string(errs.CodeInvalidTransition), *decode[servers.Error](suite, rec).Kind)

	// created + five transitions + one issue
	suite.Equal(7, suite.publisher.Len())
}

func (suite *ServerTestSuite) TestCancelWhilePending() {
	created := suite.create()

	rec := suite.do(&suite.otherNG, http.MethodPost, donationPath(created, "/cancellation"),
		servers.CancellationRequest{Reason: ptr("not needed")})
	suite.Equal(http.StatusForbidden, rec.Code, rec.Body.String())

	rec = suite.do(&suite.donor, http.MethodPost, donationPath(created, "/cancellation"),
		servers.CancellationRequest{Reason: ptr("plans changed")})
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	canceled := decode[servers.Donation](suite, rec)
	suite.Equal(servers.DonationStatusCanceled, canceled.Status)
	suite.Require().NotNil(canceled.Cancellation)
	suite.Equal("plans changed", canceled.Cancellation.Reason)
	suite.Equal("donor", canceled.Cancellation.Role)
}

func (suite *ServerTestSuite) TestCancelAfterClaimReleasesParticipants() {
	created := suite.create()
	rec := suite.do(&suite.ngo, http.MethodPost, donationPath(created, "/claim"), nil)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	rec = suite.do(&suite.ngo, http.MethodPost, donationPath(created, "/courier"),
		servers.CourierAssignment{CourierId: suite.courier.ID().Bytes()})
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = suite.do(&suite.ngo, http.MethodPost, donationPath(created, "/cancellation"),
		servers.CancellationRequest{Reason: ptr("no volunteers")})
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	canceled := decode[servers.Donation](suite, rec)
	suite.Nil(canceled.ClaimedBy)
	suite.Nil(canceled.AssignedCourier)
	suite.Require().NotNil(canceled.Cancellation)
	suite.Require().NotNil(canceled.Cancellation.PriorClaimant)
	suite.Equal(suite.ngo.ID().Bytes(), *canceled.Cancellation.PriorClaimant)
	suite.Require().NotNil(canceled.Cancellation.PriorCourier)
	suite.Equal(suite.courier.ID().Bytes(), *canceled.Cancellation.PriorCourier)

	for _, participant := range []*kernel.Actor{&suite.ngo, &suite.courier} {
		rec = suite.do(participant, http.MethodGet, donationPath(created, ""), nil)
		suite.Equal(http.StatusOK, rec.Code, rec.Body.String())
	}
	rec = suite.do(&suite.otherNG, http.MethodGet, donationPath(created, ""), nil)
	suite.Equal(http.StatusForbidden, rec.Code, rec.Body.String())
}

func (suite *ServerTestSuite) TestClaimAfterExpiryIsGone() {
	created := suite.create()
	suite.now = openedAt.Add(7 * time.Hour)

	rec := suite.do(&suite.ngo, http.MethodPost, donationPath(created, "/claim"), nil)
	suite.Require().Equal(http.StatusGone, rec.Code, rec.Body.String())
	suite.Equal(string(errs.CodeExpired), *decode[servers.Error](suite, rec).Kind)

	rec = suite.do(&suite.donor, http.MethodGet, donationPath(created, ""), nil)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	got := decode[servers.Donation](suite, rec)
	suite.Equal(servers.DonationStatusCanceled, got.Status)
	suite.Require().NotNil(got.Cancellation)
	suite.Nil(got.Cancellation.By)

	expiry := suite.publisher.Last()
	suite.Equal(donation.Cancel, expiry.Event)
	suite.Equal(donation.ExpiredReason, expiry.Reason)
	suite.True(expiry.ActorID.IsZero(), "expiry attributed to %s", expiry.ActorID)
	suite.Equal(kernel.UnknownRole, expiry.ActorRole)
}

func (suite *ServerTestSuite) TestRequestRejections() {
	created := suite.create()

	tests := []struct {
		name   string
		actor  *kernel.Actor
		method string
		path   string
		body   any
		status int
	}{
		{name: "no credential", method: http.MethodGet, path: "/api/v1/donations", status: http.StatusUnauthorized},
		{name: "donor cannot claim", actor: &suite.donor, method: http.MethodPost, path: donationPath(created, "/claim"), status: http.StatusForbidden},
		{name: "ngo cannot publish", actor: &suite.ngo, method: http.MethodPost, path: "/api/v1/donations", body: suite.newDonationBody(), status: http.StatusForbidden},
		{name: "malformed body", actor: &suite.donor, method: http.MethodPost, path: "/api/v1/donations", body: `{"details":`, status: http.StatusBadRequest},
		{name: "invalid details", actor: &suite.donor, method: http.MethodPost, path: "/api/v1/donations", body: servers.NewDonation{ExpiresAt: openedAt.Add(time.Hour)}, status: http.StatusUnprocessableEntity},
		{name: "malformed donation id", actor: &suite.ngo, method: http.MethodPost, path: "/api/v1/donations/not-a-uuid/claim", status: http.StatusBadRequest},
		{name: "unknown donation", actor: &suite.ngo, method: http.MethodPost, path: "/api/v1/donations/" + kernel.NewUUID().String() + "/claim", status: http.StatusNotFound},
		{name: "unknown status filter", actor: &suite.ngo, method: http.MethodGet, path: "/api/v1/donations?status=Lost", status: http.StatusUnprocessableEntity},
		{name: "limit out of range", actor: &suite.ngo, method: http.MethodGet, path: "/api/v1/donations?limit=500", status: http.StatusUnprocessableEntity},
		{name: "courier cannot see pending donation", actor: &suite.courier, method: http.MethodGet, path: donationPath(created, ""), status: http.StatusForbidden},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			rec := suite.do(tt.actor, tt.method, tt.path, tt.body)
			suite.Equal(tt.status, rec.Code, rec.Body.String())

			body := decode[servers.Error](suite, rec)
			suite.Equal(tt.status, body.Code)
			suite.NotEmpty(body.Message)
		})
	}
}

func (suite *ServerTestSuite) TestListAndStats() {
	first := suite.create()
	suite.now = openedAt.Add(time.Minute)
	second := suite.create()

	rec := suite.do(&suite.ngo, http.MethodPost, donationPath(first, "/claim"), nil)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = suite.do(&suite.otherNG, http.MethodGet, "/api/v1/donations", nil)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	visible := decode[[]servers.Donation](suite, rec)
	suite.Require().Len(visible, 1)
	suite.Equal(second.Id, visible[0].Id)

	rec = suite.do(&suite.ngo, http.MethodGet, "/api/v1/donations?status=Claimed", nil)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	claimed := decode[[]servers.Donation](suite, rec)
	suite.Require().Len(claimed, 1)
	suite.Equal(first.Id, claimed[0].Id)

	rec = suite.do(&suite.donor, http.MethodGet, "/api/v1/donations?limit=1&offset=1", nil)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	page := decode[[]servers.Donation](suite, rec)
	suite.Require().Len(page, 1)
	suite.Equal(first.Id, page[0].Id)

	rec = suite.do(&suite.courier, http.MethodGet, "/api/v1/stats/donations", nil)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	counts := decode[servers.StatusCounts](suite, rec)
	suite.Equal(int64(1), counts["Pending"])
	suite.Equal(int64(1), counts["Claimed"])
	suite.Equal(int64(0), counts["Delivered"])
	suite.Len(counts, len(donation.AllStatuses()))
}

func (suite *ServerTestSuite) TestOperationalEndpoints() {
	rec := suite.do(nil, http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal("Healthy", rec.Body.String())

	suite.healthErr = errors.New("database is down")
	rec = suite.do(nil, http.MethodGet, "/health", nil)
	suite.Equal(http.StatusServiceUnavailable, rec.Code)

	rec = suite.do(nil, http.MethodGet, "/metrics", nil)
	suite.Equal(http.StatusOK, rec.Code)
	suite.True(strings.HasPrefix(rec.Body.String(), "# metrics"))
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errs.NewInvalidInputError("bad", errs.NewValueIsRequiredError("x")), http.StatusUnprocessableEntity},
		{errs.NewInvalidTransitionError("no"), http.StatusUnprocessableEntity},
		{errs.NewIncompleteVerificationError([]string{"photoRef"}), http.StatusUnprocessableEntity},
		{errs.NewUnauthorizedError("no"), http.StatusForbidden},
		{errs.NewObjectNotFoundError("donationId", "x"), http.StatusNotFound},
		{errs.NewConflictError("busy"), http.StatusConflict},
		{errs.NewExpiredError("late"), http.StatusGone},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, httpin.StatusFor(tt.err), tt.err.Error())
	}
}

func ptr[T any](v T) *T {
	return &v
}

func TestNewRouter_RejectsUnknownCredentialBeforeRouting(t *testing.T) {
	tokens, err := identity.NewJWTProvider("secret")
	require.NoError(t, err)
	router := httpin.NewRouter(httpin.RouterConfig{Server: httpin.NewServer(httpin.Handlers{}, nil), Identity: tokens})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats/donations", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer nonsense")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
