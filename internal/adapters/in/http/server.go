package http

import (
	"log/slog"
	"net/http"

	"connectfood/internal/adapters/in/http/identity"
	"connectfood/internal/core/application/usecases/commands"
	"connectfood/internal/core/application/usecases/queries"
	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/core/domain/services"
	"connectfood/internal/generated/servers"
	"connectfood/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Handlers groups the use cases the HTTP API exposes.
type Handlers struct {
	// Command handlers
	CreateDonation   commands.CreateDonationCommandHandler
	ClaimDonation    commands.ClaimDonationCommandHandler
	AssignCourier    commands.AssignCourierCommandHandler
	ConfirmPickup    commands.ConfirmPickupCommandHandler
	DepartForDropoff commands.DepartForDropoffCommandHandler
	ConfirmDelivery  commands.ConfirmDeliveryCommandHandler
	CancelDonation   commands.CancelDonationCommandHandler
	ReportIssue      commands.ReportIssueCommandHandler

	// Query handlers
	GetDonation            queries.GetDonationQueryHandler
	ListDonations          queries.ListDonationsQueryHandler
	ListIssues             queries.ListIssuesQueryHandler
	CountDonationsByStatus queries.CountDonationsByStatusQueryHandler
}

// Server implements servers.ServerInterface on top of the lifecycle use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http_server"),
	}
}

// CreateDonation handles POST /api/v1/donations.
func (s *Server) CreateDonation(ctx echo.Context) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.CreateDonationJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx)
	}

	cmd, err := commands.NewCreateDonationCommand(actor, toDomainDetails(body.Details), body.ExpiresAt)
	if err != nil {
		return s.fail(ctx, err)
	}

	d, err := s.handlers.CreateDonation.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toDonationResponse(d))
}

// ListDonations handles GET /api/v1/donations.
func (s *Server) ListDonations(ctx echo.Context, params servers.ListDonationsParams) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var statuses []donation.Status
	if params.Status != nil {
		for _, name := range *params.Status {
			status, err := donation.ParseStatus(string(name))
			if err != nil {
				return s.fail(ctx, errs.NewInvalidInputError("listing parameters are invalid", err))
			}
			statuses = append(statuses, status)
		}
	}

	query, err := queries.NewListDonationsQuery(actor, statuses, deref(params.Limit), deref(params.Offset))
	if err != nil {
		return s.fail(ctx, err)
	}

	list, err := s.handlers.ListDonations.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.Donation, len(list))
	for i, d := range list {
		response[i] = toDonationResponse(d)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetDonation handles GET /api/v1/donations/{donationId}.
func (s *Server) GetDonation(ctx echo.Context, donationID servers.DonationId) error {
	actor, id, err := s.actorAndDonation(ctx, donationID)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetDonationQuery(actor, id)
	if err != nil {
		return s.fail(ctx, err)
	}

	d, err := s.handlers.GetDonation.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toDonationResponse(d))
}

// ClaimDonation handles POST /api/v1/donations/{donationId}/claim.
func (s *Server) ClaimDonation(ctx echo.Context, donationID servers.DonationId) error {
	actor, id, err := s.actorAndDonation(ctx, donationID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewClaimDonationCommand(actor, id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respond(ctx, func() (*donation.Donation, error) {
		return s.handlers.ClaimDonation.Handle(ctx.Request().Context(), cmd)
	})
}

// AssignCourier handles POST /api/v1/donations/{donationId}/courier.
func (s *Server) AssignCourier(ctx echo.Context, donationID servers.DonationId) error {
	actor, id, err := s.actorAndDonation(ctx, donationID)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.AssignCourierJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx)
	}
	courierID, err := kernel.UUIDFromBytes(body.CourierId[:])
	if err != nil {
		return s.fail(ctx, errs.NewInvalidInputError("courier id is required", errs.NewValueIsRequiredErrorWithCause("courierId", err)))
	}

	cmd, err := commands.NewAssignCourierCommand(actor, id, courierID)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respond(ctx, func() (*donation.Donation, error) {
		return s.handlers.AssignCourier.Handle(ctx.Request().Context(), cmd)
	})
}

// ConfirmPickup handles POST /api/v1/donations/{donationId}/pickup.
func (s *Server) ConfirmPickup(ctx echo.Context, donationID servers.DonationId) error {
	actor, id, err := s.actorAndDonation(ctx, donationID)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.ConfirmPickupJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx)
	}

	cmd, err := commands.NewConfirmPickupCommand(actor, id, services.PickupPayload{
		CheckedItems: body.CheckedItems,
		Quality: donation.QualityChecks{
			GoodCondition:   body.Quality.GoodCondition,
			PackagingIntact: body.Quality.PackagingIntact,
			TemperatureOK:   body.Quality.TemperatureOk,
		},
		PhotoRef: body.PhotoRef,
	})
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respond(ctx, func() (*donation.Donation, error) {
		return s.handlers.ConfirmPickup.Handle(ctx.Request().Context(), cmd)
	})
}

// DepartForDropoff handles POST /api/v1/donations/{donationId}/departure.
func (s *Server) DepartForDropoff(ctx echo.Context, donationID servers.DonationId) error {
	actor, id, err := s.actorAndDonation(ctx, donationID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewDepartForDropoffCommand(actor, id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respond(ctx, func() (*donation.Donation, error) {
		return s.handlers.DepartForDropoff.Handle(ctx.Request().Context(), cmd)
	})
}

// ConfirmDelivery handles POST /api/v1/donations/{donationId}/delivery.
func (s *Server) ConfirmDelivery(ctx echo.Context, donationID servers.DonationId) error {
	actor, id, err := s.actorAndDonation(ctx, donationID)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.ConfirmDeliveryJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx)
	}

	cmd, err := commands.NewConfirmDeliveryCommand(actor, id, services.DeliveryPayload{
		Handover: donation.HandoverChecklist{
			ItemsHandedOver:       body.Handover.ItemsHandedOver,
			ConditionVerified:     body.Handover.ConditionVerified,
			TemperatureMaintained: body.Handover.TemperatureMaintained,
		},
		PhotoRef: body.PhotoRef,
		Rating:   body.Rating,
		Comment:  deref(body.Comment),
	})
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respond(ctx, func() (*donation.Donation, error) {
		return s.handlers.ConfirmDelivery.Handle(ctx.Request().Context(), cmd)
	})
}

// CancelDonation handles POST /api/v1/donations/{donationId}/cancellation.
// The body is optional.
func (s *Server) CancelDonation(ctx echo.Context, donationID servers.DonationId) error {
	actor, id, err := s.actorAndDonation(ctx, donationID)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.CancelDonationJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx)
	}

	cmd, err := commands.NewCancelDonationCommand(actor, id, deref(body.Reason))
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respond(ctx, func() (*donation.Donation, error) {
		return s.handlers.CancelDonation.Handle(ctx.Request().Context(), cmd)
	})
}

// ReportIssue handles POST /api/v1/donations/{donationId}/issues.
func (s *Server) ReportIssue(ctx echo.Context, donationID servers.DonationId) error {
	actor, id, err := s.actorAndDonation(ctx, donationID)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.ReportIssueJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx)
	}

	cmd, err := commands.NewReportIssueCommand(actor, id, body.Description)
	if err != nil {
		return s.fail(ctx, err)
	}

	report, err := s.handlers.ReportIssue.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toIssueResponse(report))
}

// ListIssues handles GET /api/v1/donations/{donationId}/issues.
func (s *Server) ListIssues(ctx echo.Context, donationID servers.DonationId) error {
	actor, id, err := s.actorAndDonation(ctx, donationID)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewListIssuesQuery(actor, id)
	if err != nil {
		return s.fail(ctx, err)
	}

	reports, err := s.handlers.ListIssues.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.Issue, len(reports))
	for i, report := range reports {
		response[i] = toIssueResponse(report)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CountDonationsByStatus handles GET /api/v1/stats/donations.
func (s *Server) CountDonationsByStatus(ctx echo.Context) error {
	counts, err := s.handlers.CountDonationsByStatus.Handle(ctx.Request().Context(), queries.NewCountDonationsByStatusQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make(servers.StatusCounts, len(counts))
	for status, n := range counts {
		response[status.String()] = n
	}
	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) respond(ctx echo.Context, handle func() (*donation.Donation, error)) error {
	d, err := handle()
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toDonationResponse(d))
}

func (s *Server) actor(ctx echo.Context) (kernel.Actor, error) {
	actor, ok := identity.ActorFrom(ctx)
	if !ok {
		return kernel.Actor{}, errs.NewUnauthorizedError("request is not authenticated")
	}
	return actor, nil
}

func (s *Server) actorAndDonation(ctx echo.Context, donationID servers.DonationId) (kernel.Actor, kernel.UUID, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return kernel.Actor{}, kernel.UUID{}, err
	}
	id, err := kernel.UUIDFromBytes(donationID[:])
	if err != nil {
		return kernel.Actor{}, kernel.UUID{}, errs.NewInvalidInputError("donation id is required",
			errs.NewValueIsRequiredErrorWithCause("donationId", err))
	}
	return actor, id, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
