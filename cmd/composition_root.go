package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	httpin "connectfood/internal/adapters/in/http"
	"connectfood/internal/adapters/in/http/identity"
	"connectfood/internal/adapters/in/http/openapi"
	"connectfood/internal/adapters/out/memory"
	"connectfood/internal/adapters/out/metrics"
	"connectfood/internal/adapters/out/mongostore"
	"connectfood/internal/adapters/out/notify"
	"connectfood/internal/adapters/out/postgres"
	"connectfood/internal/core/application/announce"
	"connectfood/internal/core/application/arbiter"
	"connectfood/internal/core/application/usecases/commands"
	"connectfood/internal/core/application/usecases/queries"
	"connectfood/internal/core/domain/services"
	"connectfood/internal/core/ports"
	"connectfood/internal/jobs"

	"github.com/labstack/echo/v4"
)

type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger
	clock  ports.Clock

	donations ports.DonationStore
	issues    ports.IssueRepository
	health    func(ctx context.Context) error
	closers   []func(ctx context.Context) error

	metrics    *metrics.Collectors
	hub        *notify.Hub
	dispatcher *notify.Dispatcher
	arbiter    *arbiter.Arbiter
	announcer  *announce.Announcer
	identity   *identity.JWTProvider
	gate       services.VerificationGate
}

// NewCompositionRoot opens the configured store and builds the shared
// infrastructure. Call Close to release the store.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:     cfg,
		logger:  logger,
		clock:   ports.ClockFunc(time.Now),
		metrics: metrics.New(),
		gate:    services.NewVerificationGate(),
	}

	if err := c.openStore(ctx); err != nil {
		return nil, err
	}

	c.hub = notify.NewHub(identity.ActorFromContext, logger, notify.WithOriginPatterns(cfg.WSOriginPatterns...))
	c.dispatcher = notify.NewDispatcher(cfg.NotifyQueueSize, logger, c.hub, notify.NewLogSink(logger))
	c.metrics.RegisterNotificationStats(c.dispatcher.Stats)

	var err error
	c.arbiter, err = arbiter.New(c.donations, c.clock,
		arbiter.WithMaxAttempts(cfg.CASAttempts),
		arbiter.WithObserver(c.metrics),
	)
	if err != nil {
		return nil, errors.Join(err, c.Close(ctx))
	}

	c.announcer, err = announce.New(c.dispatcher, logger)
	if err != nil {
		return nil, errors.Join(err, c.Close(ctx))
	}

	var idOpts []identity.Option
	if cfg.JWTIssuer != "" {
		idOpts = append(idOpts, identity.WithIssuer(cfg.JWTIssuer))
	}
	c.identity, err = identity.NewJWTProvider(cfg.JWTSecret, idOpts...)
	if err != nil {
		return nil, errors.Join(err, c.Close(ctx))
	}

	return c, nil
}

func (c *CompositionRoot) openStore(ctx context.Context) error {
	switch c.cfg.StoreDriver {
	case StoreDriverPostgres:
		db, err := postgres.Open(c.cfg.DSN())
		if err != nil {
			return err
		}
		storage := postgres.NewStorage(db)
		c.closers = append(c.closers, func(context.Context) error { return storage.Close() })
		if err := storage.Migrate(ctx); err != nil {
			return errors.Join(fmt.Errorf("migrate postgres: %w", err), c.Close(ctx))
		}
		c.donations = storage.DonationRepository()
		c.issues = storage.IssueRepository()
		c.health = storage.Ping

	case StoreDriverMongo:
		client, err := mongostore.Connect(ctx, c.cfg.MongoURI)
		if err != nil {
			return err
		}
		storage := mongostore.NewStorage(client, c.cfg.MongoDB)
		c.closers = append(c.closers, storage.Close)
		if err := storage.EnsureIndexes(ctx); err != nil {
			return errors.Join(fmt.Errorf("ensure mongo indexes: %w", err), c.Close(ctx))
		}
		c.donations = storage.DonationRepository()
		c.issues = storage.IssueRepository()
		c.health = storage.Ping

	case StoreDriverMemory:
		c.logger.WarnContext(ctx, "Using the in-memory store: donations are lost on restart")
		c.donations = memory.NewDonationStore()
		c.issues = memory.NewIssueStore()

	default:
		return fmt.Errorf("unknown store driver %q", c.cfg.StoreDriver)
	}
	return nil
}

func (c *CompositionRoot) CreateCreateDonationCommandHandler() commands.CreateDonationCommandHandler {
	return commands.NewCreateDonationCommandHandler(c.donations, c.announcer, c.clock)
}

func (c *CompositionRoot) CreateClaimDonationCommandHandler() commands.ClaimDonationCommandHandler {
	return commands.NewClaimDonationCommandHandler(c.arbiter, c.announcer)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	return commands.NewAssignCourierCommandHandler(c.arbiter, c.announcer)
}

func (c *CompositionRoot) CreateConfirmPickupCommandHandler() commands.ConfirmPickupCommandHandler {
	return commands.NewConfirmPickupCommandHandler(c.arbiter, c.announcer, c.gate)
}

func (c *CompositionRoot) CreateDepartForDropoffCommandHandler() commands.DepartForDropoffCommandHandler {
	return commands.NewDepartForDropoffCommandHandler(c.arbiter, c.announcer)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.arbiter, c.announcer, c.gate)
}

func (c *CompositionRoot) CreateCancelDonationCommandHandler() commands.CancelDonationCommandHandler {
	return commands.NewCancelDonationCommandHandler(c.arbiter, c.announcer)
}

func (c *CompositionRoot) CreateReportIssueCommandHandler() commands.ReportIssueCommandHandler {
	return commands.NewReportIssueCommandHandler(c.donations, c.issues, c.announcer, c.clock)
}

func (c *CompositionRoot) CreateExpireLapsedDonationsCommandHandler() commands.ExpireLapsedDonationsCommandHandler {
	return commands.NewExpireLapsedDonationsCommandHandler(c.donations, c.arbiter, c.announcer, c.clock)
}

func (c *CompositionRoot) CreateGetDonationQueryHandler() queries.GetDonationQueryHandler {
	return queries.NewGetDonationQueryHandler(c.arbiter, c.announcer)
}

func (c *CompositionRoot) CreateListDonationsQueryHandler() queries.ListDonationsQueryHandler {
	return queries.NewListDonationsQueryHandler(c.donations, c.arbiter, c.announcer, c.clock, c.logger)
}

func (c *CompositionRoot) CreateListIssuesQueryHandler() queries.ListIssuesQueryHandler {
	return queries.NewListIssuesQueryHandler(c.donations, c.issues)
}

func (c *CompositionRoot) CreateCountDonationsByStatusQueryHandler() queries.CountDonationsByStatusQueryHandler {
	return queries.NewCountDonationsByStatusQueryHandler(c.donations)
}

// NewRouter assembles the HTTP surface.
func (c *CompositionRoot) NewRouter(ctx context.Context) (*echo.Echo, error) {
	docs, err := openapi.Load(ctx)
	if err != nil {
		return nil, err
	}

	server := httpin.NewServer(httpin.Handlers{
		CreateDonation:   c.CreateCreateDonationCommandHandler(),
		ClaimDonation:    c.CreateClaimDonationCommandHandler(),
		AssignCourier:    c.CreateAssignCourierCommandHandler(),
		ConfirmPickup:    c.CreateConfirmPickupCommandHandler(),
		DepartForDropoff: c.CreateDepartForDropoffCommandHandler(),
		ConfirmDelivery:  c.CreateConfirmDeliveryCommandHandler(),
		CancelDonation:   c.CreateCancelDonationCommandHandler(),
		ReportIssue:      c.CreateReportIssueCommandHandler(),

		GetDonation:            c.CreateGetDonationQueryHandler(),
		ListDonations:          c.CreateListDonationsQueryHandler(),
		ListIssues:             c.CreateListIssuesQueryHandler(),
		CountDonationsByStatus: c.CreateCountDonationsByStatusQueryHandler(),
	}, c.logger)

	return httpin.NewRouter(httpin.RouterConfig{
		Server:   server,
		Identity: c.identity,
		Events:   c.hub,
		Metrics:  c.metrics.Handler(),
		Docs:     docs,
		Health:   c.health,
		Logger:   c.logger,
	}), nil
}

func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateCountDonationsByStatusQueryHandler(),
		c.metrics,
		c.CreateExpireLapsedDonationsCommandHandler(),
		jobs.Schedules{
			Stats:          c.cfg.StatsSchedule,
			Sweep:          c.cfg.SweepSchedule,
			SweepBatchSize: c.cfg.SweepBatchSize,
		},
		c.logger,
	)
}

// Dispatcher delivers lifecycle events to subscribers; the caller runs it.
func (c *CompositionRoot) Dispatcher() *notify.Dispatcher {
	return c.dispatcher
}

// Close releases the store in reverse order of opening.
func (c *CompositionRoot) Close(ctx context.Context) error {
	var closeErrs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		closeErrs = append(closeErrs, c.closers[i](ctx))
	}
	c.closers = nil
	return errors.Join(closeErrs...)
}
