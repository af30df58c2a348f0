package jobs

import (
	"context"
	"log/slog"

	"connectfood/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ExpirySweepJob periodically commits the expiry of lapsed donations so that
// participants are told about them even when nobody reads the donation.
type ExpirySweepJob struct {
	handler   commands.ExpireLapsedDonationsCommandHandler
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewExpirySweepJob creates the sweep. schedule is a six-field cron expression
// with seconds; batchSize 0 selects commands.DefaultSweepBatchSize.
func NewExpirySweepJob(
	handler commands.ExpireLapsedDonationsCommandHandler,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) *ExpirySweepJob {
	return &ExpirySweepJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      newCron(),
		logger:    logger.With("component", "expiry_sweep_job"),
	}
}

func (j *ExpirySweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Expiry sweep job started", "schedule", j.schedule)
	return nil
}

// Run performs a single sweep.
func (j *ExpirySweepJob) Run(ctx context.Context) {
	cmd, err := commands.NewExpireLapsedDonationsCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Expiry sweep misconfigured", "error", err)
		return
	}

	expired, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Expiry sweep failed", "expired", expired, "error", err)
		return
	}
	if expired > 0 {
		j.logger.InfoContext(ctx, "Lapsed donations expired", "expired", expired)
	}
}

func (j *ExpirySweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Expiry sweep job stopped")
}

// newCron runs schedules with seconds and never overlaps a run with the
// previous one.
func newCron() *cron.Cron {
	return cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
}
