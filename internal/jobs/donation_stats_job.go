package jobs

import (
	"context"
	"log/slog"

	"connectfood/internal/core/application/usecases/queries"
	"connectfood/internal/core/domain/model/donation"

	"github.com/robfig/cron/v3"
)

// StatusGauge receives the latest per-status donation counts.
type StatusGauge interface {
	SetDonationCounts(counts map[donation.Status]int64)
}

// DonationStatsJob refreshes the per-status donation gauge on a schedule.
type DonationStatsJob struct {
	handler  queries.CountDonationsByStatusQueryHandler
	gauge    StatusGauge
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewDonationStatsJob(
	handler queries.CountDonationsByStatusQueryHandler,
	gauge StatusGauge,
	schedule string,
	logger *slog.Logger,
) *DonationStatsJob {
	return &DonationStatsJob{
		handler:  handler,
		gauge:    gauge,
		schedule: schedule,
		cron:     newCron(),
		logger:   logger.With("component", "donation_stats_job"),
	}
}

func (j *DonationStatsJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Donation stats job started", "schedule", j.schedule)
	return nil
}

// Run refreshes the gauge once. A failed count leaves the previous values.
func (j *DonationStatsJob) Run(ctx context.Context) {
	counts, err := j.handler.Handle(ctx, queries.NewCountDonationsByStatusQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Donation stats job failed", "error", err)
		return
	}
	j.gauge.SetDonationCounts(counts)
}

func (j *DonationStatsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Donation stats job stopped")
}
