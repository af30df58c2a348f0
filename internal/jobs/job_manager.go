package jobs

import (
	"fmt"
	"log/slog"

	"connectfood/internal/core/application/usecases/commands"
	"connectfood/internal/core/application/usecases/queries"
)

// Schedules holds the cron expressions of the background jobs.
type Schedules struct {
	Stats          string
	Sweep          string
	SweepBatchSize int
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	statsJob *DonationStatsJob
	sweepJob *ExpirySweepJob
}

func NewJobManager(
	countHandler queries.CountDonationsByStatusQueryHandler,
	gauge StatusGauge,
	expireHandler commands.ExpireLapsedDonationsCommandHandler,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		statsJob: NewDonationStatsJob(countHandler, gauge, schedules.Stats, logger),
		sweepJob: NewExpirySweepJob(expireHandler, schedules.Sweep, schedules.SweepBatchSize, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.sweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start expiry sweep job: %w", err)
	}

	if err := jm.statsJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.sweepJob.Stop()
		return fmt.Errorf("failed to start donation stats job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.statsJob.Stop()
	jm.sweepJob.Stop()
}
