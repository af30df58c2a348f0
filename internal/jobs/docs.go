// Package jobs provides scheduled background tasks for the donation coordinator.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field expressions with
// seconds) and only ever call application handlers.
//
// # Available Jobs
//
//  1. ExpirySweepJob - commits the expiry of Pending and Claimed donations past
//     their expiry and announces each one as a cancellation
//  2. DonationStatsJob - refreshes the per-status donation gauge
//
// # Usage
//
//	jobManager := jobs.NewJobManager(countHandler, collectors, expireHandler, jobs.Schedules{
//		Stats: "*/30 * * * * *",
//		Sweep: "*/15 * * * * *",
//	}, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// A run that is still going when its next tick fires causes that tick to be
// skipped. A failed start stops the jobs already running.
package jobs
