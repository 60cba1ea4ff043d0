// Package jobs provides scheduled background tasks for the order service.
//
// Jobs are cron-based, using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// ExpiredPackagesSweepJob runs nightly (default "0 3 * * *") and closes every
// REQUEST or PENDING package whose pick-up start is missing or already in the
// past. Each package is cancelled in its own transaction, so one failure does
// not stop the rest of the sweep.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(sweepHandler, cfg.SweepSchedule, loc, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
package jobs
