package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	expiredPackagesSweepJob *ExpiredPackagesSweepJob
}

// NewJobManager wires the sweep handler to its cron schedule.
func NewJobManager(
	sweepHandler expiredPackagesSweeper,
	sweepSchedule string,
	loc *time.Location,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		expiredPackagesSweepJob: NewExpiredPackagesSweepJob(sweepHandler, sweepSchedule, loc, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.expiredPackagesSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start expired packages sweep job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.expiredPackagesSweepJob.Stop()
}
