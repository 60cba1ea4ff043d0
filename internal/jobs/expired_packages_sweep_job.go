package jobs

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule runs the sweep nightly at 03:00.
const DefaultSweepSchedule = "0 3 * * *"

type expiredPackagesSweeper interface {
	Handle(ctx context.Context) (commands.SweepResult, error)
}

// ExpiredPackagesSweepJob closes packages whose pick-up start has passed
// without the order being placed.
type ExpiredPackagesSweepJob struct {
	handler  expiredPackagesSweeper
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewExpiredPackagesSweepJob schedules handler with a standard five-field
// cron expression evaluated in loc.
func NewExpiredPackagesSweepJob(
	handler expiredPackagesSweeper,
	schedule string,
	loc *time.Location,
	logger *slog.Logger,
) *ExpiredPackagesSweepJob {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ExpiredPackagesSweepJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithLocation(loc)),
		logger:   logger.With("component", "expired_packages_sweep_job"),
	}
}

func (j *ExpiredPackagesSweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Expired packages sweep job started", "schedule", j.schedule)
	return nil
}

// RunOnce performs a single sweep. Per-package failures were already
// logged by the handler; only the summary is reported here.
func (j *ExpiredPackagesSweepJob) RunOnce(ctx context.Context) commands.SweepResult {
	result, err := j.handler.Handle(ctx)
	if err != nil && result.Found == 0 {
		j.logger.ErrorContext(ctx, "Expired packages sweep failed", "error", err)
		return result
	}

	j.logger.InfoContext(ctx, "Expired packages sweep finished",
		"found", result.Found,
		"cancelled", result.Cancelled,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	return result
}

// Stop waits for a running sweep to finish.
func (j *ExpiredPackagesSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Expired packages sweep job stopped")
}
