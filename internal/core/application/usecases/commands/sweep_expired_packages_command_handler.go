package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/clock"
)

// SweepResult summarizes one expiry sweep.
type SweepResult struct {
	Found     int
	Cancelled int
	// Skipped counts packages that no longer qualified once locked, for
	// example because they were placed after the listing.
	Skipped int
	Failed  int
}

// SweepExpiredPackagesCommandHandler closes every REQUEST or PENDING
// package whose pick-up start is missing or past. Each package is cancelled
// in its own unit of work; a failure is logged and the sweep moves on.
type SweepExpiredPackagesCommandHandler struct {
	uowFactory PackageUoWFactory
	canceller  PackageCanceller
	clock      clock.Clock
	logger     *slog.Logger
}

func NewSweepExpiredPackagesCommandHandler(
	uowFactory PackageUoWFactory,
	canceller PackageCanceller,
	clk clock.Clock,
	logger *slog.Logger,
) SweepExpiredPackagesCommandHandler {
	return SweepExpiredPackagesCommandHandler{
		uowFactory: uowFactory,
		canceller:  canceller,
		clock:      clk,
		logger:     logger.With("component", "SweepExpiredPackages"),
	}
}

// Handle returns the joined per-package errors alongside the counts.
func (h SweepExpiredPackagesCommandHandler) Handle(ctx context.Context) (SweepResult, error) {
	ids, err := h.uowFactory.Create().PackageRepository().FindExpired(ctx, h.clock.Now())
	if err != nil {
		return SweepResult{}, err
	}

	result := SweepResult{Found: len(ids)}
	var errList []error
	for _, id := range ids {
		cancelled, cancelErr := h.cancelOne(ctx, id)
		switch {
		case cancelErr != nil:
			result.Failed++
			h.logger.ErrorContext(ctx, "failed to expire package", "packageID", id.String(), "error", cancelErr)
			errList = append(errList, fmt.Errorf("package %s: %w", id, cancelErr))
		case cancelled:
			result.Cancelled++
		default:
			result.Skipped++
			h.logger.DebugContext(ctx, "package no longer expired", "packageID", id.String())
		}
	}

	return result, errors.Join(errList...)
}

func (h SweepExpiredPackagesCommandHandler) cancelOne(ctx context.Context, id kernel.UUID) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cancelled, err := h.canceller.CancelIfExpired(ctx, uow, id, h.clock.Now())
	if err != nil || !cancelled {
		return false, err
	}

	return true, uow.Commit(ctx)
}
