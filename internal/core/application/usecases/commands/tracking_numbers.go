package commands

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"
)

const trackingNumberAttempts = 5

// newUniqueTrackingNumber draws random tracking numbers until one is free.
// The unique index on packages still guards against a concurrent insert.
func newUniqueTrackingNumber(ctx context.Context, repo ports.PackageRepository) (kernel.TrackingNumber, error) {
	for range trackingNumberAttempts {
		tn, err := kernel.NewRandomTrackingNumber()
		if err != nil {
			return kernel.TrackingNumber{}, err
		}
		exists, err := repo.ExistsTrackingNumber(ctx, tn)
		if err != nil {
			return kernel.TrackingNumber{}, err
		}
		if !exists {
			return tn, nil
		}
	}
	return kernel.TrackingNumber{}, ErrTrackingNumberExhausted
}
