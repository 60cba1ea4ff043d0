package ports

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// PackageRepository persists packages. Packages are always loaded through
// their order id after the order has been locked.
type PackageRepository interface {
	Add(ctx context.Context, packages ...*order.Package) error
	Update(ctx context.Context, packages ...*order.Package) error
	Get(ctx context.Context, id kernel.UUID) (*order.Package, error)
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Package, error)

	// Delete removes the package row only. Charges must be deleted first.
	Delete(ctx context.Context, id kernel.UUID) error

	// FindExpired lists REQUEST or PENDING packages whose pick-up start is
	// unset or earlier than now.
	FindExpired(ctx context.Context, now time.Time) ([]kernel.UUID, error)

	ExistsTrackingNumber(ctx context.Context, trackingNumber kernel.TrackingNumber) (bool, error)
}
