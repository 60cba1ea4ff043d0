package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for delivery orders.
type OrderRepository interface {
	// Add persists a new order.
	Add(ctx context.Context, aggregate *order.DeliveryOrder) error

	// Update persists changes to an existing order. The stored version must
	// match aggregate.Version(), otherwise errs.VersionIsInvalidError is
	// returned and nothing is written.
	Update(ctx context.Context, aggregate *order.DeliveryOrder) error

	// Get retrieves an order without locking it.
	Get(ctx context.Context, id kernel.UUID) (*order.DeliveryOrder, error)

	// GetForUpdate retrieves an order and locks its row until the unit of
	// work ends. Every command that mutates an order or its packages takes
	// this lock first.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.DeliveryOrder, error)
}
