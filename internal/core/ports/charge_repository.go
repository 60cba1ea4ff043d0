package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

type ChargeRepository interface {
	Add(ctx context.Context, charges ...*order.Charge) error
	Update(ctx context.Context, charges ...*order.Charge) error
	GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*order.Charge, error)
	GetByPackages(ctx context.Context, packageIDs []kernel.UUID) ([]*order.Charge, error)
	DeleteByPackage(ctx context.Context, packageID kernel.UUID) error
}

type DiscountRepository interface {
	// Add fails with errs.ValueIsInvalidError when the order already has a
	// discount of the same type.
	Add(ctx context.Context, discounts ...*order.Discount) error
	Update(ctx context.Context, discounts ...*order.Discount) error
	GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*order.Discount, error)
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Discount, error)
}

// PackageEventRepository is append-only.
type PackageEventRepository interface {
	Append(ctx context.Context, events ...*order.Event) error
	ListByPackage(ctx context.Context, packageID kernel.UUID) ([]*order.Event, error)
}
