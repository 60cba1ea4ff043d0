// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"orderflow/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	PackageRepoFactory interface {
		PackageRepository() ports.PackageRepository
	}

	ChargeRepoFactory interface {
		ChargeRepository() ports.ChargeRepository
	}

	DiscountRepoFactory interface {
		DiscountRepository() ports.DiscountRepository
	}

	PackageEventRepoFactory interface {
		PackageEventRepository() ports.PackageEventRepository
	}

	ContactAddressRepoFactory interface {
		ContactAddressRepository() ports.ContactAddressRepository
	}

	// PackageUoW covers single-package operations: cancel, update, delete.
	// The order row is locked through OrderRepository before the package
	// and its siblings are read.
	PackageUoW interface {
		TxManager
		OrderRepoFactory
		PackageRepoFactory
		ChargeRepoFactory
		PackageEventRepoFactory
	}

	PackageUoWFactory interface {
		Create() PackageUoW
	}

	// UoW spans every repository an order workflow touches.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		PackageRepoFactory
		ChargeRepoFactory
		DiscountRepoFactory
		PackageEventRepoFactory
		ContactAddressRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
