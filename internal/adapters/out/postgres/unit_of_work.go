// Package postgres implements the unit of work over GORM and opens the
// database the repositories in its subpackages run against.
//
// Usage:
//
//	uow := NewGormUnitOfWorkFactory(db, logger).Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
//	...
//	return uow.Commit(ctx)
//
// Every repository getter binds to the open transaction when one exists and
// to the plain connection otherwise. Each unit of work is single-goroutine.
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"orderflow/internal/adapters/out/postgres/chargerepo"
	"orderflow/internal/adapters/out/postgres/contactrepo"
	"orderflow/internal/adapters/out/postgres/discountrepo"
	"orderflow/internal/adapters/out/postgres/eventrepo"
	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/adapters/out/postgres/packagerepo"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"

	"gorm.io/gorm"
)

// TrackedAggregate is an order or package written during the unit of work.
type TrackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory hands out a fresh unit of work per command.
type GormUnitOfWorkFactory struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewGormUnitOfWorkFactory(db *gorm.DB, logger *slog.Logger) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, logger: logger.With("component", "UnitOfWork")}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		logger:            f.logger,
		trackedAggregates: make([]TrackedAggregate, 0),
	}
}

type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	logger            *slog.Logger
	trackedAggregates []TrackedAggregate
	committed         int
}

// Begin is a no-op when a transaction is already open.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx
	return nil
}

// Commit returns gorm.ErrInvalidTransaction when no transaction is open.
// On success the aggregates written in the transaction are logged at debug
// level.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:uow.committed]
		return err
	}

	written := uow.trackedAggregates[uow.committed:]
	uow.committed = len(uow.trackedAggregates)
	if len(written) > 0 {
		uow.logger.DebugContext(ctx, "Transaction committed", "aggregates", describe(written))
	}
	return nil
}

// Rollback discards the aggregates tracked since the last commit. It is
// safe to defer after a successful Commit; the error is then
// gorm.ErrInvalidTransaction.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:uow.committed]
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) PackageRepository() ports.PackageRepository {
	return packagerepo.NewGormPackageRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ChargeRepository() ports.ChargeRepository {
	return chargerepo.NewGormChargeRepository(uow.conn())
}

func (uow *GormUnitOfWork) DiscountRepository() ports.DiscountRepository {
	return discountrepo.NewGormDiscountRepository(uow.conn())
}

func (uow *GormUnitOfWork) PackageEventRepository() ports.PackageEventRepository {
	return eventrepo.NewGormEventRepository(uow.conn())
}

func (uow *GormUnitOfWork) ContactAddressRepository() ports.ContactAddressRepository {
	return contactrepo.NewGormContactAddressRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// TrackAggregate is called by repositories after each successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, TrackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedAggregates lists what was written and not rolled back since the
// unit of work was created, in write order.
func (uow *GormUnitOfWork) TrackedAggregates() []TrackedAggregate {
	return append([]TrackedAggregate(nil), uow.trackedAggregates...)
}

// describe renders tracked writes as "type:id" for the commit log.
func describe(tracked []TrackedAggregate) []string {
	out := make([]string, 0, len(tracked))
	for _, t := range tracked {
		out = append(out, fmt.Sprintf("%T:%s", t.Aggregate, t.ID))
	}
	return out
}
