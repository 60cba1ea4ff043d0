package commands

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/clock"
)

// OrderPlacementWorkflow moves an order and its open packages to PLACED.
// It runs inside the caller's unit of work so that placement, payment
// reconciliation and duplication commit or roll back as one transaction.
//
// Sequence:
//   - check charges and package completeness
//   - resolve pick-up windows and check them against business hours
//   - write association notes and snapshot contacts and addresses
//   - place the order (stamping placedAt) and every open package
//   - persist packages and order, append one ORDER_PLACED event per package
//
// Any failure leaves the unit of work to be rolled back by the caller.
type OrderPlacementWorkflow struct {
	chargeValidator services.ChargeValidator
	pickupResolver  services.PickupTimeResolver
	businessHours   ports.BusinessHourService
	snapshotter     ContactAddressSnapshotter
	clock           clock.Clock
}

func NewOrderPlacementWorkflow(
	pickupResolver services.PickupTimeResolver,
	businessHours ports.BusinessHourService,
	clk clock.Clock,
) OrderPlacementWorkflow {
	return OrderPlacementWorkflow{
		chargeValidator: services.NewChargeValidator(),
		pickupResolver:  pickupResolver,
		businessHours:   businessHours,
		snapshotter:     NewContactAddressSnapshotter(),
		clock:           clk,
	}
}

// Place expects o to have been loaded with GetForUpdate in uow.
func (w OrderPlacementWorkflow) Place(ctx context.Context, uow UoW, o *order.DeliveryOrder) error {
	if err := errors.Join(o.Validate(), o.Status().ValidateTransition(order.Placed)); err != nil {
		return err
	}

	all, err := uow.PackageRepository().GetByOrder(ctx, o.ID())
	if err != nil {
		return err
	}
	packages := openPackages(all)

	charges, err := uow.ChargeRepository().GetByPackages(ctx, packageIDs(packages))
	if err != nil {
		return err
	}
	if err = w.chargeValidator.Validate(packages, charges); err != nil {
		return err
	}

	now := w.clock.Now()
	for _, p := range packages {
		if err = w.pickupResolver.Resolve(p, now); err != nil {
			return err
		}
	}
	if err = w.businessHours.ValidateBusinessHours(ctx, packages, o.CustomerID()); err != nil {
		return err
	}

	if err = w.snapshotter.Snapshot(ctx, uow.ContactAddressRepository(), packages); err != nil {
		return err
	}

	if err = o.Place(now); err != nil {
		return err
	}
	events := make([]*order.Event, 0, len(packages))
	for _, p := range packages {
		if err = p.Place(); err != nil {
			return err
		}
		e, eventErr := order.NewPackageEvent(p, order.EventOrderPlaced, nil, now)
		if eventErr != nil {
			return eventErr
		}
		events = append(events, e)
	}

	if err = uow.PackageRepository().Update(ctx, packages...); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}
	return uow.PackageEventRepository().Append(ctx, events...)
}

// openPackages drops packages that were closed before placement.
func openPackages(packages []*order.Package) []*order.Package {
	open := make([]*order.Package, 0, len(packages))
	for _, p := range packages {
		if p.Status().IsUpdatable() {
			open = append(open, p)
		}
	}
	return open
}

func packageIDs(packages []*order.Package) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(packages))
	for _, p := range packages {
		ids = append(ids, p.ID())
	}
	return ids
}

func packageStatuses(packages []*order.Package) []order.Status {
	statuses := make([]order.Status, 0, len(packages))
	for _, p := range packages {
		statuses = append(statuses, p.Status())
	}
	return statuses
}
