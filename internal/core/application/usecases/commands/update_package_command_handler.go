package commands

import (
	"context"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/clock"
)

// UpdatePackageCommandHandler applies a partial update to one package.
// A new pick-up start goes through the same bounds and business-hours
// checks as placement. A privileged status change re-evaluates the order.
type UpdatePackageCommandHandler struct {
	uowFactory     PackageUoWFactory
	pickupResolver services.PickupTimeResolver
	businessHours  ports.BusinessHourService
	clock          clock.Clock
}

func NewUpdatePackageCommandHandler(
	uowFactory PackageUoWFactory,
	pickupResolver services.PickupTimeResolver,
	businessHours ports.BusinessHourService,
	clk clock.Clock,
) UpdatePackageCommandHandler {
	return UpdatePackageCommandHandler{
		uowFactory:     uowFactory,
		pickupResolver: pickupResolver,
		businessHours:  businessHours,
		clock:          clk,
	}
}

func (h UpdatePackageCommandHandler) Handle(ctx context.Context, cmd UpdatePackageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	patch := cmd.Patch()
	now := h.clock.Now()
	if patch.TouchesPickupTime() {
		if err := h.pickupResolver.Check(*patch.PickUpStart, now); err != nil {
			return err
		}
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	p, o, err := lockPackage(ctx, uow, cmd.PackageID())
	if err != nil {
		return err
	}

	if err = p.ApplyPatch(patch, cmd.IsPrivileged()); err != nil {
		return err
	}
	if patch.TouchesPickupTime() {
		if err = h.businessHours.ValidateBusinessHours(ctx, []*order.Package{p}, o.CustomerID()); err != nil {
			return err
		}
	}

	if err = uow.PackageRepository().Update(ctx, p); err != nil {
		return err
	}
	if patch.Status != nil {
		if err = reconcileOrder(ctx, uow, o); err != nil {
			return err
		}
	}

	if cmd.IsPrivileged() {
		e, eventErr := order.NewPackageEvent(p, order.EventPackageUpdatedByStaff, nil, now)
		if eventErr != nil {
			return eventErr
		}
		if err = uow.PackageEventRepository().Append(ctx, e); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
