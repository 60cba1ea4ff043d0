package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/clock"
)

// DuplicateOrderCommandHandler re-orders a PLACED or COMPLETE order.
//
// Every package that was not CANCELED is copied. Its parties are resolved
// from the source's snapshots back to the saved records they came from,
// so edits made since then are picked up. Only DELIVERY_FEE charges are
// copied, as UNPAID. The new order is placed in the same transaction.
type DuplicateOrderCommandHandler struct {
	uowFactory UoWFactory
	workflow   OrderPlacementWorkflow
	clock      clock.Clock
}

func NewDuplicateOrderCommandHandler(
	uowFactory UoWFactory,
	workflow OrderPlacementWorkflow,
	clk clock.Clock,
) DuplicateOrderCommandHandler {
	return DuplicateOrderCommandHandler{uowFactory: uowFactory, workflow: workflow, clock: clk}
}

func (h DuplicateOrderCommandHandler) Handle(ctx context.Context, cmd DuplicateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.clock.Now()
	source, err := uow.OrderRepository().Get(ctx, cmd.SourceOrderID())
	if err != nil {
		return err
	}
	dup, err := source.Duplicate(cmd.NewOrderID(), now)
	if err != nil {
		return err
	}
	if err = uow.OrderRepository().Add(ctx, dup); err != nil {
		return err
	}

	sourcePackages, err := uow.PackageRepository().GetByOrder(ctx, source.ID())
	if err != nil {
		return err
	}
	sourceCharges, err := uow.ChargeRepository().GetByPackages(ctx, packageIDs(sourcePackages))
	if err != nil {
		return err
	}
	feesByPackage := make(map[string][]*order.Charge)
	for _, c := range sourceCharges {
		if c.IsDeliveryFee() {
			feesByPackage[c.PackageID().String()] = append(feesByPackage[c.PackageID().String()], c)
		}
	}

	var (
		newPackages []*order.Package
		newCharges  []*order.Charge
	)
	for _, sp := range sourcePackages {
		if sp.Status() == order.Canceled {
			continue
		}

		np, dupErr := h.duplicatePackage(ctx, uow, sp, dup.ID(), cmd.PickUpStart(), now)
		if dupErr != nil {
			return dupErr
		}
		newPackages = append(newPackages, np)

		for _, fee := range feesByPackage[sp.ID().String()] {
			nc, chargeErr := fee.DuplicateFor(kernel.NewUUID(), np.ID())
			if chargeErr != nil {
				return chargeErr
			}
			newCharges = append(newCharges, nc)
		}
	}

	if err = uow.PackageRepository().Add(ctx, newPackages...); err != nil {
		return err
	}
	if err = uow.ChargeRepository().Add(ctx, newCharges...); err != nil {
		return err
	}

	if err = h.workflow.Place(ctx, uow, dup); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h DuplicateOrderCommandHandler) duplicatePackage(
	ctx context.Context,
	uow UoW,
	source *order.Package,
	orderID kernel.UUID,
	pickUpStart *time.Time,
	now time.Time,
) (*order.Package, error) {
	tn, err := newUniqueTrackingNumber(ctx, uow.PackageRepository())
	if err != nil {
		return nil, err
	}
	np, err := source.DuplicateFor(kernel.NewUUID(), orderID, tn, now)
	if err != nil {
		return nil, err
	}

	if err = repointToOrigins(ctx, uow.ContactAddressRepository(), source, np); err != nil {
		return nil, err
	}
	if pickUpStart != nil {
		np.SetPickupWindow(*pickUpStart)
	}
	return np, nil
}

// repointToOrigins points target at the saved records behind source's
// contact and address references.
func repointToOrigins(ctx context.Context, repo ports.ContactAddressRepository, source, target *order.Package) error {
	if source.FromContactID() == nil || source.ToContactID() == nil ||
		source.FromAddressID() == nil || source.ToAddressID() == nil {
		return nil
	}

	fromContact, err := repo.GetContact(ctx, *source.FromContactID())
	if err != nil {
		return err
	}
	toContact, err := repo.GetContact(ctx, *source.ToContactID())
	if err != nil {
		return err
	}
	fromAddress, err := repo.GetAddress(ctx, *source.FromAddressID())
	if err != nil {
		return err
	}
	toAddress, err := repo.GetAddress(ctx, *source.ToAddressID())
	if err != nil {
		return err
	}

	target.Repoint(fromContact.OriginID(), toContact.OriginID(), fromAddress.OriginID(), toAddress.OriginID())
	return nil
}
