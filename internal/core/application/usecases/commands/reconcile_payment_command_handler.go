package commands

import (
	"context"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

// ReconcilePaymentCommandHandler applies a payment callback. A failed
// payment changes nothing. A successful one marks the charges PAID and the
// discounts APPLIED, then places the order if it is still open.
type ReconcilePaymentCommandHandler struct {
	uowFactory UoWFactory
	workflow   OrderPlacementWorkflow
}

func NewReconcilePaymentCommandHandler(uowFactory UoWFactory, workflow OrderPlacementWorkflow) ReconcilePaymentCommandHandler {
	return ReconcilePaymentCommandHandler{uowFactory: uowFactory, workflow: workflow}
}

func (h ReconcilePaymentCommandHandler) Handle(ctx context.Context, cmd ReconcilePaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if cmd.Outcome() == PaymentFailure {
		return nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.payCharges(ctx, uow, o, cmd.ChargeIDs()); err != nil {
		return err
	}
	if err = h.applyDiscounts(ctx, uow, o, cmd.DiscountIDs()); err != nil {
		return err
	}

	if o.Status().IsUpdatable() {
		if err = h.workflow.Place(ctx, uow, o); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func (h ReconcilePaymentCommandHandler) payCharges(
	ctx context.Context,
	uow UoW,
	o *order.DeliveryOrder,
	ids []kernel.UUID,
) error {
	packages, err := uow.PackageRepository().GetByOrder(ctx, o.ID())
	if err != nil {
		return err
	}
	owned := make(map[string]bool, len(packages))
	for _, p := range packages {
		owned[p.ID().String()] = true
	}

	charges, err := uow.ChargeRepository().GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if err = requireAllFound("charge", ids, len(charges)); err != nil {
		return err
	}
	for _, c := range charges {
		if !owned[c.PackageID().String()] {
			return fmt.Errorf("charge %s: %w", c.ID(), ErrChargeOutsideOrder)
		}
		c.MarkPaid()
	}
	return uow.ChargeRepository().Update(ctx, charges...)
}

func (h ReconcilePaymentCommandHandler) applyDiscounts(
	ctx context.Context,
	uow UoW,
	o *order.DeliveryOrder,
	ids []kernel.UUID,
) error {
	if len(ids) == 0 {
		return nil
	}
	discounts, err := uow.DiscountRepository().GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if err = requireAllFound("discount", ids, len(discounts)); err != nil {
		return err
	}
	for _, d := range discounts {
		if !d.OrderID().IsEqual(o.ID()) {
			return fmt.Errorf("discount %s: %w", d.ID(), ErrDiscountOutsideOrder)
		}
		d.Apply()
	}
	return uow.DiscountRepository().Update(ctx, discounts...)
}

func requireAllFound(name string, ids []kernel.UUID, found int) error {
	if found != len(ids) {
		return errs.NewObjectNotFoundError(name, fmt.Sprintf("%d of %d ids", len(ids)-found, len(ids)))
	}
	return nil
}
