package commands

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/clock"
)

// CreateDeliveryOrderCommandHandler creates a STARTED order, its packages
// with fresh tracking numbers, their DELIVERY_FEE charges from pricing, and
// any PENDING discounts. Placement is a separate step.
type CreateDeliveryOrderCommandHandler struct {
	uowFactory UoWFactory
	pricing    ports.PricingService
	clock      clock.Clock
}

func NewCreateDeliveryOrderCommandHandler(
	uowFactory UoWFactory,
	pricing ports.PricingService,
	clk clock.Clock,
) CreateDeliveryOrderCommandHandler {
	return CreateDeliveryOrderCommandHandler{uowFactory: uowFactory, pricing: pricing, clock: clk}
}

func (h CreateDeliveryOrderCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryOrderCommand) error {
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
	o, err := order.NewDeliveryOrder(
		cmd.OrderID(), cmd.CustomerID(), cmd.BranchID(), cmd.AgentID(), order.Started, cmd.IsCustomerPaying(), now,
	)
	if err != nil {
		return err
	}
	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	packages := make([]*order.Package, 0, len(cmd.Packages()))
	for _, details := range cmd.Packages() {
		if err = requireParties(ctx, uow.ContactAddressRepository(), details); err != nil {
			return err
		}
		tn, tnErr := newUniqueTrackingNumber(ctx, uow.PackageRepository())
		if tnErr != nil {
			return tnErr
		}
		p, pkgErr := order.NewPackage(kernel.NewUUID(), o.ID(), tn, order.Started, details, now)
		if pkgErr != nil {
			return pkgErr
		}
		packages = append(packages, p)
	}
	if err = uow.PackageRepository().Add(ctx, packages...); err != nil {
		return err
	}

	charges, err := h.pricing.CreateDeliveryFees(ctx, o, packages)
	if err != nil {
		return err
	}
	if err = uow.ChargeRepository().Add(ctx, charges...); err != nil {
		return err
	}

	if err = h.addDiscounts(ctx, uow, o, cmd.Discounts()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h CreateDeliveryOrderCommandHandler) addDiscounts(
	ctx context.Context,
	uow UoW,
	o *order.DeliveryOrder,
	requests []DiscountRequest,
) error {
	if len(requests) == 0 {
		return nil
	}
	discounts := make([]*order.Discount, 0, len(requests))
	for _, r := range requests {
		if err := order.EnsureUniqueType(discounts, r.Type); err != nil {
			return err
		}
		d, err := order.NewDiscount(kernel.NewUUID(), o.ID(), r.Type, r.Amount)
		if err != nil {
			return err
		}
		discounts = append(discounts, d)
	}
	return uow.DiscountRepository().Add(ctx, discounts...)
}

// requireParties fails with errs.ObjectNotFoundError for any dangling
// contact or address reference.
func requireParties(ctx context.Context, repo ports.ContactAddressRepository, d order.PackageDetails) error {
	for _, id := range []*kernel.UUID{d.FromContactID, d.ToContactID} {
		if id == nil {
			continue
		}
		if _, err := repo.GetContact(ctx, *id); err != nil {
			return err
		}
	}
	for _, id := range []*kernel.UUID{d.FromAddressID, d.ToAddressID} {
		if id == nil {
			continue
		}
		if _, err := repo.GetAddress(ctx, *id); err != nil {
			return err
		}
	}
	return nil
}
