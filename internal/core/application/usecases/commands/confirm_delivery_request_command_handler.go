package commands

import (
	"context"

	"orderflow/internal/core/domain/model/contact"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/clock"
)

// ConfirmDeliveryRequestCommandHandler stores the recipient's address,
// moves the order and package to PENDING and, after commit, pushes a
// "pending order" notification to the customer. The push never fails the
// command.
type ConfirmDeliveryRequestCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationGateway
	clock      clock.Clock
}

func NewConfirmDeliveryRequestCommandHandler(
	uowFactory UoWFactory,
	notifier ports.NotificationGateway,
	clk clock.Clock,
) ConfirmDeliveryRequestCommandHandler {
	return ConfirmDeliveryRequestCommandHandler{uowFactory: uowFactory, notifier: notifier, clock: clk}
}

func (h ConfirmDeliveryRequestCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryRequestCommand) error {
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

	p, o, err := lockPackage(ctx, uow, cmd.PackageID())
	if err != nil {
		return err
	}
	if o.Status() != order.Request || p.Status() != order.Request || p.ToContactID() == nil {
		return ErrOrderNotAwaitingAddress
	}

	addr, err := contact.NewSavedAddress(kernel.NewUUID(), o.CustomerID(), cmd.Address())
	if err != nil {
		return err
	}
	if err = uow.ContactAddressRepository().AddAddress(ctx, addr); err != nil {
		return err
	}

	p.SetRecipient(*p.ToContactID(), addr.ID())
	if note := cmd.DropOffNote(); note != "" {
		if err = p.ApplyPatch(order.Patch{DropOffNote: &note}, false); err != nil {
			return err
		}
	}
	if err = p.MarkPending(); err != nil {
		return err
	}
	if err = o.MarkPending(); err != nil {
		return err
	}

	if err = uow.PackageRepository().Update(ctx, p); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}
	e, err := order.NewPackageEvent(p, order.EventDeliveryRequestConfirmed, nil, h.clock.Now())
	if err != nil {
		return err
	}
	if err = uow.PackageEventRepository().Append(ctx, e); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.SendWebPush(ctx, ports.WebPush{
		CustomerID: o.CustomerID(),
		Title:      "Pending order",
		Body:       "Your recipient confirmed the address for " + p.TrackingNumber().String() + ".",
		Data:       map[string]string{"orderId": o.ID().String(), "packageId": p.ID().String()},
	})
	return nil
}
