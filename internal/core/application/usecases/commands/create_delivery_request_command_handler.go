package commands

import (
	"context"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/clock"
)

// DeliveryRequestSMS is the text sent to a recipient. It receives the
// sender name and the package tracking number.
const DeliveryRequestSMS = "%s wants to send you a package (%s). Reply with your delivery address."

// CreateDeliveryRequestCommandHandler creates a REQUEST order with one
// package addressed to a found-or-created recipient contact, and texts the
// recipient. An SMS failure rolls everything back.
type CreateDeliveryRequestCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationGateway
	clock      clock.Clock
}

func NewCreateDeliveryRequestCommandHandler(
	uowFactory UoWFactory,
	notifier ports.NotificationGateway,
	clk clock.Clock,
) CreateDeliveryRequestCommandHandler {
	return CreateDeliveryRequestCommandHandler{uowFactory: uowFactory, notifier: notifier, clock: clk}
}

func (h CreateDeliveryRequestCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryRequestCommand) error {
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

	contacts := uow.ContactAddressRepository()
	details := cmd.Details()
	if err := requireParties(ctx, contacts, details); err != nil {
		return err
	}

	recipient, err := contacts.FindOrCreateContactByPhone(ctx, cmd.CustomerID(), cmd.RecipientPhone(), cmd.RecipientName())
	if err != nil {
		return err
	}
	recipientID := recipient.ID()
	details.ToContactID = &recipientID

	now := h.clock.Now()
	o, err := order.NewDeliveryOrder(cmd.OrderID(), cmd.CustomerID(), cmd.BranchID(), nil, order.Request, cmd.IsCustomerPaying(), now)
	if err != nil {
		return err
	}
	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	tn, err := newUniqueTrackingNumber(ctx, uow.PackageRepository())
	if err != nil {
		return err
	}
	p, err := order.NewPackage(kernel.NewUUID(), o.ID(), tn, order.Request, details, now)
	if err != nil {
		return err
	}
	if err = uow.PackageRepository().Add(ctx, p); err != nil {
		return err
	}

	e, err := order.NewPackageEvent(p, order.EventDeliveryRequested, map[string]any{"recipientPhone": cmd.RecipientPhone()}, now)
	if err != nil {
		return err
	}
	if err = uow.PackageEventRepository().Append(ctx, e); err != nil {
		return err
	}

	senderName, err := h.senderName(ctx, uow, details)
	if err != nil {
		return err
	}
	if err = h.notifier.SendSMS(ctx, fmt.Sprintf(DeliveryRequestSMS, senderName, tn), cmd.RecipientPhone()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h CreateDeliveryRequestCommandHandler) senderName(ctx context.Context, uow UoW, d order.PackageDetails) (string, error) {
	if d.FromContactID == nil {
		return "Someone", nil
	}
	sender, err := uow.ContactAddressRepository().GetContact(ctx, *d.FromContactID)
	if err != nil {
		return "", err
	}
	if name := sender.Fields().Name; name != "" {
		return name, nil
	}
	return "Someone", nil
}
