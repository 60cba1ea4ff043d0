package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// BusinessHourService checks pick-up starts against the customer's
// opening hours. Failures unwrap to businesshours.ErrNoOrder* sentinels.
type BusinessHourService interface {
	ValidateBusinessHours(ctx context.Context, packages []*order.Package, customerID kernel.UUID) error
}

// PricingService computes DELIVERY_FEE charges. It returns the charges and
// leaves persisting them to the caller.
type PricingService interface {
	CreateDeliveryFees(ctx context.Context, o *order.DeliveryOrder, packages []*order.Package) ([]*order.Charge, error)
}

// WebPush is a notification addressed to all of a customer's devices.
type WebPush struct {
	CustomerID kernel.UUID
	Title      string
	Body       string
	Data       map[string]string
}

type NotificationGateway interface {
	SendSMS(ctx context.Context, text, phoneNumber string) error

	// SendWebPush never fails the caller; delivery errors are logged by the adapter.
	SendWebPush(ctx context.Context, push WebPush)
}

type DeliveryAssignmentGateway interface {
	CancelAssignment(ctx context.Context, assignmentID kernel.UUID) error
}
