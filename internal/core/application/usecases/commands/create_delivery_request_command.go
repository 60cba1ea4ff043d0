package commands

import (
	"errors"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrCreateDeliveryRequestCommandIsNotConstructed = errors.New(
	"CreateDeliveryRequestCommand must be created via NewCreateDeliveryRequestCommand constructor",
)

// CreateDeliveryRequestCommand starts a customer-initiated request: the
// customer knows the recipient's phone but not their address, and the
// recipient is asked for it by SMS.
type CreateDeliveryRequestCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	customerID       kernel.UUID
	branchID         *kernel.UUID
	isCustomerPaying bool
	recipientPhone   string
	recipientName    string
	details          order.PackageDetails

	guard guard.ConstructorGuard
}

// NewCreateDeliveryRequestCommand takes the sender side and package data in
// details; its recipient fields are ignored.
func NewCreateDeliveryRequestCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	branchID *kernel.UUID,
	isCustomerPaying bool,
	recipientPhone string,
	recipientName string,
	details order.PackageDetails,
) (CreateDeliveryRequestCommand, error) {
	var phoneErr error
	if strings.TrimSpace(recipientPhone) == "" {
		phoneErr = errs.NewValueIsRequiredError("recipientPhone")
	}
	if err := errors.Join(orderID.Validate(), customerID.Validate(), phoneErr); err != nil {
		return CreateDeliveryRequestCommand{}, err
	}

	details.ToContactID = nil
	details.ToAddressID = nil
	return CreateDeliveryRequestCommand{
		orderID:          orderID,
		customerID:       customerID,
		branchID:         branchID,
		isCustomerPaying: isCustomerPaying,
		recipientPhone:   strings.TrimSpace(recipientPhone),
		recipientName:    recipientName,
		details:          details,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c CreateDeliveryRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryRequestCommandIsNotConstructed)
}

func (c CreateDeliveryRequestCommand) OrderID() kernel.UUID          { return c.orderID }
func (c CreateDeliveryRequestCommand) CustomerID() kernel.UUID       { return c.customerID }
func (c CreateDeliveryRequestCommand) BranchID() *kernel.UUID        { return c.branchID }
func (c CreateDeliveryRequestCommand) IsCustomerPaying() bool        { return c.isCustomerPaying }
func (c CreateDeliveryRequestCommand) RecipientPhone() string        { return c.recipientPhone }
func (c CreateDeliveryRequestCommand) RecipientName() string         { return c.recipientName }
func (c CreateDeliveryRequestCommand) Details() order.PackageDetails { return c.details }
