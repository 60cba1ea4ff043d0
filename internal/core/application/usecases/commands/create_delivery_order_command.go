package commands

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateDeliveryOrderCommandIsNotConstructed = errors.New(
	"CreateDeliveryOrderCommand must be created via NewCreateDeliveryOrderCommand constructor",
)

type DiscountRequest struct {
	Type   order.DiscountType
	Amount decimal.Decimal
}

// CreateDeliveryOrderCommand creates a STARTED order with its packages.
// Packages reference saved contacts and addresses by id.
type CreateDeliveryOrderCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	customerID       kernel.UUID
	branchID         *kernel.UUID
	agentID          *kernel.UUID
	isCustomerPaying bool
	packages         []order.PackageDetails
	discounts        []DiscountRequest

	guard guard.ConstructorGuard
}

func NewCreateDeliveryOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	branchID *kernel.UUID,
	agentID *kernel.UUID,
	isCustomerPaying bool,
	packages []order.PackageDetails,
	discounts []DiscountRequest,
) (CreateDeliveryOrderCommand, error) {
	var packagesErr error
	if len(packages) == 0 {
		packagesErr = errs.NewValueIsRequiredError("packages")
	}

	seen := make(map[order.DiscountType]bool, len(discounts))
	var discountErr error
	for _, d := range discounts {
		if seen[d.Type] {
			discountErr = errs.NewValueIsInvalidErrorWithCause("discounts", fmt.Errorf("type %q appears twice", string(d.Type)))
			break
		}
		seen[d.Type] = true
	}

	if err := errors.Join(orderID.Validate(), customerID.Validate(), packagesErr, discountErr); err != nil {
		return CreateDeliveryOrderCommand{}, err
	}

	return CreateDeliveryOrderCommand{
		orderID:          orderID,
		customerID:       customerID,
		branchID:         branchID,
		agentID:          agentID,
		isCustomerPaying: isCustomerPaying,
		packages:         packages,
		discounts:        discounts,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c CreateDeliveryOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryOrderCommandIsNotConstructed)
}

func (c CreateDeliveryOrderCommand) OrderID() kernel.UUID             { return c.orderID }
func (c CreateDeliveryOrderCommand) CustomerID() kernel.UUID          { return c.customerID }
func (c CreateDeliveryOrderCommand) BranchID() *kernel.UUID           { return c.branchID }
func (c CreateDeliveryOrderCommand) AgentID() *kernel.UUID            { return c.agentID }
func (c CreateDeliveryOrderCommand) IsCustomerPaying() bool           { return c.isCustomerPaying }
func (c CreateDeliveryOrderCommand) Packages() []order.PackageDetails { return c.packages }
func (c CreateDeliveryOrderCommand) Discounts() []DiscountRequest     { return c.discounts }
