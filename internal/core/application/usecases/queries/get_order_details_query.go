package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderDetailsQueryIsNotConstructed = errors.New(
	"GetOrderDetailsQuery must be created via NewGetOrderDetailsQuery constructor",
)

// GetOrderDetailsQuery reads an order together with its packages, their
// charges and the order's discounts.
type GetOrderDetailsQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderDetailsQuery(orderID kernel.UUID) (GetOrderDetailsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderDetailsQuery{}, err
	}
	return GetOrderDetailsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderDetailsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDetailsQueryIsNotConstructed)
}

func (q GetOrderDetailsQuery) OrderID() kernel.UUID {
	return q.orderID
}

type GetOrderDetailsQueryResponse struct {
	ID               kernel.UUID
	CustomerID       kernel.UUID
	BranchID         *kernel.UUID
	Status           string
	PlacedAt         *time.Time
	IsCustomerPaying bool
	CreatedAt        time.Time
	Packages         []PackageDetails
	Discounts        []DiscountDetails
}

type PackageDetails struct {
	ID             kernel.UUID
	TrackingNumber string
	Status         string
	Size           string
	Priority       string
	FromContactID  *kernel.UUID
	ToContactID    *kernel.UUID
	FromAddressID  *kernel.UUID
	ToAddressID    *kernel.UUID
	PickUpStart    *time.Time
	PickUpEnd      *time.Time
	DriverID       *kernel.UUID
	CancelReason   string
	Charges        []ChargeDetails
}

type ChargeDetails struct {
	ID                kernel.UUID
	Type              string
	Status            string
	Amount            decimal.Decimal
	TransactionAmount decimal.Decimal
}

type DiscountDetails struct {
	ID     kernel.UUID
	Type   string
	Status string
	Amount decimal.Decimal
}
