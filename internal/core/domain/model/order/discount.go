package order

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrDiscountIsNotConstructed = errors.New("Discount must be created via NewDiscount constructor")

// DiscountType is a free-form code such as "FIRST_ORDER" or "PROMO".
// An order carries at most one discount per type.
type DiscountType string

type DiscountStatus string

const (
	DiscountPending DiscountStatus = "PENDING"
	DiscountApplied DiscountStatus = "APPLIED"
)

func (s DiscountStatus) Validate() error {
	switch s {
	case DiscountPending, DiscountApplied:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("discount status", fmt.Errorf("%q is not a valid discount status", string(s)))
	}
}

// Discount is a reduction attached to an order, applied when the order's
// payment succeeds.
type Discount struct {
	id           kernel.UUID
	orderID      kernel.UUID
	discountType DiscountType
	status       DiscountStatus
	amount       decimal.Decimal

	guard guard.ConstructorGuard
}

func NewDiscount(id, orderID kernel.UUID, discountType DiscountType, amount decimal.Decimal) (*Discount, error) {
	return RestoreDiscount(id, orderID, discountType, DiscountPending, amount)
}

func RestoreDiscount(
	id, orderID kernel.UUID,
	discountType DiscountType,
	status DiscountStatus,
	amount decimal.Decimal,
) (*Discount, error) {
	var typeErr error
	if discountType == "" {
		typeErr = errs.NewValueIsRequiredError("discount type")
	}
	var amountErr error
	if amount.IsNegative() {
		amountErr = errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is negative", amount))
	}

	if err := errors.Join(id.Validate(), orderID.Validate(), typeErr, status.Validate(), amountErr); err != nil {
		return nil, err
	}

	return &Discount{
		id:           id,
		orderID:      orderID,
		discountType: discountType,
		status:       status,
		amount:       amount,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (d *Discount) Validate() error {
	if d == nil {
		return ErrDiscountIsNotConstructed
	}
	return d.guard.Validate(ErrDiscountIsNotConstructed)
}

func (d *Discount) ID() kernel.UUID         { return d.id }
func (d *Discount) OrderID() kernel.UUID    { return d.orderID }
func (d *Discount) Type() DiscountType      { return d.discountType }
func (d *Discount) Status() DiscountStatus  { return d.status }
func (d *Discount) Amount() decimal.Decimal { return d.amount }

// Apply marks the discount as consumed. Idempotent.
func (d *Discount) Apply() {
	d.status = DiscountApplied
}

// EnsureUniqueType rejects a second discount of the same type on one order.
func EnsureUniqueType(existing []*Discount, discountType DiscountType) error {
	for _, d := range existing {
		if d.discountType == discountType {
			return errs.NewValueIsInvalidErrorWithCause(
				"discount type",
				fmt.Errorf("order already has a %q discount", string(discountType)),
			)
		}
	}
	return nil
}
