package order

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrChargeIsNotConstructed = errors.New("Charge must be created via NewCharge constructor")

type ChargeType string

const (
	ChargeDeliveryFee ChargeType = "DELIVERY_FEE"
	ChargeWaitingFee  ChargeType = "WAITING_FEE"
	ChargeReturnFee   ChargeType = "RETURN_FEE"
	ChargeOther       ChargeType = "OTHER"
)

func (t ChargeType) Validate() error {
	switch t {
	case ChargeDeliveryFee, ChargeWaitingFee, ChargeReturnFee, ChargeOther:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("charge type", fmt.Errorf("%q is not a valid charge type", string(t)))
	}
}

type ChargeStatus string

const (
	ChargeUnpaid  ChargeStatus = "UNPAID"
	ChargePartial ChargeStatus = "PARTIAL"
	ChargePaid    ChargeStatus = "PAID"
)

func (s ChargeStatus) Validate() error {
	switch s {
	case ChargeUnpaid, ChargePartial, ChargePaid:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("charge status", fmt.Errorf("%q is not a valid charge status", string(s)))
	}
}

// Charge is a monetary line item attached to a package.
type Charge struct {
	id                kernel.UUID
	packageID         kernel.UUID
	chargeType        ChargeType
	status            ChargeStatus
	amount            decimal.Decimal
	transactionAmount decimal.Decimal

	guard guard.ConstructorGuard
}

// NewCharge creates an UNPAID charge with no settled amount.
func NewCharge(id, packageID kernel.UUID, chargeType ChargeType, amount decimal.Decimal) (*Charge, error) {
	return RestoreCharge(id, packageID, chargeType, ChargeUnpaid, amount, decimal.Zero)
}

func RestoreCharge(
	id, packageID kernel.UUID,
	chargeType ChargeType,
	status ChargeStatus,
	amount, transactionAmount decimal.Decimal,
) (*Charge, error) {
	var amountErr error
	if amount.IsNegative() {
		amountErr = errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is negative", amount))
	}

	if err := errors.Join(
		id.Validate(),
		packageID.Validate(),
		chargeType.Validate(),
		status.Validate(),
		amountErr,
	); err != nil {
		return nil, err
	}

	return &Charge{
		id:                id,
		packageID:         packageID,
		chargeType:        chargeType,
		status:            status,
		amount:            amount,
		transactionAmount: transactionAmount,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func (c *Charge) Validate() error {
	if c == nil {
		return ErrChargeIsNotConstructed
	}
	return c.guard.Validate(ErrChargeIsNotConstructed)
}

func (c *Charge) ID() kernel.UUID                    { return c.id }
func (c *Charge) PackageID() kernel.UUID             { return c.packageID }
func (c *Charge) Type() ChargeType                   { return c.chargeType }
func (c *Charge) Status() ChargeStatus               { return c.status }
func (c *Charge) Amount() decimal.Decimal            { return c.amount }
func (c *Charge) TransactionAmount() decimal.Decimal { return c.transactionAmount }

func (c *Charge) IsDeliveryFee() bool {
	return c.chargeType == ChargeDeliveryFee
}

// MarkPaid settles the charge in full. Calling it on a paid charge is a no-op.
func (c *Charge) MarkPaid() {
	c.status = ChargePaid
	c.transactionAmount = c.amount
}

// DuplicateFor copies type and amount onto a new package as an UNPAID charge.
func (c *Charge) DuplicateFor(newID, packageID kernel.UUID) (*Charge, error) {
	return NewCharge(newID, packageID, c.chargeType, c.amount)
}
