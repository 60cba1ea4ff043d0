package commands

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrReconcilePaymentCommandIsNotConstructed = errors.New(
	"ReconcilePaymentCommand must be created via NewReconcilePaymentCommand constructor",
)

type PaymentOutcome string

const (
	PaymentSuccess PaymentOutcome = "SUCCESS"
	PaymentFailure PaymentOutcome = "FAILURE"
)

// ReconcilePaymentCommand is the payment gateway callback: the charges and
// discounts of one order that a payment attempt covered, and its outcome.
type ReconcilePaymentCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	chargeIDs   []kernel.UUID
	discountIDs []kernel.UUID
	outcome     PaymentOutcome

	guard guard.ConstructorGuard
}

func NewReconcilePaymentCommand(
	orderID kernel.UUID,
	chargeIDs []kernel.UUID,
	discountIDs []kernel.UUID,
	outcome PaymentOutcome,
) (ReconcilePaymentCommand, error) {
	var outcomeErr error
	if outcome != PaymentSuccess && outcome != PaymentFailure {
		outcomeErr = errs.NewValueIsInvalidErrorWithCause("payment outcome", fmt.Errorf("%q is unknown", string(outcome)))
	}
	var chargesErr error
	if len(chargeIDs) == 0 {
		chargesErr = errs.NewValueIsRequiredError("chargeIds")
	}
	if err := errors.Join(orderID.Validate(), outcomeErr, chargesErr); err != nil {
		return ReconcilePaymentCommand{}, err
	}

	return ReconcilePaymentCommand{
		orderID:     orderID,
		chargeIDs:   chargeIDs,
		discountIDs: discountIDs,
		outcome:     outcome,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ReconcilePaymentCommand) Validate() error {
	return c.guard.Validate(ErrReconcilePaymentCommandIsNotConstructed)
}

func (c ReconcilePaymentCommand) OrderID() kernel.UUID       { return c.orderID }
func (c ReconcilePaymentCommand) ChargeIDs() []kernel.UUID   { return c.chargeIDs }
func (c ReconcilePaymentCommand) DiscountIDs() []kernel.UUID { return c.discountIDs }
func (c ReconcilePaymentCommand) Outcome() PaymentOutcome    { return c.outcome }
