package commands

import (
	"orderflow/internal/pkg/errs"
)

var (
	ErrPackageAlreadyClosed    = errs.NewValueIsInvalidError("package is already closed")
	ErrPackageNotDeletable     = errs.NewOperationNotPermittedError("package is not deletable")
	ErrOrderNotAwaitingAddress = errs.NewValueIsInvalidError("order is not awaiting a recipient address")
	ErrChargeOutsideOrder      = errs.NewValueIsInvalidError("charge does not belong to order")
	ErrDiscountOutsideOrder    = errs.NewValueIsInvalidError("discount does not belong to order")
	ErrTrackingNumberExhausted = errs.NewValueIsInvalidError("could not generate a unique tracking number")
)
