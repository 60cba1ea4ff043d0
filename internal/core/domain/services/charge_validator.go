package services

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

var (
	ErrNoPackages          = errs.NewValueIsRequiredError("packages")
	ErrDeliveryFeeNotFound = errs.NewValueIsRequiredError("delivery fee not found")
)

// ChargeValidator checks that an order is ready to be placed: it has at
// least one package, each package names both parties and a size, and each
// package has a DELIVERY_FEE charge. A missing fee means pricing has not
// run for that package yet.
type ChargeValidator struct{}

func NewChargeValidator() ChargeValidator {
	return ChargeValidator{}
}

func (ChargeValidator) Validate(packages []*order.Package, charges []*order.Charge) error {
	if len(packages) == 0 {
		return ErrNoPackages
	}

	feeByPackage := make(map[string]bool, len(charges))
	for _, c := range charges {
		if c.IsDeliveryFee() {
			feeByPackage[c.PackageID().String()] = true
		}
	}

	var errList []error
	for _, p := range packages {
		if err := validatePackageFields(p); err != nil {
			errList = append(errList, err)
		}
		if !feeByPackage[p.ID().String()] {
			errList = append(errList, fmt.Errorf("package %s: %w", p.ID(), ErrDeliveryFeeNotFound))
		}
	}
	return errors.Join(errList...)
}

func validatePackageFields(p *order.Package) error {
	var missing []error
	if p.FromContactID() == nil {
		missing = append(missing, errs.NewValueIsRequiredError("fromContact"))
	}
	if p.ToContactID() == nil {
		missing = append(missing, errs.NewValueIsRequiredError("toContact"))
	}
	if p.FromAddressID() == nil {
		missing = append(missing, errs.NewValueIsRequiredError("fromAddress"))
	}
	if p.ToAddressID() == nil {
		missing = append(missing, errs.NewValueIsRequiredError("toAddress"))
	}
	if p.Size() == "" {
		missing = append(missing, errs.NewValueIsRequiredError("size"))
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("package %s: %w", p.ID(), errors.Join(missing...))
}
