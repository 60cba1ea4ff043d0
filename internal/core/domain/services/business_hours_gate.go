package services

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/businesshours"
	"orderflow/internal/core/domain/model/order"
)

// BusinessHoursGate checks every package's pick-up start against a
// schedule. Packages without a start are skipped; resolve them first.
type BusinessHoursGate struct{}

func NewBusinessHoursGate() BusinessHoursGate {
	return BusinessHoursGate{}
}

func (BusinessHoursGate) Validate(schedule businesshours.Schedule, packages []*order.Package) error {
	var errList []error
	for _, p := range packages {
		start := p.PickUpStart()
		if start == nil {
			continue
		}
		if err := schedule.Check(*start); err != nil {
			errList = append(errList, fmt.Errorf("package %s: %w", p.TrackingNumber(), err))
		}
	}
	return errors.Join(errList...)
}
