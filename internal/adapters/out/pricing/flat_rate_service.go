// Package pricing computes delivery fees from a flat per-size tariff.
package pricing

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Tariff maps sizes to fees. Packages created without a size are priced as
// SMALL; EXPRESS packages pay the surcharge on top.
type Tariff struct {
	Small            decimal.Decimal
	Medium           decimal.Decimal
	Large            decimal.Decimal
	XLarge           decimal.Decimal
	ExpressSurcharge decimal.Decimal
}

// FlatRateService implements ports.PricingService.
type FlatRateService struct {
	fees      map[order.Size]decimal.Decimal
	surcharge decimal.Decimal
}

func NewFlatRateService(t Tariff) (*FlatRateService, error) {
	fees := map[order.Size]decimal.Decimal{
		order.SizeSmall:  t.Small,
		order.SizeMedium: t.Medium,
		order.SizeLarge:  t.Large,
		order.SizeXLarge: t.XLarge,
	}
	for size, fee := range fees {
		if fee.IsNegative() {
			return nil, errs.NewValueIsOutOfRangeError("fee "+string(size), fee.String(), 0, "unbounded")
		}
	}
	if t.ExpressSurcharge.IsNegative() {
		return nil, errs.NewValueIsOutOfRangeError("express surcharge", t.ExpressSurcharge.String(), 0, "unbounded")
	}
	return &FlatRateService{fees: fees, surcharge: t.ExpressSurcharge}, nil
}

func (s *FlatRateService) CreateDeliveryFees(
	_ context.Context,
	_ *order.DeliveryOrder,
	packages []*order.Package,
) ([]*order.Charge, error) {
	charges := make([]*order.Charge, 0, len(packages))
	for _, p := range packages {
		c, err := order.NewCharge(kernel.NewUUID(), p.ID(), order.ChargeDeliveryFee, s.Quote(p.Size(), p.Priority()))
		if err != nil {
			return nil, err
		}
		charges = append(charges, c)
	}
	return charges, nil
}

func (s *FlatRateService) Quote(size order.Size, priority order.Priority) decimal.Decimal {
	fee, ok := s.fees[size]
	if !ok {
		fee = s.fees[order.SizeSmall]
	}
	if priority == order.PriorityExpress {
		fee = fee.Add(s.surcharge)
	}
	return fee
}
