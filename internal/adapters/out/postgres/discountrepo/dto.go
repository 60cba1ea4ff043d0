// Package discountrepo persists order discounts, unique per (order, type).
package discountrepo

import (
	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/adapters/out/postgres/pgutil"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DiscountDTO struct {
	ID      uuid.UUID           `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_discounts_order_type,priority:1"`
	Order   *orderrepo.OrderDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:RESTRICT"`
	Type    string              `gorm:"type:varchar(32);not null;uniqueIndex:idx_discounts_order_type,priority:2"`
	Status  string              `gorm:"type:varchar(8);not null"`
	Amount  decimal.Decimal     `gorm:"type:numeric(12,2);not null"`
}

func (DiscountDTO) TableName() string {
	return "discounts"
}

func fromDomain(d *order.Discount) DiscountDTO {
	return DiscountDTO{
		ID:      d.ID().Bytes(),
		OrderID: d.OrderID().Bytes(),
		Type:    string(d.Type()),
		Status:  string(d.Status()),
		Amount:  d.Amount(),
	}
}

func toDomain(dto DiscountDTO) (*order.Discount, error) {
	id, err := pgutil.KernelUUID(dto.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := pgutil.KernelUUID(dto.OrderID)
	if err != nil {
		return nil, err
	}
	return order.RestoreDiscount(id, orderID, order.DiscountType(dto.Type), order.DiscountStatus(dto.Status), dto.Amount)
}
