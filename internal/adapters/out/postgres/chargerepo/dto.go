// Package chargerepo persists package charges. The foreign key to packages
// has no cascade, so charges must be deleted before their package.
package chargerepo

import (
	"orderflow/internal/adapters/out/postgres/packagerepo"
	"orderflow/internal/adapters/out/postgres/pgutil"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ChargeDTO struct {
	ID                uuid.UUID               `gorm:"type:uuid;primaryKey"`
	PackageID         uuid.UUID               `gorm:"type:uuid;not null;index"`
	Package           *packagerepo.PackageDTO `gorm:"foreignKey:PackageID;constraint:OnDelete:RESTRICT"`
	Type              string                  `gorm:"type:varchar(16);not null"`
	Status            string                  `gorm:"type:varchar(8);not null"`
	Amount            decimal.Decimal         `gorm:"type:numeric(12,2);not null"`
	TransactionAmount decimal.Decimal         `gorm:"type:numeric(12,2);not null"`
}

func (ChargeDTO) TableName() string {
	return "charges"
}

func fromDomain(c *order.Charge) ChargeDTO {
	return ChargeDTO{
		ID:                c.ID().Bytes(),
		PackageID:         c.PackageID().Bytes(),
		Type:              string(c.Type()),
		Status:            string(c.Status()),
		Amount:            c.Amount(),
		TransactionAmount: c.TransactionAmount(),
	}
}

func toDomain(dto ChargeDTO) (*order.Charge, error) {
	id, err := pgutil.KernelUUID(dto.ID)
	if err != nil {
		return nil, err
	}
	packageID, err := pgutil.KernelUUID(dto.PackageID)
	if err != nil {
		return nil, err
	}
	return order.RestoreCharge(
		id,
		packageID,
		order.ChargeType(dto.Type),
		order.ChargeStatus(dto.Status),
		dto.Amount,
		dto.TransactionAmount,
	)
}
