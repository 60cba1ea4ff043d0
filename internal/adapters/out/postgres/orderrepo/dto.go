// Package orderrepo persists delivery orders. The version column backs the
// optimistic check in Update.
package orderrepo

import (
	"time"

	"orderflow/internal/adapters/out/postgres/pgutil"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the row shape of the orders table.
type OrderDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	BranchID         *uuid.UUID `gorm:"type:uuid"`
	AgentID          *uuid.UUID `gorm:"type:uuid"`
	Status           string     `gorm:"type:varchar(16);not null;index"`
	PlacedAt         *time.Time
	IsCustomerPaying bool
	CreatedAt        time.Time `gorm:"not null"`
	Version          int       `gorm:"not null;default:0"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.DeliveryOrder) OrderDTO {
	return OrderDTO{
		ID:               o.ID().Bytes(),
		CustomerID:       o.CustomerID().Bytes(),
		BranchID:         pgutil.UUIDPtr(o.BranchID()),
		AgentID:          pgutil.UUIDPtr(o.AgentID()),
		Status:           string(o.Status()),
		PlacedAt:         o.PlacedAt(),
		IsCustomerPaying: o.IsCustomerPaying(),
		CreatedAt:        o.CreatedAt(),
		Version:          o.Version(),
	}
}

func toDomain(dto OrderDTO) (*order.DeliveryOrder, error) {
	id, err := pgutil.KernelUUID(dto.ID)
	if err != nil {
		return nil, err
	}
	customerID, err := pgutil.KernelUUID(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	branchID, err := pgutil.KernelUUIDPtr(dto.BranchID)
	if err != nil {
		return nil, err
	}
	agentID, err := pgutil.KernelUUIDPtr(dto.AgentID)
	if err != nil {
		return nil, err
	}

	var placedAt *time.Time
	if dto.PlacedAt != nil {
		at := dto.PlacedAt.UTC()
		placedAt = &at
	}

	return order.RestoreDeliveryOrder(
		id,
		customerID,
		branchID,
		agentID,
		order.Status(dto.Status),
		placedAt,
		dto.IsCustomerPaying,
		dto.CreatedAt.UTC(),
		dto.Version,
	)
}
