// Package eventrepo stores the append-only package event log. Rows carry no
// foreign key so that deleting a draft package keeps its history.
package eventrepo

import (
	"time"

	"orderflow/internal/adapters/out/postgres/pgutil"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type EventDTO struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey"`
	PackageID    uuid.UUID         `gorm:"type:uuid;not null;index:idx_package_events_package_created,priority:1"`
	Name         string            `gorm:"type:varchar(48);not null"`
	AssignmentID *uuid.UUID        `gorm:"type:uuid"`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb;not null"`
	CreatedAt    time.Time         `gorm:"not null;index:idx_package_events_package_created,priority:2"`
}

func (EventDTO) TableName() string {
	return "package_events"
}

func fromDomain(e *order.Event) EventDTO {
	return EventDTO{
		ID:           e.ID().Bytes(),
		PackageID:    e.PackageID().Bytes(),
		Name:         string(e.Name()),
		AssignmentID: pgutil.UUIDPtr(e.AssignmentID()),
		Metadata:     datatypes.JSONMap(e.Metadata()),
		CreatedAt:    e.CreatedAt(),
	}
}

func toDomain(dto EventDTO) (*order.Event, error) {
	id, err := pgutil.KernelUUID(dto.ID)
	if err != nil {
		return nil, err
	}
	packageID, err := pgutil.KernelUUID(dto.PackageID)
	if err != nil {
		return nil, err
	}
	assignmentID, err := pgutil.KernelUUIDPtr(dto.AssignmentID)
	if err != nil {
		return nil, err
	}
	return order.NewEvent(id, packageID, order.EventName(dto.Name), assignmentID, dto.Metadata, dto.CreatedAt)
}
