// Package packagerepo persists packages. Tracking numbers carry a unique
// index; a package row cannot be deleted while charges reference it.
package packagerepo

import (
	"time"

	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/adapters/out/postgres/pgutil"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

type PackageDTO struct {
	ID                  uuid.UUID           `gorm:"type:uuid;primaryKey"`
	OrderID             uuid.UUID           `gorm:"type:uuid;not null;index"`
	Order               *orderrepo.OrderDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:RESTRICT"`
	Status              string              `gorm:"type:varchar(16);not null;index:idx_packages_status_pickup,priority:1"`
	TrackingNumber      string              `gorm:"type:char(13);not null;uniqueIndex"`
	Size                string              `gorm:"type:varchar(8)"`
	Priority            string              `gorm:"type:varchar(16);not null"`
	FromContactID       *uuid.UUID          `gorm:"type:uuid"`
	ToContactID         *uuid.UUID          `gorm:"type:uuid"`
	FromAddressID       *uuid.UUID          `gorm:"type:uuid"`
	ToAddressID         *uuid.UUID          `gorm:"type:uuid"`
	PickUpNote          string
	DropOffNote         string
	StaffNote           string
	PickUpChangeNote    string
	CancelReason        string
	PickUpStart         *time.Time `gorm:"index:idx_packages_status_pickup,priority:2"`
	PickUpEnd           *time.Time
	DriverID            *uuid.UUID `gorm:"type:uuid;index"`
	AssignmentID        *uuid.UUID `gorm:"type:uuid"`
	IsAssignable        bool
	EnableNotifications bool
	CreatedAt           time.Time `gorm:"not null"`
}

func (PackageDTO) TableName() string {
	return "packages"
}

func fromDomain(p *order.Package) PackageDTO {
	s := p.State()
	return PackageDTO{
		ID:                  s.ID.Bytes(),
		OrderID:             s.OrderID.Bytes(),
		Status:              string(s.Status),
		TrackingNumber:      s.TrackingNumber.String(),
		Size:                string(s.Size),
		Priority:            string(s.Priority),
		FromContactID:       pgutil.UUIDPtr(s.FromContactID),
		ToContactID:         pgutil.UUIDPtr(s.ToContactID),
		FromAddressID:       pgutil.UUIDPtr(s.FromAddressID),
		ToAddressID:         pgutil.UUIDPtr(s.ToAddressID),
		PickUpNote:          s.PickUpNote,
		DropOffNote:         s.DropOffNote,
		StaffNote:           s.StaffNote,
		PickUpChangeNote:    s.PickUpChangeNote,
		CancelReason:        s.CancelReason,
		PickUpStart:         s.PickUpStart,
		PickUpEnd:           s.PickUpEnd,
		DriverID:            pgutil.UUIDPtr(s.DriverID),
		AssignmentID:        pgutil.UUIDPtr(s.AssignmentID),
		IsAssignable:        s.IsAssignable,
		EnableNotifications: s.EnableNotifications,
		CreatedAt:           s.CreatedAt,
	}
}

func toDomain(dto PackageDTO) (*order.Package, error) {
	var (
		s   order.PackageState
		err error
	)
	if s.ID, err = pgutil.KernelUUID(dto.ID); err != nil {
		return nil, err
	}
	if s.OrderID, err = pgutil.KernelUUID(dto.OrderID); err != nil {
		return nil, err
	}
	if s.TrackingNumber, err = kernel.ParseTrackingNumber(dto.TrackingNumber); err != nil {
		return nil, err
	}

	refs := []struct {
		raw *uuid.UUID
		dst **kernel.UUID
	}{
		{dto.FromContactID, &s.FromContactID},
		{dto.ToContactID, &s.ToContactID},
		{dto.FromAddressID, &s.FromAddressID},
		{dto.ToAddressID, &s.ToAddressID},
		{dto.DriverID, &s.DriverID},
		{dto.AssignmentID, &s.AssignmentID},
	}
	for _, ref := range refs {
		if *ref.dst, err = pgutil.KernelUUIDPtr(ref.raw); err != nil {
			return nil, err
		}
	}

	s.Status = order.Status(dto.Status)
	s.Size = order.Size(dto.Size)
	s.Priority = order.Priority(dto.Priority)
	s.PickUpNote = dto.PickUpNote
	s.DropOffNote = dto.DropOffNote
	s.StaffNote = dto.StaffNote
	s.PickUpChangeNote = dto.PickUpChangeNote
	s.CancelReason = dto.CancelReason
	s.PickUpStart = utc(dto.PickUpStart)
	s.PickUpEnd = utc(dto.PickUpEnd)
	s.IsAssignable = dto.IsAssignable
	s.EnableNotifications = dto.EnableNotifications
	s.CreatedAt = dto.CreatedAt.UTC()

	return order.RestorePackage(s)
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
