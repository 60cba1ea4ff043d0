// Package businesshourrepo reads customers' weekly opening windows and
// validates pick-up times against them.
package businesshourrepo

import (
	"time"

	"orderflow/internal/core/domain/model/businesshours"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// WindowDTO is one weekday row. Times are stored as "HH:MM" text; an empty
// bound is open-ended.
type WindowDTO struct {
	CustomerID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Weekday    int16     `gorm:"primaryKey;check:chk_business_hours_weekday,weekday BETWEEN 0 AND 6"`
	OpenAt     *string   `gorm:"type:varchar(8)"`
	CloseAt    *string   `gorm:"type:varchar(8)"`
	IsDayOff   bool      `gorm:"not null;default:false"`
}

func (WindowDTO) TableName() string {
	return "business_hours"
}

func fromDomain(customerID uuid.UUID, w businesshours.Window) WindowDTO {
	dto := WindowDTO{
		CustomerID: customerID,
		Weekday:    int16(w.Weekday),
		IsDayOff:   w.IsDayOff,
	}
	if w.OpenAt != nil {
		s := w.OpenAt.String()
		dto.OpenAt = &s
	}
	if w.CloseAt != nil {
		s := w.CloseAt.String()
		dto.CloseAt = &s
	}
	return dto
}

func toDomain(dto WindowDTO) (businesshours.Window, error) {
	if dto.Weekday < 0 || dto.Weekday > 6 {
		return businesshours.Window{}, errors.Errorf("weekday %d out of range", dto.Weekday)
	}
	w := businesshours.Window{Weekday: time.Weekday(dto.Weekday), IsDayOff: dto.IsDayOff}

	var err error
	if w.OpenAt, err = parseBound(dto.OpenAt); err != nil {
		return businesshours.Window{}, err
	}
	if w.CloseAt, err = parseBound(dto.CloseAt); err != nil {
		return businesshours.Window{}, err
	}
	return w, nil
}

func parseBound(s *string) (*businesshours.TimeOfDay, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := businesshours.ParseTimeOfDay(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
