package businesshourrepo

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/businesshours"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBusinessHourService implements ports.BusinessHourService. Windows are
// evaluated in a single configured time zone.
type GormBusinessHourService struct {
	db       *gorm.DB
	gate     services.BusinessHoursGate
	location *time.Location
}

func NewGormBusinessHourService(db *gorm.DB, location *time.Location) *GormBusinessHourService {
	if location == nil {
		location = time.UTC
	}
	return &GormBusinessHourService{
		db:       db,
		gate:     services.NewBusinessHoursGate(),
		location: location,
	}
}

// ValidateBusinessHours passes when the customer has no windows stored.
func (s *GormBusinessHourService) ValidateBusinessHours(
	ctx context.Context,
	packages []*order.Package,
	customerID kernel.UUID,
) error {
	schedule, err := s.Schedule(ctx, customerID)
	if err != nil {
		return err
	}
	return s.gate.Validate(schedule, packages)
}

func (s *GormBusinessHourService) Schedule(ctx context.Context, customerID kernel.UUID) (businesshours.Schedule, error) {
	var dtos []WindowDTO
	if err := s.db.WithContext(ctx).
		Where("customer_id = ?", customerID.Bytes()).
		Order("weekday").
		Find(&dtos).Error; err != nil {
		return businesshours.Schedule{}, errors.Wrap(err, "select business hours")
	}

	windows := make([]businesshours.Window, 0, len(dtos))
	for _, dto := range dtos {
		w, err := toDomain(dto)
		if err != nil {
			return businesshours.Schedule{}, errors.Wrapf(err, "business hours of customer %s", customerID)
		}
		windows = append(windows, w)
	}
	return businesshours.NewSchedule(s.location, windows...), nil
}

// Save upserts the given weekdays, leaving other days untouched.
func (s *GormBusinessHourService) Save(ctx context.Context, customerID kernel.UUID, windows ...businesshours.Window) error {
	if len(windows) == 0 {
		return nil
	}

	dtos := make([]WindowDTO, 0, len(windows))
	for _, w := range windows {
		dtos = append(dtos, fromDomain(customerID.Bytes(), w))
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "customer_id"}, {Name: "weekday"}},
			DoUpdates: clause.AssignmentColumns([]string{"open_at", "close_at", "is_day_off"}),
		}).
		Create(&dtos).Error
	if err != nil {
		return errors.Wrap(err, "upsert business hours")
	}
	return nil
}
