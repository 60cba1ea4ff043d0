package eventrepo

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormEventRepository implements ports.PackageEventRepository using GORM.
// It has no update or delete.
type GormEventRepository struct {
	db *gorm.DB
}

func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

func (r *GormEventRepository) Append(ctx context.Context, events ...*order.Event) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		if err := e.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(e))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return errors.Wrap(err, "insert package events")
	}
	return nil
}

func (r *GormEventRepository) ListByPackage(ctx context.Context, packageID kernel.UUID) ([]*order.Event, error) {
	var dtos []EventDTO
	if err := r.db.WithContext(ctx).
		Where("package_id = ?", packageID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, errors.Wrap(err, "select package events")
	}

	events := make([]*order.Event, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}
