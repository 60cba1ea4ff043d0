package packagerepo

import (
	"context"
	"time"

	"orderflow/internal/adapters/out/postgres/pgutil"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormPackageRepository implements ports.PackageRepository using GORM.
type GormPackageRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormPackageRepository(db *gorm.DB, tracker aggregateTracker) *GormPackageRepository {
	return &GormPackageRepository{db: db, tracker: tracker}
}

func (r *GormPackageRepository) Add(ctx context.Context, packages ...*order.Package) error {
	if len(packages) == 0 {
		return nil
	}

	dtos := make([]PackageDTO, 0, len(packages))
	for _, p := range packages {
		if err := p.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(p))
	}

	if err := r.db.WithContext(ctx).Omit("Order").Create(&dtos).Error; err != nil {
		if pgutil.IsUniqueViolation(err) {
			return errs.NewValueIsInvalidErrorWithCause("trackingNumber", err)
		}
		if pgutil.IsForeignKeyViolation(err) {
			return errs.NewObjectNotFoundErrorWithCause("order", packages[0].OrderID().String(), err)
		}
		return errors.Wrap(err, "insert packages")
	}

	for _, p := range packages {
		r.tracker.TrackAggregate(p.ID(), p)
	}
	return nil
}

func (r *GormPackageRepository) Update(ctx context.Context, packages ...*order.Package) error {
	for _, p := range packages {
		if err := p.Validate(); err != nil {
			return err
		}

		dto := fromDomain(p)
		result := r.db.WithContext(ctx).
			Model(&PackageDTO{}).
			Where("id = ?", dto.ID).
			Select("*").
			Omit("id", "order_id", "tracking_number", "created_at", "Order").
			Updates(&dto)
		if result.Error != nil {
			return errors.Wrapf(result.Error, "update package %s", p.ID())
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("package", p.ID().String())
		}

		r.tracker.TrackAggregate(p.ID(), p)
	}
	return nil
}

func (r *GormPackageRepository) Get(ctx context.Context, id kernel.UUID) (*order.Package, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PackageDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("package", id.String())
		}
		return nil, errors.Wrap(err, "select package")
	}

	return toDomain(dto)
}

// GetByOrder returns the order's packages in creation order.
func (r *GormPackageRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Package, error) {
	var dtos []PackageDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, errors.Wrap(err, "select packages by order")
	}

	packages := make([]*order.Package, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	return packages, nil
}

func (r *GormPackageRepository) Delete(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).Delete(&PackageDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		if pgutil.IsForeignKeyViolation(result.Error) {
			return errs.NewOperationNotPermittedErrorWithCause("delete package with charges", result.Error)
		}
		return errors.Wrap(result.Error, "delete package")
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("package", id.String())
	}
	return nil
}

func (r *GormPackageRepository) FindExpired(ctx context.Context, now time.Time) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&PackageDTO{}).
		Where("status IN ?", []string{string(order.Request), string(order.Pending)}).
		Where("(pick_up_start IS NULL OR pick_up_start < ?)", now).
		Order("created_at").
		Pluck("id", &raw).Error; err != nil {
		return nil, errors.Wrap(err, "select expired packages")
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := pgutil.KernelUUID(value)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *GormPackageRepository) ExistsTrackingNumber(ctx context.Context, trackingNumber kernel.TrackingNumber) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&PackageDTO{}).
		Where("tracking_number = ?", trackingNumber.String()).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "count tracking number")
	}
	return count > 0, nil
}
