package chargerepo

import (
	"context"

	"orderflow/internal/adapters/out/postgres/pgutil"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormChargeRepository implements ports.ChargeRepository using GORM.
type GormChargeRepository struct {
	db *gorm.DB
}

func NewGormChargeRepository(db *gorm.DB) *GormChargeRepository {
	return &GormChargeRepository{db: db}
}

func (r *GormChargeRepository) Add(ctx context.Context, charges ...*order.Charge) error {
	if len(charges) == 0 {
		return nil
	}

	dtos := make([]ChargeDTO, 0, len(charges))
	for _, c := range charges {
		if err := c.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(c))
	}

	if err := r.db.WithContext(ctx).Omit("Package").Create(&dtos).Error; err != nil {
		if pgutil.IsForeignKeyViolation(err) {
			return errs.NewObjectNotFoundErrorWithCause("package", charges[0].PackageID().String(), err)
		}
		return errors.Wrap(err, "insert charges")
	}
	return nil
}

// Update rewrites status and amounts only; a charge never moves between
// packages.
func (r *GormChargeRepository) Update(ctx context.Context, charges ...*order.Charge) error {
	for _, c := range charges {
		dto := fromDomain(c)
		result := r.db.WithContext(ctx).
			Model(&ChargeDTO{}).
			Where("id = ?", dto.ID).
			Select("status", "amount", "transaction_amount").
			Updates(&dto)
		if result.Error != nil {
			return errors.Wrapf(result.Error, "update charge %s", c.ID())
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("charge", c.ID().String())
		}
	}
	return nil
}

func (r *GormChargeRepository) GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*order.Charge, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.find(ctx, "id IN ?", pgutil.UUIDs(ids))
}

func (r *GormChargeRepository) GetByPackages(ctx context.Context, packageIDs []kernel.UUID) ([]*order.Charge, error) {
	if len(packageIDs) == 0 {
		return nil, nil
	}
	return r.find(ctx, "package_id IN ?", pgutil.UUIDs(packageIDs))
}

func (r *GormChargeRepository) DeleteByPackage(ctx context.Context, packageID kernel.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&ChargeDTO{}, "package_id = ?", packageID.Bytes()).Error; err != nil {
		return errors.Wrap(err, "delete charges")
	}
	return nil
}

func (r *GormChargeRepository) find(ctx context.Context, query string, args ...any) ([]*order.Charge, error) {
	var dtos []ChargeDTO
	if err := r.db.WithContext(ctx).Where(query, args...).Order("id").Find(&dtos).Error; err != nil {
		return nil, errors.Wrap(err, "select charges")
	}

	charges := make([]*order.Charge, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		charges = append(charges, c)
	}
	return charges, nil
}
