package discountrepo

import (
	"context"

	"orderflow/internal/adapters/out/postgres/pgutil"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormDiscountRepository implements ports.DiscountRepository using GORM.
type GormDiscountRepository struct {
	db *gorm.DB
}

func NewGormDiscountRepository(db *gorm.DB) *GormDiscountRepository {
	return &GormDiscountRepository{db: db}
}

// Add relies on idx_discounts_order_type to reject a second discount of the
// same type on one order.
func (r *GormDiscountRepository) Add(ctx context.Context, discounts ...*order.Discount) error {
	if len(discounts) == 0 {
		return nil
	}

	dtos := make([]DiscountDTO, 0, len(discounts))
	for _, d := range discounts {
		if err := d.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(d))
	}

	if err := r.db.WithContext(ctx).Omit("Order").Create(&dtos).Error; err != nil {
		if pgutil.IsUniqueViolation(err) {
			return errs.NewValueIsInvalidErrorWithCause("discount type", err)
		}
		if pgutil.IsForeignKeyViolation(err) {
			return errs.NewObjectNotFoundErrorWithCause("order", discounts[0].OrderID().String(), err)
		}
		return errors.Wrap(err, "insert discounts")
	}
	return nil
}

func (r *GormDiscountRepository) Update(ctx context.Context, discounts ...*order.Discount) error {
	for _, d := range discounts {
		dto := fromDomain(d)
		result := r.db.WithContext(ctx).
			Model(&DiscountDTO{}).
			Where("id = ?", dto.ID).
			Select("status", "amount").
			Updates(&dto)
		if result.Error != nil {
			return errors.Wrapf(result.Error, "update discount %s", d.ID())
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("discount", d.ID().String())
		}
	}
	return nil
}

func (r *GormDiscountRepository) GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*order.Discount, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.find(ctx, "id IN ?", pgutil.UUIDs(ids))
}

func (r *GormDiscountRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Discount, error) {
	return r.find(ctx, "order_id = ?", orderID.Bytes())
}

func (r *GormDiscountRepository) find(ctx context.Context, query string, args ...any) ([]*order.Discount, error) {
	var dtos []DiscountDTO
	if err := r.db.WithContext(ctx).Where(query, args...).Order("type").Find(&dtos).Error; err != nil {
		return nil, errors.Wrap(err, "select discounts")
	}

	discounts := make([]*order.Discount, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		discounts = append(discounts, d)
	}
	return discounts, nil
}
