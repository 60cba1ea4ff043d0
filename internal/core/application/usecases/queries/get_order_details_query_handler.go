package queries

import (
	"context"
	"database/sql"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GetOrderDetailsQueryHandler reads straight from the tables, bypassing the
// aggregates. Packages come in creation order, charges by id and discounts
// by type.
type GetOrderDetailsQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderDetailsQueryHandler(db *gorm.DB) GetOrderDetailsQueryHandler {
	return GetOrderDetailsQueryHandler{db: db}
}

func (h GetOrderDetailsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderDetailsQuery,
) (GetOrderDetailsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	orderID := query.OrderID().Bytes()

	resp, err := h.order(db, orderID)
	if err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}
	if resp.Packages, err = h.packages(db, orderID); err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}
	if err := h.attachCharges(db, orderID, resp.Packages); err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}
	if resp.Discounts, err = h.discounts(db, orderID); err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}
	return resp, nil
}

func (h GetOrderDetailsQueryHandler) order(db *gorm.DB, orderID uuid.UUID) (GetOrderDetailsQueryResponse, error) {
	var resp GetOrderDetailsQueryResponse
	var id, customerID uuid.UUID
	var branchID *uuid.UUID
	var placedAt sql.NullTime

	err := db.Raw(`
		SELECT id, customer_id, branch_id, status, placed_at, is_customer_paying, created_at
		FROM orders
		WHERE id = ?
	`, orderID).Row().Scan(
		&id,
		&customerID,
		&branchID,
		&resp.Status,
		&placedAt,
		&resp.IsCustomerPaying,
		&resp.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return resp, errs.NewObjectNotFoundError("order", orderID.String())
	}
	if err != nil {
		return resp, errors.Wrap(err, "select order details")
	}

	if resp.ID, err = kernel.UUIDFromGoogle(id); err != nil {
		return resp, err
	}
	if resp.CustomerID, err = kernel.UUIDFromGoogle(customerID); err != nil {
		return resp, err
	}
	if resp.BranchID, err = optionalUUID(branchID); err != nil {
		return resp, err
	}
	resp.PlacedAt = optionalTime(placedAt)
	resp.CreatedAt = resp.CreatedAt.UTC()
	resp.Packages = make([]PackageDetails, 0)
	resp.Discounts = make([]DiscountDetails, 0)
	return resp, nil
}

func (h GetOrderDetailsQueryHandler) packages(db *gorm.DB, orderID uuid.UUID) ([]PackageDetails, error) {
	rows, err := db.Raw(`
		SELECT
			id, tracking_number, status, size, priority,
			from_contact_id, to_contact_id, from_address_id, to_address_id,
			pick_up_start, pick_up_end, driver_id, cancel_reason
		FROM packages
		WHERE order_id = ?
		ORDER BY created_at, id
	`, orderID).Rows()
	if err != nil {
		return nil, errors.Wrap(err, "select packages")
	}
	defer rows.Close()

	packages := make([]PackageDetails, 0)
	for rows.Next() {
		var p PackageDetails
		var id uuid.UUID
		var fromContact, toContact, fromAddress, toAddress, driver *uuid.UUID
		var start, end sql.NullTime

		if err := rows.Scan(
			&id, &p.TrackingNumber, &p.Status, &p.Size, &p.Priority,
			&fromContact, &toContact, &fromAddress, &toAddress,
			&start, &end, &driver, &p.CancelReason,
		); err != nil {
			return nil, err
		}

		if p.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		for _, ref := range []struct {
			src *uuid.UUID
			dst **kernel.UUID
		}{
			{fromContact, &p.FromContactID},
			{toContact, &p.ToContactID},
			{fromAddress, &p.FromAddressID},
			{toAddress, &p.ToAddressID},
			{driver, &p.DriverID},
		} {
			if *ref.dst, err = optionalUUID(ref.src); err != nil {
				return nil, err
			}
		}
		p.PickUpStart = optionalTime(start)
		p.PickUpEnd = optionalTime(end)
		p.Charges = make([]ChargeDetails, 0)
		packages = append(packages, p)
	}
	return packages, rows.Err()
}

func (h GetOrderDetailsQueryHandler) attachCharges(db *gorm.DB, orderID uuid.UUID, packages []PackageDetails) error {
	if len(packages) == 0 {
		return nil
	}
	byPackage := make(map[kernel.UUID]*PackageDetails, len(packages))
	for i := range packages {
		byPackage[packages[i].ID] = &packages[i]
	}

	rows, err := db.Raw(`
		SELECT c.id, c.package_id, c.type, c.status, c.amount, c.transaction_amount
		FROM charges c
		JOIN packages p ON p.id = c.package_id
		WHERE p.order_id = ?
		ORDER BY c.id
	`, orderID).Rows()
	if err != nil {
		return errors.Wrap(err, "select charges")
	}
	defer rows.Close()

	for rows.Next() {
		var c ChargeDetails
		var id, packageID uuid.UUID
		if err := rows.Scan(&id, &packageID, &c.Type, &c.Status, &c.Amount, &c.TransactionAmount); err != nil {
			return err
		}
		if c.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return err
		}
		pid, err := kernel.UUIDFromGoogle(packageID)
		if err != nil {
			return err
		}
		if p, ok := byPackage[pid]; ok {
			p.Charges = append(p.Charges, c)
		}
	}
	return rows.Err()
}

func (h GetOrderDetailsQueryHandler) discounts(db *gorm.DB, orderID uuid.UUID) ([]DiscountDetails, error) {
	rows, err := db.Raw(`
		SELECT id, type, status, amount
		FROM discounts
		WHERE order_id = ?
		ORDER BY type
	`, orderID).Rows()
	if err != nil {
		return nil, errors.Wrap(err, "select discounts")
	}
	defer rows.Close()

	discounts := make([]DiscountDetails, 0)
	for rows.Next() {
		var d DiscountDetails
		var id uuid.UUID
		if err := rows.Scan(&id, &d.Type, &d.Status, &d.Amount); err != nil {
			return nil, err
		}
		if d.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		discounts = append(discounts, d)
	}
	return discounts, rows.Err()
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromGoogle(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func optionalTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}
