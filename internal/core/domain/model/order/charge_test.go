package order_test

import (
	"testing"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharge(t *testing.T) {
	t.Run("new charge is unpaid", func(t *testing.T) {
		c, err := order.NewCharge(kernel.NewUUID(), kernel.NewUUID(), order.ChargeDeliveryFee, decimal.NewFromInt(12))

		require.NoError(t, err)
		assert.Equal(t, order.ChargeUnpaid, c.Status())
		assert.True(t, c.TransactionAmount().IsZero())
		assert.True(t, c.IsDeliveryFee())
	})

	t.Run("mark paid settles full amount", func(t *testing.T) {
		c, _ := order.NewCharge(kernel.NewUUID(), kernel.NewUUID(), order.ChargeWaitingFee, decimal.RequireFromString("4.50"))

		c.MarkPaid()
		c.MarkPaid()

		assert.Equal(t, order.ChargePaid, c.Status())
		assert.True(t, c.TransactionAmount().Equal(decimal.RequireFromString("4.5")))
	})

	t.Run("duplicate is unpaid copy", func(t *testing.T) {
		c, _ := order.NewCharge(kernel.NewUUID(), kernel.NewUUID(), order.ChargeDeliveryFee, decimal.NewFromInt(9))
		c.MarkPaid()
		pkgID := kernel.NewUUID()

		dup, err := c.DuplicateFor(kernel.NewUUID(), pkgID)

		require.NoError(t, err)
		assert.True(t, dup.PackageID().IsEqual(pkgID))
		assert.Equal(t, order.ChargeUnpaid, dup.Status())
		assert.True(t, dup.Amount().Equal(c.Amount()))
	})

	t.Run("negative amount and unknown type are rejected", func(t *testing.T) {
		_, err := order.NewCharge(kernel.NewUUID(), kernel.NewUUID(), "TIP", decimal.NewFromInt(-1))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "charge type")
		assert.Contains(t, err.Error(), "negative")
	})
}

func TestDiscount(t *testing.T) {
	orderID := kernel.NewUUID()
	d, err := order.NewDiscount(kernel.NewUUID(), orderID, "FIRST_ORDER", decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.Equal(t, order.DiscountPending, d.Status())

	d.Apply()
	assert.Equal(t, order.DiscountApplied, d.Status())

	require.NoError(t, order.EnsureUniqueType([]*order.Discount{d}, "PROMO"))
	require.ErrorIs(t, order.EnsureUniqueType([]*order.Discount{d}, "FIRST_ORDER"), errs.ErrValueIsInvalid)

	_, err = order.NewDiscount(kernel.NewUUID(), orderID, "", decimal.Zero)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewPackageEvent(t *testing.T) {
	p := newDraftPackage(t)
	assignmentID := kernel.NewUUID()
	require.NoError(t, p.ApplyPatch(order.Patch{AssignmentID: kernel.Value(assignmentID)}, true))

	e, err := order.NewPackageEvent(p, order.EventOrderPlaced, nil, testNow)

	require.NoError(t, err)
	require.NoError(t, e.Validate())
	assert.True(t, e.PackageID().IsEqual(p.ID()))
	assert.Equal(t, &assignmentID, e.AssignmentID())
	assert.NotNil(t, e.Metadata())
	assert.Equal(t, testNow, e.CreatedAt())
}
