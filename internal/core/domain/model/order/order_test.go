package order_test

import (
	"testing"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newStartedOrder(t *testing.T) *order.DeliveryOrder {
	t.Helper()
	o, err := order.NewDeliveryOrder(kernel.NewUUID(), kernel.NewUUID(), nil, nil, order.Started, true, testNow)
	require.NoError(t, err)
	return o
}

func TestNewDeliveryOrder(t *testing.T) {
	t.Run("should create order in initial status", func(t *testing.T) {
		id := kernel.NewUUID()
		customerID := kernel.NewUUID()
		branchID := kernel.NewUUID()

		o, err := order.NewDeliveryOrder(id, customerID, &branchID, nil, order.Request, false, testNow)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.CustomerID().IsEqual(customerID))
		assert.Equal(t, &branchID, o.BranchID())
		assert.Nil(t, o.AgentID())
		assert.Equal(t, order.Request, o.Status())
		assert.Nil(t, o.PlacedAt())
		assert.False(t, o.IsCustomerPaying())
		assert.Equal(t, 0, o.Version())
	})

	t.Run("should reject non-initial status", func(t *testing.T) {
		o, err := order.NewDeliveryOrder(kernel.NewUUID(), kernel.NewUUID(), nil, nil, order.Placed, true, testNow)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Nil(t, o)
	})

	t.Run("should join validation errors", func(t *testing.T) {
		var id, customerID kernel.UUID

		_, err := order.NewDeliveryOrder(id, customerID, nil, nil, order.Complete, true, testNow)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "customer id")
		assert.Contains(t, err.Error(), "initial status is invalid")
	})

	t.Run("zero value should not validate", func(t *testing.T) {
		var o order.DeliveryOrder
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestDeliveryOrder_Place(t *testing.T) {
	t.Run("should stamp placedAt once", func(t *testing.T) {
		o := newStartedOrder(t)

		require.NoError(t, o.Place(testNow))

		assert.Equal(t, order.Placed, o.Status())
		require.NotNil(t, o.PlacedAt())
		assert.Equal(t, testNow, *o.PlacedAt())

		err := o.Place(testNow.Add(time.Hour))
		require.ErrorIs(t, err, order.ErrOrderAlreadyPlaced)
		assert.Equal(t, testNow, *o.PlacedAt())
	})

	t.Run("should not place terminal order", func(t *testing.T) {
		o := newStartedOrder(t)
		require.NoError(t, o.MarkIncomplete())

		require.Error(t, o.Place(testNow))
		assert.Nil(t, o.PlacedAt())
	})
}

func TestDeliveryOrder_ReconcileWithPackages(t *testing.T) {
	t.Run("placed order with all packages closed becomes canceled", func(t *testing.T) {
		o := newStartedOrder(t)
		require.NoError(t, o.Place(testNow))

		changed, err := o.ReconcileWithPackages([]order.Status{order.Canceled, order.Incomplete})

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, order.Canceled, o.Status())

		changed, err = o.ReconcileWithPackages([]order.Status{order.Canceled, order.Incomplete})
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("placed order with a live package is unchanged", func(t *testing.T) {
		o := newStartedOrder(t)
		require.NoError(t, o.Place(testNow))

		changed, err := o.ReconcileWithPackages([]order.Status{order.Canceled, order.Placed})

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, order.Placed, o.Status())
	})

	t.Run("open order with all packages incomplete becomes incomplete", func(t *testing.T) {
		o := newStartedOrder(t)

		changed, err := o.ReconcileWithPackages([]order.Status{order.Incomplete, order.Incomplete})

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, order.Incomplete, o.Status())
	})

	t.Run("order without packages is unchanged", func(t *testing.T) {
		o := newStartedOrder(t)

		changed, err := o.ReconcileWithPackages(nil)

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, order.Started, o.Status())
	})
}

func TestDeliveryOrder_Duplicate(t *testing.T) {
	t.Run("should clone placed order lineage", func(t *testing.T) {
		agentID := kernel.NewUUID()
		o, err := order.NewDeliveryOrder(kernel.NewUUID(), kernel.NewUUID(), nil, &agentID, order.Started, false, testNow)
		require.NoError(t, err)
		require.NoError(t, o.Place(testNow))

		dup, err := o.Duplicate(kernel.NewUUID(), testNow.Add(time.Hour))

		require.NoError(t, err)
		assert.False(t, dup.IsEqual(o))
		assert.True(t, dup.CustomerID().IsEqual(o.CustomerID()))
		assert.Equal(t, o.AgentID(), dup.AgentID())
		assert.Equal(t, order.Started, dup.Status())
		assert.Nil(t, dup.PlacedAt())
		assert.False(t, dup.IsCustomerPaying())
	})

	t.Run("should refuse open order", func(t *testing.T) {
		o := newStartedOrder(t)

		_, err := o.Duplicate(kernel.NewUUID(), testNow)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "invalid status")
	})
}

func TestRestoreDeliveryOrder(t *testing.T) {
	placedAt := testNow
	o, err := order.RestoreDeliveryOrder(
		kernel.NewUUID(), kernel.NewUUID(), nil, nil, order.Placed, &placedAt, true, testNow, 4,
	)

	require.NoError(t, err)
	assert.Equal(t, order.Placed, o.Status())
	assert.Equal(t, 4, o.Version())

	o.AdvanceVersion()
	assert.Equal(t, 5, o.Version())
}
