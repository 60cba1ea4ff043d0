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

func newDraftPackage(t *testing.T) *order.Package {
	t.Helper()
	tn, err := kernel.NewRandomTrackingNumber()
	require.NoError(t, err)
	from, to := kernel.NewUUID(), kernel.NewUUID()
	fromAddr, toAddr := kernel.NewUUID(), kernel.NewUUID()

	p, err := order.NewPackage(kernel.NewUUID(), kernel.NewUUID(), tn, order.Started, order.PackageDetails{
		Size:          order.SizeSmall,
		FromContactID: &from,
		ToContactID:   &to,
		FromAddressID: &fromAddr,
		ToAddressID:   &toAddr,
		PickUpNote:    "ring twice",
	}, testNow)
	require.NoError(t, err)
	return p
}

func TestNewPackage(t *testing.T) {
	t.Run("should default priority and derive pickup end", func(t *testing.T) {
		tn, _ := kernel.ParseTrackingNumber("0000000000042")
		start := testNow.Add(time.Hour)

		p, err := order.NewPackage(kernel.NewUUID(), kernel.NewUUID(), tn, order.Request, order.PackageDetails{
			PickUpStart: &start,
		}, testNow)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, order.PriorityStandard, p.Priority())
		assert.Equal(t, order.Request, p.Status())
		assert.Equal(t, start, *p.PickUpStart())
		assert.Equal(t, start.Add(order.PickupWindow), *p.PickUpEnd())
		assert.False(t, p.IsAssignable())
	})

	t.Run("should reject invalid size and missing tracking number", func(t *testing.T) {
		_, err := order.NewPackage(kernel.NewUUID(), kernel.NewUUID(), kernel.TrackingNumber{}, order.Started,
			order.PackageDetails{Size: "HUGE"}, testNow)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "size")
		assert.Contains(t, err.Error(), "trackingNumber")
	})
}

func TestPackage_Lifecycle(t *testing.T) {
	t.Run("place makes package assignable", func(t *testing.T) {
		p := newDraftPackage(t)

		require.NoError(t, p.Place())

		assert.Equal(t, order.Placed, p.Status())
		assert.True(t, p.IsAssignable())
		assert.False(t, p.IsDeletable())
	})

	t.Run("close cancels placed package", func(t *testing.T) {
		p := newDraftPackage(t)
		require.NoError(t, p.Place())

		name, err := p.Close("customer changed mind")

		require.NoError(t, err)
		assert.Equal(t, order.EventPackageCancelled, name)
		assert.Equal(t, order.Canceled, p.Status())
		assert.Equal(t, "customer changed mind", p.CancelReason())
		assert.False(t, p.IsAssignable())
	})

	t.Run("close marks draft package incomplete", func(t *testing.T) {
		p := newDraftPackage(t)

		name, err := p.Close("expired")

		require.NoError(t, err)
		assert.Equal(t, order.EventPackageIncomplete, name)
		assert.Equal(t, order.Incomplete, p.Status())
	})

	t.Run("terminal package cannot be closed again", func(t *testing.T) {
		p := newDraftPackage(t)
		require.NoError(t, p.MarkIncomplete("expired"))

		_, err := p.Close("again")

		require.Error(t, err)
	})
}

func TestPackage_ApplyPatch(t *testing.T) {
	t.Run("customer may edit public fields of a draft", func(t *testing.T) {
		p := newDraftPackage(t)
		size := order.SizeLarge
		note := "leave at door"

		err := p.ApplyPatch(order.Patch{Size: &size, DropOffNote: &note}, false)

		require.NoError(t, err)
		assert.Equal(t, order.SizeLarge, p.Size())
		assert.Equal(t, "leave at door", p.DropOffNote())
	})

	t.Run("customer may not edit restricted fields", func(t *testing.T) {
		p := newDraftPackage(t)
		staffNote := "fragile"

		err := p.ApplyPatch(order.Patch{StaffNote: &staffNote}, false)

		require.ErrorIs(t, err, errs.ErrOperationNotPermitted)
		assert.Empty(t, p.StaffNote())
	})

	t.Run("customer may not edit placed package", func(t *testing.T) {
		p := newDraftPackage(t)
		require.NoError(t, p.Place())
		size := order.SizeLarge

		err := p.ApplyPatch(order.Patch{Size: &size}, false)

		require.ErrorIs(t, err, errs.ErrOperationNotPermitted)
		assert.Equal(t, order.SizeSmall, p.Size())
	})

	t.Run("staff may assign and clear driver on placed package", func(t *testing.T) {
		p := newDraftPackage(t)
		require.NoError(t, p.Place())
		driverID := kernel.NewUUID()

		require.NoError(t, p.ApplyPatch(order.Patch{DriverID: kernel.Value(driverID)}, true))
		assert.Equal(t, &driverID, p.DriverID())

		require.NoError(t, p.ApplyPatch(order.Patch{DriverID: kernel.Null[kernel.UUID]()}, true))
		assert.Nil(t, p.DriverID())
	})

	t.Run("invalid value leaves package unchanged", func(t *testing.T) {
		p := newDraftPackage(t)
		good := "new note"
		bad := order.Size("HUGE")

		err := p.ApplyPatch(order.Patch{PickUpNote: &good, Size: &bad}, false)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, "ring twice", p.PickUpNote())
	})

	t.Run("staff status change must follow the machine", func(t *testing.T) {
		p := newDraftPackage(t)
		require.NoError(t, p.Place())
		back := order.Started

		err := p.ApplyPatch(order.Patch{Status: &back}, true)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.Placed, p.Status())
	})

	t.Run("staff cannot place a package by patch", func(t *testing.T) {
		p := newDraftPackage(t)
		placed := order.Placed

		err := p.ApplyPatch(order.Patch{Status: &placed}, true)

		require.ErrorIs(t, err, order.ErrPlacementViaPatch)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.Started, p.Status())
		assert.False(t, p.IsAssignable())
	})
}

func TestPackage_DuplicateFor(t *testing.T) {
	p := newDraftPackage(t)
	require.NoError(t, p.Place())
	require.NoError(t, p.ApplyPatch(order.Patch{AssignmentID: kernel.Value(kernel.NewUUID())}, true))
	tn, _ := kernel.NewRandomTrackingNumber()
	newOrderID := kernel.NewUUID()

	dup, err := p.DuplicateFor(kernel.NewUUID(), newOrderID, tn, testNow)

	require.NoError(t, err)
	assert.True(t, dup.OrderID().IsEqual(newOrderID))
	assert.Equal(t, order.Started, dup.Status())
	assert.Equal(t, p.Size(), dup.Size())
	assert.Equal(t, p.FromContactID(), dup.FromContactID())
	assert.Nil(t, dup.AssignmentID())
	assert.Nil(t, dup.PickUpStart())
}
