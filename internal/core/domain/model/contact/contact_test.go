package contact_test

import (
	"testing"

	"orderflow/internal/core/domain/model/contact"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavedContact(t *testing.T) {
	t.Run("requires name or phone", func(t *testing.T) {
		_, err := contact.NewSavedContact(kernel.NewUUID(), kernel.NewUUID(), contact.ContactFields{Email: "a@b.c"})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("snapshot links back and freezes content", func(t *testing.T) {
		c, err := contact.NewSavedContact(kernel.NewUUID(), kernel.NewUUID(), contact.ContactFields{
			Name: "Ada", PhoneNumber: "+15550001",
		})
		require.NoError(t, err)

		snap, err := c.Snapshot(kernel.NewUUID())
		require.NoError(t, err)

		assert.False(t, snap.IsSaved())
		assert.False(t, snap.ID().IsEqual(c.ID()))
		require.NotNil(t, snap.ParentID())
		assert.True(t, snap.ParentID().IsEqual(c.ID()))
		assert.Equal(t, c.Fields(), snap.Fields())

		require.NoError(t, c.Update(contact.ContactFields{Name: "Ada L."}))
		assert.Equal(t, "Ada", snap.Fields().Name)
		assert.True(t, snap.OriginID().IsEqual(c.ID()))
	})

	t.Run("snapshot of snapshot keeps original parent", func(t *testing.T) {
		c, _ := contact.NewSavedContact(kernel.NewUUID(), kernel.NewUUID(), contact.ContactFields{Name: "Bo"})
		first, _ := c.Snapshot(kernel.NewUUID())

		second, err := first.Snapshot(kernel.NewUUID())

		require.NoError(t, err)
		assert.True(t, second.ParentID().IsEqual(c.ID()))
	})
}

func TestSavedAddress(t *testing.T) {
	t.Run("requires street", func(t *testing.T) {
		_, err := contact.NewSavedAddress(kernel.NewUUID(), kernel.NewUUID(), contact.AddressFields{City: "Oslo"})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects unconstructed location", func(t *testing.T) {
		_, err := contact.NewSavedAddress(kernel.NewUUID(), kernel.NewUUID(), contact.AddressFields{
			Street: "1 Main", Location: &kernel.GeoPoint{},
		})

		require.Error(t, err)
	})

	t.Run("snapshot links back", func(t *testing.T) {
		loc, _ := kernel.NewGeoPoint(59.9, 10.7)
		a, err := contact.NewSavedAddress(kernel.NewUUID(), kernel.NewUUID(), contact.AddressFields{
			Street: "1 Main", City: "Oslo", Location: &loc,
		})
		require.NoError(t, err)

		var addr contact.Address = a
		snap, err := addr.Snapshot(kernel.NewUUID())

		require.NoError(t, err)
		assert.True(t, snap.OriginID().IsEqual(a.ID()))
		assert.Equal(t, "Oslo", snap.Fields().City)
		assert.True(t, a.OriginID().IsEqual(a.ID()))
	})
}

func TestAssociation(t *testing.T) {
	c, a := kernel.NewUUID(), kernel.NewUUID()
	assoc, err := contact.NewAssociation(c, a, "")
	require.NoError(t, err)

	assoc.SetNote("gate code 1234")

	assert.Equal(t, "gate code 1234", assoc.LastNote())
	assert.Equal(t, contact.AssociationKey{ContactID: c, AddressID: a}, assoc.Key())
}
