package services_test

import (
	"testing"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 10, 12, 7, 42, 0, time.UTC)

func newPackage(t *testing.T, details order.PackageDetails) *order.Package {
	t.Helper()
	tn, err := kernel.NewRandomTrackingNumber()
	require.NoError(t, err)
	p, err := order.NewPackage(kernel.NewUUID(), kernel.NewUUID(), tn, order.Started, details, testNow)
	require.NoError(t, err)
	return p
}

func completeDetails() order.PackageDetails {
	ids := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()}
	return order.PackageDetails{
		Size:          order.SizeSmall,
		FromContactID: &ids[0],
		ToContactID:   &ids[1],
		FromAddressID: &ids[2],
		ToAddressID:   &ids[3],
	}
}
