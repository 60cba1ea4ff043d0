package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/contact"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/clock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// 2026-03-10 12:07:42 UTC, a Tuesday.
var testNow = time.Date(2026, 3, 10, 12, 7, 42, 0, time.UTC)

var testClock = clock.Fixed{At: testNow}

type stubBusinessHours struct {
	err   error
	calls int
}

func (s *stubBusinessHours) ValidateBusinessHours(_ context.Context, _ []*order.Package, _ kernel.UUID) error {
	s.calls++
	return s.err
}

type MockAssignmentGateway struct{ mock.Mock }

func (m *MockAssignmentGateway) CancelAssignment(ctx context.Context, assignmentID kernel.UUID) error {
	args := m.Called(ctx, assignmentID)
	return args.Error(0)
}

type flatPricing struct{ fee decimal.Decimal }

func (f flatPricing) CreateDeliveryFees(_ context.Context, _ *order.DeliveryOrder, packages []*order.Package) ([]*order.Charge, error) {
	charges := make([]*order.Charge, 0, len(packages))
	for _, p := range packages {
		c, err := order.NewCharge(kernel.NewUUID(), p.ID(), order.ChargeDeliveryFee, f.fee)
		if err != nil {
			return nil, err
		}
		charges = append(charges, c)
	}
	return charges, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	smsErr error
	sms    []string
	pushes []ports.WebPush
}

func (n *recordingNotifier) SendSMS(_ context.Context, text, phone string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.smsErr != nil {
		return n.smsErr
	}
	n.sms = append(n.sms, phone+": "+text)
	return nil
}

func (n *recordingNotifier) SendWebPush(_ context.Context, push ports.WebPush) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pushes = append(n.pushes, push)
}

func newWorkflow(hours ports.BusinessHourService) commands.OrderPlacementWorkflow {
	return commands.NewOrderPlacementWorkflow(services.NewPickupTimeResolver(0, 0), hours, testClock)
}

// party is a saved contact with a saved address.
type party struct {
	contact *contact.SavedContact
	address *contact.SavedAddress
}

func seedParty(t *testing.T, store *memStore, customerID kernel.UUID, name string) party {
	t.Helper()
	c, err := contact.NewSavedContact(kernel.NewUUID(), customerID, contact.ContactFields{Name: name, PhoneNumber: "+1555" + name})
	require.NoError(t, err)
	a, err := contact.NewSavedAddress(kernel.NewUUID(), customerID, contact.AddressFields{Street: name + " street", City: "Oslo"})
	require.NoError(t, err)
	store.seedContacts(c)
	store.seedAddresses(a)
	return party{contact: c, address: a}
}

type orderFixture struct {
	customerID kernel.UUID
	order      *order.DeliveryOrder
	packages   []*order.Package
	sender     party
	recipient  party
}

// seedOrder stores a STARTED order with n SMALL packages between the same
// two parties. withFees adds a DELIVERY_FEE of 1000 per package.
func seedOrder(t *testing.T, store *memStore, n int, withFees bool) orderFixture {
	t.Helper()
	customerID := kernel.NewUUID()
	sender := seedParty(t, store, customerID, "alice")
	recipient := seedParty(t, store, customerID, "bob")

	o, err := order.NewDeliveryOrder(kernel.NewUUID(), customerID, nil, nil, order.Started, true, testNow)
	require.NoError(t, err)
	store.seedOrder(o)

	f := orderFixture{customerID: customerID, order: o, sender: sender, recipient: recipient}
	for i := range n {
		f.packages = append(f.packages, seedPackage(t, store, o.ID(), order.Started, sender, recipient, i))
		if withFees {
			fee, feeErr := order.NewCharge(kernel.NewUUID(), f.packages[i].ID(), order.ChargeDeliveryFee, decimal.NewFromInt(1000))
			require.NoError(t, feeErr)
			store.seedCharges(fee)
		}
	}
	return f
}

func seedPackage(
	t *testing.T,
	store *memStore,
	orderID kernel.UUID,
	status order.Status,
	from, to party,
	seq int,
) *order.Package {
	t.Helper()
	tn, err := kernel.NewRandomTrackingNumber()
	require.NoError(t, err)
	fc, tc, fa, ta := from.contact.ID(), to.contact.ID(), from.address.ID(), to.address.ID()
	p, err := order.NewPackage(kernel.NewUUID(), orderID, tn, status, order.PackageDetails{
		Size:          order.SizeSmall,
		FromContactID: &fc,
		ToContactID:   &tc,
		FromAddressID: &fa,
		ToAddressID:   &ta,
		PickUpNote:    "ring twice",
		DropOffNote:   "leave with concierge",
	}, testNow.Add(time.Duration(seq)*time.Second))
	require.NoError(t, err)
	store.seedPackages(p)
	return p
}

// placeFixture places f's order through the workflow and commits.
func placeFixture(t *testing.T, store *memStore, f orderFixture) {
	t.Helper()
	cmd, err := commands.NewPlaceOrderCommand(f.order.ID())
	require.NoError(t, err)
	h := commands.NewPlaceOrderCommandHandler(store, newWorkflow(&stubBusinessHours{}))
	require.NoError(t, h.Handle(t.Context(), cmd))
}
