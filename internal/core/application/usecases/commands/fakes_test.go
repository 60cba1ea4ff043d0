package commands_test

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/contact"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// memData is one consistent copy of every table. Rows are stored as
// detached copies so that mutating a loaded entity does not leak into the
// store until it is written back.
type memData struct {
	orders       map[string]*order.DeliveryOrder
	packages     map[string]order.PackageState
	charges      map[string]*order.Charge
	discounts    map[string]*order.Discount
	events       []*order.Event
	contacts     map[string]contact.Contact
	addresses    map[string]contact.Address
	associations map[contact.AssociationKey]string
}

func newMemData() *memData {
	return &memData{
		orders:       map[string]*order.DeliveryOrder{},
		packages:     map[string]order.PackageState{},
		charges:      map[string]*order.Charge{},
		discounts:    map[string]*order.Discount{},
		contacts:     map[string]contact.Contact{},
		addresses:    map[string]contact.Address{},
		associations: map[contact.AssociationKey]string{},
	}
}

func (d *memData) clone() *memData {
	return &memData{
		orders:       maps.Clone(d.orders),
		packages:     maps.Clone(d.packages),
		charges:      maps.Clone(d.charges),
		discounts:    maps.Clone(d.discounts),
		events:       slices.Clone(d.events),
		contacts:     maps.Clone(d.contacts),
		addresses:    maps.Clone(d.addresses),
		associations: maps.Clone(d.associations),
	}
}

// memStore is the committed state shared by every unit of work it creates.
type memStore struct {
	mu        sync.Mutex
	committed *memData
	// failPackageUpdate makes PackageRepository.Update fail, to exercise rollback.
	failPackageUpdate error
}

func newMemStore() *memStore {
	return &memStore{committed: newMemData()}
}

func (s *memStore) Create() commands.UoW {
	return &memUoW{store: s}
}

func (s *memStore) PackageFactory() commands.PackageUoWFactory {
	return packageFactory{s}
}

type packageFactory struct{ s *memStore }

func (f packageFactory) Create() commands.PackageUoW { return f.s.Create() }

// snapshot reads committed state outside any unit of work.
func (s *memStore) snapshot() *memData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed.clone()
}

func (s *memStore) order(id kernel.UUID) *order.DeliveryOrder {
	return cloneOrder(s.snapshot().orders[id.String()])
}

func (s *memStore) pkg(id kernel.UUID) *order.Package {
	st, ok := s.snapshot().packages[id.String()]
	if !ok {
		return nil
	}
	p, _ := order.RestorePackage(st)
	return p
}

func (s *memStore) packagesOf(orderID kernel.UUID) []*order.Package {
	var out []*order.Package
	for _, st := range s.snapshot().packages {
		if st.OrderID.IsEqual(orderID) {
			p, _ := order.RestorePackage(st)
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b *order.Package) int { return a.State().CreatedAt.Compare(b.State().CreatedAt) })
	return out
}

func (s *memStore) chargesOf(packageID kernel.UUID) []*order.Charge {
	var out []*order.Charge
	for _, c := range s.snapshot().charges {
		if c.PackageID().IsEqual(packageID) {
			out = append(out, cloneCharge(c))
		}
	}
	return out
}

func (s *memStore) eventsOf(packageID kernel.UUID) []*order.Event {
	var out []*order.Event
	for _, e := range s.snapshot().events {
		if e.PackageID().IsEqual(packageID) {
			out = append(out, e)
		}
	}
	return out
}

func (s *memStore) seedOrder(o *order.DeliveryOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committed.orders[o.ID().String()] = cloneOrder(o)
}

func (s *memStore) seedPackages(packages ...*order.Package) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range packages {
		s.committed.packages[p.ID().String()] = p.State()
	}
}

func (s *memStore) seedCharges(charges ...*order.Charge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range charges {
		s.committed.charges[c.ID().String()] = cloneCharge(c)
	}
}

func (s *memStore) seedDiscounts(discounts ...*order.Discount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range discounts {
		s.committed.discounts[d.ID().String()] = cloneDiscount(d)
	}
}

func (s *memStore) seedContacts(contacts ...contact.Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range contacts {
		s.committed.contacts[c.ID().String()] = c
	}
}

func (s *memStore) seedAddresses(addresses ...contact.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range addresses {
		s.committed.addresses[a.ID().String()] = a
	}
}

func (s *memStore) seedAssociation(key contact.AssociationKey, note string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committed.associations[key] = note
}

// memUoW works on a private copy between Begin and Commit. Without Begin it
// reads committed state directly, like the gorm unit of work.
type memUoW struct {
	store *memStore
	tx    *memData
}

func (u *memUoW) Begin(_ context.Context) error {
	if u.tx == nil {
		u.tx = u.store.snapshot()
	}
	return nil
}

func (u *memUoW) Commit(_ context.Context) error {
	if u.tx == nil {
		return errors.New("no transaction")
	}
	u.store.mu.Lock()
	u.store.committed = u.tx
	u.store.mu.Unlock()
	u.tx = nil
	return nil
}

func (u *memUoW) Rollback(_ context.Context) error {
	if u.tx == nil {
		return errors.New("no transaction")
	}
	u.tx = nil
	return nil
}

func (u *memUoW) data() *memData {
	if u.tx != nil {
		return u.tx
	}
	return u.store.snapshot()
}

func (u *memUoW) OrderRepository() ports.OrderRepository                   { return memOrders{u} }
func (u *memUoW) PackageRepository() ports.PackageRepository               { return memPackages{u} }
func (u *memUoW) ChargeRepository() ports.ChargeRepository                 { return memCharges{u} }
func (u *memUoW) DiscountRepository() ports.DiscountRepository             { return memDiscounts{u} }
func (u *memUoW) PackageEventRepository() ports.PackageEventRepository     { return memEvents{u} }
func (u *memUoW) ContactAddressRepository() ports.ContactAddressRepository { return memContacts{u} }

func cloneOrder(o *order.DeliveryOrder) *order.DeliveryOrder {
	if o == nil {
		return nil
	}
	c, _ := order.RestoreDeliveryOrder(o.ID(), o.CustomerID(), o.BranchID(), o.AgentID(), o.Status(),
		o.PlacedAt(), o.IsCustomerPaying(), o.CreatedAt(), o.Version())
	return c
}

func cloneCharge(c *order.Charge) *order.Charge {
	out, _ := order.RestoreCharge(c.ID(), c.PackageID(), c.Type(), c.Status(), c.Amount(), c.TransactionAmount())
	return out
}

func cloneDiscount(d *order.Discount) *order.Discount {
	out, _ := order.RestoreDiscount(d.ID(), d.OrderID(), d.Type(), d.Status(), d.Amount())
	return out
}

type memOrders struct{ u *memUoW }

func (r memOrders) Add(_ context.Context, o *order.DeliveryOrder) error {
	r.u.data().orders[o.ID().String()] = cloneOrder(o)
	return nil
}

func (r memOrders) Update(_ context.Context, o *order.DeliveryOrder) error {
	d := r.u.data()
	stored, ok := d.orders[o.ID().String()]
	if !ok {
		return errs.NewObjectNotFoundError("order", o.ID().String())
	}
	if stored.Version() != o.Version() {
		return errs.NewVersionIsInvalidError("order")
	}
	o.AdvanceVersion()
	d.orders[o.ID().String()] = cloneOrder(o)
	return nil
}

func (r memOrders) Get(_ context.Context, id kernel.UUID) (*order.DeliveryOrder, error) {
	o, ok := r.u.data().orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return cloneOrder(o), nil
}

func (r memOrders) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.DeliveryOrder, error) {
	return r.Get(ctx, id)
}

type memPackages struct{ u *memUoW }

func (r memPackages) Add(_ context.Context, packages ...*order.Package) error {
	for _, p := range packages {
		r.u.data().packages[p.ID().String()] = p.State()
	}
	return nil
}

func (r memPackages) Update(_ context.Context, packages ...*order.Package) error {
	if r.u.store.failPackageUpdate != nil {
		return r.u.store.failPackageUpdate
	}
	d := r.u.data()
	for _, p := range packages {
		if _, ok := d.packages[p.ID().String()]; !ok {
			return errs.NewObjectNotFoundError("package", p.ID().String())
		}
		d.packages[p.ID().String()] = p.State()
	}
	return nil
}

func (r memPackages) Get(_ context.Context, id kernel.UUID) (*order.Package, error) {
	st, ok := r.u.data().packages[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("package", id.String())
	}
	return order.RestorePackage(st)
}

func (r memPackages) GetByOrder(_ context.Context, orderID kernel.UUID) ([]*order.Package, error) {
	var out []*order.Package
	for _, st := range r.u.data().packages {
		if st.OrderID.IsEqual(orderID) {
			p, err := order.RestorePackage(st)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b *order.Package) int { return a.State().CreatedAt.Compare(b.State().CreatedAt) })
	return out, nil
}

func (r memPackages) Delete(_ context.Context, id kernel.UUID) error {
	d := r.u.data()
	for _, c := range d.charges {
		if c.PackageID().IsEqual(id) {
			return errors.New("foreign key violation: charges reference package")
		}
	}
	delete(d.packages, id.String())
	return nil
}

func (r memPackages) FindExpired(_ context.Context, now time.Time) ([]kernel.UUID, error) {
	var out []kernel.UUID
	for _, st := range r.u.data().packages {
		if st.Status != order.Request && st.Status != order.Pending {
			continue
		}
		if st.PickUpStart == nil || st.PickUpStart.Before(now) {
			out = append(out, st.ID)
		}
	}
	return out, nil
}

func (r memPackages) ExistsTrackingNumber(_ context.Context, tn kernel.TrackingNumber) (bool, error) {
	for _, st := range r.u.data().packages {
		if st.TrackingNumber == tn {
			return true, nil
		}
	}
	return false, nil
}

type memCharges struct{ u *memUoW }

func (r memCharges) Add(_ context.Context, charges ...*order.Charge) error {
	for _, c := range charges {
		r.u.data().charges[c.ID().String()] = cloneCharge(c)
	}
	return nil
}

func (r memCharges) Update(ctx context.Context, charges ...*order.Charge) error {
	return r.Add(ctx, charges...)
}

func (r memCharges) GetByIDs(_ context.Context, ids []kernel.UUID) ([]*order.Charge, error) {
	var out []*order.Charge
	for _, id := range ids {
		if c, ok := r.u.data().charges[id.String()]; ok {
			out = append(out, cloneCharge(c))
		}
	}
	return out, nil
}

func (r memCharges) GetByPackages(_ context.Context, packageIDs []kernel.UUID) ([]*order.Charge, error) {
	var out []*order.Charge
	for _, c := range r.u.data().charges {
		for _, id := range packageIDs {
			if c.PackageID().IsEqual(id) {
				out = append(out, cloneCharge(c))
			}
		}
	}
	return out, nil
}

func (r memCharges) DeleteByPackage(_ context.Context, packageID kernel.UUID) error {
	d := r.u.data()
	for k, c := range d.charges {
		if c.PackageID().IsEqual(packageID) {
			delete(d.charges, k)
		}
	}
	return nil
}

type memDiscounts struct{ u *memUoW }

func (r memDiscounts) Add(_ context.Context, discounts ...*order.Discount) error {
	d := r.u.data()
	for _, nd := range discounts {
		for _, existing := range d.discounts {
			if existing.OrderID().IsEqual(nd.OrderID()) && existing.Type() == nd.Type() {
				return errs.NewValueIsInvalidError("discount type")
			}
		}
		d.discounts[nd.ID().String()] = cloneDiscount(nd)
	}
	return nil
}

func (r memDiscounts) Update(_ context.Context, discounts ...*order.Discount) error {
	for _, d := range discounts {
		r.u.data().discounts[d.ID().String()] = cloneDiscount(d)
	}
	return nil
}

func (r memDiscounts) GetByIDs(_ context.Context, ids []kernel.UUID) ([]*order.Discount, error) {
	var out []*order.Discount
	for _, id := range ids {
		if d, ok := r.u.data().discounts[id.String()]; ok {
			out = append(out, cloneDiscount(d))
		}
	}
	return out, nil
}

func (r memDiscounts) GetByOrder(_ context.Context, orderID kernel.UUID) ([]*order.Discount, error) {
	var out []*order.Discount
	for _, d := range r.u.data().discounts {
		if d.OrderID().IsEqual(orderID) {
			out = append(out, cloneDiscount(d))
		}
	}
	return out, nil
}

type memEvents struct{ u *memUoW }

func (r memEvents) Append(_ context.Context, events ...*order.Event) error {
	d := r.u.data()
	d.events = append(d.events, events...)
	return nil
}

func (r memEvents) ListByPackage(_ context.Context, packageID kernel.UUID) ([]*order.Event, error) {
	var out []*order.Event
	for _, e := range r.u.data().events {
		if e.PackageID().IsEqual(packageID) {
			out = append(out, e)
		}
	}
	return out, nil
}

type memContacts struct{ u *memUoW }

func (r memContacts) GetContact(_ context.Context, id kernel.UUID) (contact.Contact, error) {
	c, ok := r.u.data().contacts[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("contact", id.String())
	}
	return c, nil
}

func (r memContacts) GetAddress(_ context.Context, id kernel.UUID) (contact.Address, error) {
	a, ok := r.u.data().addresses[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("address", id.String())
	}
	return a, nil
}

func (r memContacts) AddContact(_ context.Context, c contact.Contact) error {
	r.u.data().contacts[c.ID().String()] = c
	return nil
}

func (r memContacts) AddAddress(_ context.Context, a contact.Address) error {
	r.u.data().addresses[a.ID().String()] = a
	return nil
}

func (r memContacts) FindOrCreateContactByPhone(
	_ context.Context,
	customerID kernel.UUID,
	phone, name string,
) (*contact.SavedContact, error) {
	d := r.u.data()
	for _, c := range d.contacts {
		saved, ok := c.(*contact.SavedContact)
		if ok && saved.CustomerID().IsEqual(customerID) && saved.Fields().PhoneNumber == phone {
			return saved, nil
		}
	}
	c, err := contact.NewSavedContact(kernel.NewUUID(), customerID, contact.ContactFields{Name: name, PhoneNumber: phone})
	if err != nil {
		return nil, err
	}
	d.contacts[c.ID().String()] = c
	return c, nil
}

func (r memContacts) GetAssociation(_ context.Context, key contact.AssociationKey) (*contact.Association, error) {
	note, ok := r.u.data().associations[key]
	if !ok {
		return nil, errs.NewObjectNotFoundError("association", key.ContactID.String()+"/"+key.AddressID.String())
	}
	return contact.NewAssociation(key.ContactID, key.AddressID, note)
}

func (r memContacts) SaveAssociations(_ context.Context, associations ...*contact.Association) error {
	for _, a := range associations {
		r.u.data().associations[a.Key()] = a.LastNote()
	}
	return nil
}
