package contact

import (
	"errors"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	ErrAddressIsNotConstructed = errors.New("address must be created via its constructor")
	ErrAddressStreetRequired   = errs.NewValueIsRequiredError("address street")
)

type AddressFields struct {
	Street     string
	Unit       string
	City       string
	Region     string
	PostalCode string
	Country    string
	// Location is nil until the address has been geocoded.
	Location *kernel.GeoPoint
}

func (f AddressFields) validate() error {
	var errList []error
	if strings.TrimSpace(f.Street) == "" {
		errList = append(errList, ErrAddressStreetRequired)
	}
	if f.Location != nil {
		errList = append(errList, f.Location.Validate())
	}
	return errors.Join(errList...)
}

// Address is satisfied by both SavedAddress and AddressSnapshot.
type Address interface {
	ID() kernel.UUID
	CustomerID() kernel.UUID
	Fields() AddressFields
	IsSaved() bool
	ParentID() *kernel.UUID
	OriginID() kernel.UUID
	Snapshot(id kernel.UUID) (*AddressSnapshot, error)
}

type SavedAddress struct {
	id         kernel.UUID
	customerID kernel.UUID
	fields     AddressFields
	guard      guard.ConstructorGuard
}

func NewSavedAddress(id, customerID kernel.UUID, fields AddressFields) (*SavedAddress, error) {
	if err := errors.Join(id.Validate(), customerID.Validate(), fields.validate()); err != nil {
		return nil, err
	}
	return &SavedAddress{id: id, customerID: customerID, fields: fields, guard: guard.NewConstructorGuard()}, nil
}

func (a *SavedAddress) Validate() error {
	if a == nil {
		return ErrAddressIsNotConstructed
	}
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a *SavedAddress) ID() kernel.UUID         { return a.id }
func (a *SavedAddress) CustomerID() kernel.UUID { return a.customerID }
func (a *SavedAddress) Fields() AddressFields   { return a.fields }
func (a *SavedAddress) IsSaved() bool           { return true }
func (a *SavedAddress) ParentID() *kernel.UUID  { return nil }
func (a *SavedAddress) OriginID() kernel.UUID   { return a.id }

func (a *SavedAddress) Update(fields AddressFields) error {
	if err := fields.validate(); err != nil {
		return err
	}
	a.fields = fields
	return nil
}

func (a *SavedAddress) Snapshot(id kernel.UUID) (*AddressSnapshot, error) {
	parentID := a.id
	return NewAddressSnapshot(id, a.customerID, &parentID, a.fields)
}

type AddressSnapshot struct {
	id         kernel.UUID
	customerID kernel.UUID
	parentID   *kernel.UUID
	fields     AddressFields
	guard      guard.ConstructorGuard
}

func NewAddressSnapshot(id, customerID kernel.UUID, parentID *kernel.UUID, fields AddressFields) (*AddressSnapshot, error) {
	if err := errors.Join(id.Validate(), customerID.Validate()); err != nil {
		return nil, err
	}
	return &AddressSnapshot{
		id:         id,
		customerID: customerID,
		parentID:   parentID,
		fields:     fields,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (a *AddressSnapshot) Validate() error {
	if a == nil {
		return ErrAddressIsNotConstructed
	}
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a *AddressSnapshot) ID() kernel.UUID         { return a.id }
func (a *AddressSnapshot) CustomerID() kernel.UUID { return a.customerID }
func (a *AddressSnapshot) Fields() AddressFields   { return a.fields }
func (a *AddressSnapshot) IsSaved() bool           { return false }
func (a *AddressSnapshot) ParentID() *kernel.UUID  { return a.parentID }

func (a *AddressSnapshot) OriginID() kernel.UUID {
	if a.parentID != nil {
		return *a.parentID
	}
	return a.id
}

func (a *AddressSnapshot) Snapshot(id kernel.UUID) (*AddressSnapshot, error) {
	return NewAddressSnapshot(id, a.customerID, a.parentID, a.fields)
}
