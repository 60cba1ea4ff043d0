package contact

import (
	"errors"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	ErrContactIsNotConstructed = errors.New("contact must be created via its constructor")
	ErrContactNameOrPhone      = errs.NewValueIsRequiredError("contact name or phone number")
)

type ContactFields struct {
	Name        string
	PhoneNumber string
	Email       string
	Company     string
}

func (f ContactFields) validate() error {
	if strings.TrimSpace(f.Name) == "" && strings.TrimSpace(f.PhoneNumber) == "" {
		return ErrContactNameOrPhone
	}
	return nil
}

// Contact is satisfied by both SavedContact and ContactSnapshot.
type Contact interface {
	ID() kernel.UUID
	CustomerID() kernel.UUID
	Fields() ContactFields
	IsSaved() bool
	// ParentID is the saved record a snapshot was taken from, nil for saved contacts.
	ParentID() *kernel.UUID
	// OriginID resolves to the saved record behind this contact.
	OriginID() kernel.UUID
	Snapshot(id kernel.UUID) (*ContactSnapshot, error)
}

type SavedContact struct {
	id         kernel.UUID
	customerID kernel.UUID
	fields     ContactFields
	guard      guard.ConstructorGuard
}

func NewSavedContact(id, customerID kernel.UUID, fields ContactFields) (*SavedContact, error) {
	if err := errors.Join(id.Validate(), customerID.Validate(), fields.validate()); err != nil {
		return nil, err
	}
	return &SavedContact{id: id, customerID: customerID, fields: fields, guard: guard.NewConstructorGuard()}, nil
}

func (c *SavedContact) Validate() error {
	if c == nil {
		return ErrContactIsNotConstructed
	}
	return c.guard.Validate(ErrContactIsNotConstructed)
}

func (c *SavedContact) ID() kernel.UUID         { return c.id }
func (c *SavedContact) CustomerID() kernel.UUID { return c.customerID }
func (c *SavedContact) Fields() ContactFields   { return c.fields }
func (c *SavedContact) IsSaved() bool           { return true }
func (c *SavedContact) ParentID() *kernel.UUID  { return nil }
func (c *SavedContact) OriginID() kernel.UUID   { return c.id }

// Update replaces the editable fields. Snapshots taken earlier are unaffected.
func (c *SavedContact) Update(fields ContactFields) error {
	if err := fields.validate(); err != nil {
		return err
	}
	c.fields = fields
	return nil
}

func (c *SavedContact) Snapshot(id kernel.UUID) (*ContactSnapshot, error) {
	parentID := c.id
	return NewContactSnapshot(id, c.customerID, &parentID, c.fields)
}

// ContactSnapshot is frozen at creation. It has no mutators.
type ContactSnapshot struct {
	id         kernel.UUID
	customerID kernel.UUID
	parentID   *kernel.UUID
	fields     ContactFields
	guard      guard.ConstructorGuard
}

func NewContactSnapshot(id, customerID kernel.UUID, parentID *kernel.UUID, fields ContactFields) (*ContactSnapshot, error) {
	if err := errors.Join(id.Validate(), customerID.Validate()); err != nil {
		return nil, err
	}
	return &ContactSnapshot{
		id:         id,
		customerID: customerID,
		parentID:   parentID,
		fields:     fields,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c *ContactSnapshot) Validate() error {
	if c == nil {
		return ErrContactIsNotConstructed
	}
	return c.guard.Validate(ErrContactIsNotConstructed)
}

func (c *ContactSnapshot) ID() kernel.UUID         { return c.id }
func (c *ContactSnapshot) CustomerID() kernel.UUID { return c.customerID }
func (c *ContactSnapshot) Fields() ContactFields   { return c.fields }
func (c *ContactSnapshot) IsSaved() bool           { return false }
func (c *ContactSnapshot) ParentID() *kernel.UUID  { return c.parentID }

func (c *ContactSnapshot) OriginID() kernel.UUID {
	if c.parentID != nil {
		return *c.parentID
	}
	return c.id
}

// Snapshot of a snapshot keeps pointing at the original saved record.
func (c *ContactSnapshot) Snapshot(id kernel.UUID) (*ContactSnapshot, error) {
	return NewContactSnapshot(id, c.customerID, c.parentID, c.fields)
}
