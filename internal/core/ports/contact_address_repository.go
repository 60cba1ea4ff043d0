package ports

import (
	"context"

	"orderflow/internal/core/domain/model/contact"
	"orderflow/internal/core/domain/model/kernel"
)

// ContactAddressRepository covers the slice of the contact book that order
// workflows need: lookups, snapshot writes, phone-based find-or-create and
// the association notes.
type ContactAddressRepository interface {
	GetContact(ctx context.Context, id kernel.UUID) (contact.Contact, error)
	GetAddress(ctx context.Context, id kernel.UUID) (contact.Address, error)
	AddContact(ctx context.Context, c contact.Contact) error
	AddAddress(ctx context.Context, a contact.Address) error

	// FindOrCreateContactByPhone returns the customer's saved contact with
	// this phone number, creating it with name when none exists.
	FindOrCreateContactByPhone(ctx context.Context, customerID kernel.UUID, phone, name string) (*contact.SavedContact, error)

	// GetAssociation returns errs.ObjectNotFoundError when the pair has none.
	GetAssociation(ctx context.Context, key contact.AssociationKey) (*contact.Association, error)
	SaveAssociations(ctx context.Context, associations ...*contact.Association) error
}
