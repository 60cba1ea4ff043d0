package contact

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
)

// AssociationKey identifies a (contact, address) pairing.
type AssociationKey struct {
	ContactID kernel.UUID
	AddressID kernel.UUID
}

// Association carries the note last used for a pickup or drop-off at a
// given contact and address, shared by every order reusing that pair.
type Association struct {
	key      AssociationKey
	lastNote string
}

func NewAssociation(contactID, addressID kernel.UUID, lastNote string) (*Association, error) {
	if err := errors.Join(contactID.Validate(), addressID.Validate()); err != nil {
		return nil, err
	}
	return &Association{key: AssociationKey{ContactID: contactID, AddressID: addressID}, lastNote: lastNote}, nil
}

func (a *Association) Key() AssociationKey    { return a.key }
func (a *Association) ContactID() kernel.UUID { return a.key.ContactID }
func (a *Association) AddressID() kernel.UUID { return a.key.AddressID }
func (a *Association) LastNote() string       { return a.lastNote }

func (a *Association) SetNote(note string) {
	a.lastNote = note
}
