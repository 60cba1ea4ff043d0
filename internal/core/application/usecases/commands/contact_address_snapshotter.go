package commands

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/contact"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// ContactAddressSnapshotter freezes the parties of packages that are about
// to be placed. The order of the steps is fixed:
//
//  1. write pick-up and drop-off notes onto the associations of the current
//     (contact, address) pairs
//  2. copy every referenced contact and address into an immutable snapshot
//  3. re-point the packages to the snapshots
//
// Notes must go first: once packages point at snapshots, the associations
// of the saved records can no longer be found from the package.
type ContactAddressSnapshotter struct{}

func NewContactAddressSnapshotter() ContactAddressSnapshotter {
	return ContactAddressSnapshotter{}
}

// Snapshot mutates packages in memory; the caller persists them.
func (s ContactAddressSnapshotter) Snapshot(
	ctx context.Context,
	repo ports.ContactAddressRepository,
	packages []*order.Package,
) error {
	if err := s.saveNotes(ctx, repo, packages); err != nil {
		return err
	}

	contacts := make(map[string]kernel.UUID)
	addresses := make(map[string]kernel.UUID)

	for _, p := range packages {
		fromContact, err := s.snapshotContact(ctx, repo, contacts, *p.FromContactID())
		if err != nil {
			return err
		}
		toContact, err := s.snapshotContact(ctx, repo, contacts, *p.ToContactID())
		if err != nil {
			return err
		}
		fromAddress, err := s.snapshotAddress(ctx, repo, addresses, *p.FromAddressID())
		if err != nil {
			return err
		}
		toAddress, err := s.snapshotAddress(ctx, repo, addresses, *p.ToAddressID())
		if err != nil {
			return err
		}

		p.Repoint(fromContact, toContact, fromAddress, toAddress)
	}

	return nil
}

func (s ContactAddressSnapshotter) saveNotes(
	ctx context.Context,
	repo ports.ContactAddressRepository,
	packages []*order.Package,
) error {
	byKey := make(map[contact.AssociationKey]*contact.Association)
	var ordered []*contact.Association

	note := func(contactID, addressID *kernel.UUID, text string) error {
		if text == "" || contactID == nil || addressID == nil {
			return nil
		}
		key := contact.AssociationKey{ContactID: *contactID, AddressID: *addressID}
		if a, ok := byKey[key]; ok {
			a.SetNote(text)
			return nil
		}

		a, err := repo.GetAssociation(ctx, key)
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			if a, err = contact.NewAssociation(key.ContactID, key.AddressID, text); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			a.SetNote(text)
		}

		byKey[key] = a
		ordered = append(ordered, a)
		return nil
	}

	for _, p := range packages {
		if err := errors.Join(
			note(p.FromContactID(), p.FromAddressID(), p.PickUpNote()),
			note(p.ToContactID(), p.ToAddressID(), p.DropOffNote()),
		); err != nil {
			return err
		}
	}

	if len(ordered) == 0 {
		return nil
	}
	return repo.SaveAssociations(ctx, ordered...)
}

func (s ContactAddressSnapshotter) snapshotContact(
	ctx context.Context,
	repo ports.ContactAddressRepository,
	done map[string]kernel.UUID,
	id kernel.UUID,
) (kernel.UUID, error) {
	if snapID, ok := done[id.String()]; ok {
		return snapID, nil
	}
	original, err := repo.GetContact(ctx, id)
	if err != nil {
		return kernel.UUID{}, err
	}
	snap, err := original.Snapshot(kernel.NewUUID())
	if err != nil {
		return kernel.UUID{}, err
	}
	if err = repo.AddContact(ctx, snap); err != nil {
		return kernel.UUID{}, err
	}
	done[id.String()] = snap.ID()
	return snap.ID(), nil
}

func (s ContactAddressSnapshotter) snapshotAddress(
	ctx context.Context,
	repo ports.ContactAddressRepository,
	done map[string]kernel.UUID,
	id kernel.UUID,
) (kernel.UUID, error) {
	if snapID, ok := done[id.String()]; ok {
		return snapID, nil
	}
	original, err := repo.GetAddress(ctx, id)
	if err != nil {
		return kernel.UUID{}, err
	}
	snap, err := original.Snapshot(kernel.NewUUID())
	if err != nil {
		return kernel.UUID{}, err
	}
	if err = repo.AddAddress(ctx, snap); err != nil {
		return kernel.UUID{}, err
	}
	done[id.String()] = snap.ID()
	return snap.ID(), nil
}
