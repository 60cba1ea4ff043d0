package order

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// ErrPlacementViaPatch rejects a status patch to PLACED. Packages are placed
// only together with their order.
var ErrPlacementViaPatch = errs.NewValueIsInvalidErrorWithCause(
	"status",
	errors.New("packages are placed through order placement"),
)

// Patch is a partial package update. Nil pointers and unspecified
// Nullables leave the field untouched; kernel.Null clears it.
//
// The first group is public and editable by the customer while the package
// is updatable. The second group is restricted to privileged callers.
type Patch struct {
	Size          *Size
	Priority      *Priority
	FromContactID *kernel.UUID
	ToContactID   *kernel.UUID
	FromAddressID *kernel.UUID
	ToAddressID   *kernel.UUID
	PickUpNote    *string
	DropOffNote   *string
	PickUpStart   *time.Time

	Status              *Status
	DriverID            kernel.Nullable[kernel.UUID]
	AssignmentID        kernel.Nullable[kernel.UUID]
	StaffNote           *string
	PickUpChangeNote    *string
	IsAssignable        *bool
	EnableNotifications *bool
}

func (p Patch) touchesPublic() bool {
	return p.Size != nil || p.Priority != nil ||
		p.FromContactID != nil || p.ToContactID != nil ||
		p.FromAddressID != nil || p.ToAddressID != nil ||
		p.PickUpNote != nil || p.DropOffNote != nil || p.PickUpStart != nil
}

func (p Patch) touchesRestricted() bool {
	return p.Status != nil || p.DriverID.IsSpecified() || p.AssignmentID.IsSpecified() ||
		p.StaffNote != nil || p.PickUpChangeNote != nil ||
		p.IsAssignable != nil || p.EnableNotifications != nil
}

func (p Patch) IsEmpty() bool {
	return !p.touchesPublic() && !p.touchesRestricted()
}

// TouchesPickupTime reports whether the pick-up start is being changed.
func (p Patch) TouchesPickupTime() bool {
	return p.PickUpStart != nil
}

// ApplyPatch validates the whole patch and then applies it, so a rejected
// patch leaves the package unchanged. The caller resolves PickUpStart
// against business hours first.
func (p *Package) ApplyPatch(patch Patch, privileged bool) error {
	if patch.touchesRestricted() && !privileged {
		return errs.NewOperationNotPermittedError("update restricted package fields")
	}
	if patch.touchesPublic() && !privileged && !p.state.Status.IsUpdatable() {
		return errs.NewOperationNotPermittedError("update package in status " + p.state.Status.String())
	}

	if err := p.validatePatch(patch); err != nil {
		return err
	}

	s := &p.state
	if patch.Size != nil {
		s.Size = *patch.Size
	}
	if patch.Priority != nil {
		s.Priority = *patch.Priority
	}
	if patch.FromContactID != nil {
		s.FromContactID = patch.FromContactID
	}
	if patch.ToContactID != nil {
		s.ToContactID = patch.ToContactID
	}
	if patch.FromAddressID != nil {
		s.FromAddressID = patch.FromAddressID
	}
	if patch.ToAddressID != nil {
		s.ToAddressID = patch.ToAddressID
	}
	if patch.PickUpNote != nil {
		s.PickUpNote = *patch.PickUpNote
	}
	if patch.DropOffNote != nil {
		s.DropOffNote = *patch.DropOffNote
	}
	if patch.PickUpStart != nil {
		p.SetPickupWindow(*patch.PickUpStart)
	}
	if patch.Status != nil {
		s.Status = *patch.Status
	}
	if patch.DriverID.IsSpecified() {
		s.DriverID = patch.DriverID.Ptr()
	}
	if patch.AssignmentID.IsSpecified() {
		s.AssignmentID = patch.AssignmentID.Ptr()
	}
	if patch.StaffNote != nil {
		s.StaffNote = *patch.StaffNote
	}
	if patch.PickUpChangeNote != nil {
		s.PickUpChangeNote = *patch.PickUpChangeNote
	}
	if patch.IsAssignable != nil {
		s.IsAssignable = *patch.IsAssignable
	}
	if patch.EnableNotifications != nil {
		s.EnableNotifications = *patch.EnableNotifications
	}
	return nil
}

func (p *Package) validatePatch(patch Patch) error {
	var errList []error
	if patch.Size != nil {
		errList = append(errList, patch.Size.Validate())
	}
	if patch.Priority != nil {
		errList = append(errList, patch.Priority.Validate())
	}
	for _, id := range []*kernel.UUID{patch.FromContactID, patch.ToContactID, patch.FromAddressID, patch.ToAddressID} {
		if id != nil {
			errList = append(errList, id.Validate())
		}
	}
	if patch.Status != nil && *patch.Status != p.state.Status {
		if *patch.Status == Placed {
			errList = append(errList, ErrPlacementViaPatch)
		} else {
			errList = append(errList, p.state.Status.ValidateTransition(*patch.Status))
		}
	}
	return errors.Join(errList...)
}
