package order

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

// PickupWindow is the length of every pick-up slot.
const PickupWindow = 15 * time.Minute

var ErrPackageIsNotConstructed = errors.New("Package must be created via NewPackage constructor")

// Size is the parcel size class used for pricing.
type Size string

const (
	SizeSmall  Size = "SMALL"
	SizeMedium Size = "MEDIUM"
	SizeLarge  Size = "LARGE"
	SizeXLarge Size = "XLARGE"
)

func (s Size) Validate() error {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge, SizeXLarge:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("size", fmt.Errorf("%q is not a valid size", string(s)))
	}
}

// Priority selects the delivery speed. EXPRESS adds a surcharge.
type Priority string

const (
	PriorityStandard Priority = "STANDARD"
	PriorityExpress  Priority = "EXPRESS"
)

func (p Priority) Validate() error {
	switch p {
	case PriorityStandard, PriorityExpress:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%q is not a valid priority", string(p)))
	}
}

// PackageDetails carries the logistics data supplied when a package is
// created. Empty size and nil contacts are accepted here and caught by the
// charge validator before placement.
type PackageDetails struct {
	Size                Size
	Priority            Priority
	FromContactID       *kernel.UUID
	ToContactID         *kernel.UUID
	FromAddressID       *kernel.UUID
	ToAddressID         *kernel.UUID
	PickUpNote          string
	DropOffNote         string
	PickUpStart         *time.Time
	EnableNotifications bool
}

// PackageState is the full persisted shape of a Package.
type PackageState struct {
	ID                  kernel.UUID
	OrderID             kernel.UUID
	Status              Status
	TrackingNumber      kernel.TrackingNumber
	Size                Size
	Priority            Priority
	FromContactID       *kernel.UUID
	ToContactID         *kernel.UUID
	FromAddressID       *kernel.UUID
	ToAddressID         *kernel.UUID
	PickUpNote          string
	DropOffNote         string
	StaffNote           string
	PickUpChangeNote    string
	CancelReason        string
	PickUpStart         *time.Time
	PickUpEnd           *time.Time
	DriverID            *kernel.UUID
	AssignmentID        *kernel.UUID
	IsAssignable        bool
	EnableNotifications bool
	CreatedAt           time.Time
}

// Package is one parcel inside a DeliveryOrder. Its status mirrors the
// order machine; before placement it is a draft the customer edits, after
// placement only privileged callers may touch it.
type Package struct {
	state PackageState
	guard guard.ConstructorGuard
}

// NewPackage creates a draft package in the initial status of its order.
func NewPackage(
	id kernel.UUID,
	orderID kernel.UUID,
	trackingNumber kernel.TrackingNumber,
	initial Status,
	details PackageDetails,
	createdAt time.Time,
) (*Package, error) {
	if details.Priority == "" {
		details.Priority = PriorityStandard
	}

	p := &Package{
		state: PackageState{
			ID:                  id,
			OrderID:             orderID,
			Status:              initial,
			TrackingNumber:      trackingNumber,
			Size:                details.Size,
			Priority:            details.Priority,
			FromContactID:       details.FromContactID,
			ToContactID:         details.ToContactID,
			FromAddressID:       details.FromAddressID,
			ToAddressID:         details.ToAddressID,
			PickUpNote:          details.PickUpNote,
			DropOffNote:         details.DropOffNote,
			EnableNotifications: details.EnableNotifications,
			CreatedAt:           createdAt.UTC(),
		},
		guard: guard.NewConstructorGuard(),
	}
	if details.PickUpStart != nil {
		p.SetPickupWindow(*details.PickUpStart)
	}

	var sizeErr error
	if details.Size != "" {
		sizeErr = details.Size.Validate()
	}

	var statusErr error
	if initial != Request && initial != Started {
		statusErr = errs.NewValueIsInvalidErrorWithCause(
			"initial status is invalid",
			fmt.Errorf("%s is neither %s nor %s", initial, Request, Started),
		)
	}

	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		trackingNumber.Validate(),
		statusErr,
		sizeErr,
		details.Priority.Validate(),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePackage rebuilds a package from persisted state.
//
// Returns:
//   - *Package: the restored package
//   - error: if the id, order id or status is invalid
func RestorePackage(state PackageState) (*Package, error) {
	if err := errors.Join(
		state.ID.Validate(),
		state.OrderID.Validate(),
		state.Status.Validate(),
	); err != nil {
		return nil, err
	}
	return &Package{state: state, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the package was built through NewPackage or
// RestorePackage.
//
// Returns:
//   - nil if the package is valid
//   - ErrPackageIsNotConstructed for nil or zero-value packages
func (p *Package) Validate() error {
	if p == nil {
		return ErrPackageIsNotConstructed
	}
	return p.guard.Validate(ErrPackageIsNotConstructed)
}

// State returns a copy of every field, used by persistence and read models.
func (p *Package) State() PackageState {
	return p.state
}

// ID returns the package's unique identifier.
func (p *Package) ID() kernel.UUID {
	return p.state.ID
}

// OrderID returns the owning DeliveryOrder.
func (p *Package) OrderID() kernel.UUID {
	return p.state.OrderID
}

// Status returns the current lifecycle status.
func (p *Package) Status() Status {
	return p.state.Status
}

// TrackingNumber returns the 13-digit number printed on the label.
func (p *Package) TrackingNumber() kernel.TrackingNumber {
	return p.state.TrackingNumber
}

// Size returns the parcel size, or "" while the draft has none.
func (p *Package) Size() Size {
	return p.state.Size
}

// Priority returns STANDARD unless the customer chose EXPRESS.
func (p *Package) Priority() Priority {
	return p.state.Priority
}

// FromContactID returns the sender contact. After placement it points at a snapshot.
func (p *Package) FromContactID() *kernel.UUID {
	return p.state.FromContactID
}

// ToContactID returns the recipient contact. After placement it points at a snapshot.
func (p *Package) ToContactID() *kernel.UUID {
	return p.state.ToContactID
}

// FromAddressID returns the pick-up address. After placement it points at a snapshot.
func (p *Package) FromAddressID() *kernel.UUID {
	return p.state.FromAddressID
}

// ToAddressID returns the drop-off address. After placement it points at a snapshot.
func (p *Package) ToAddressID() *kernel.UUID {
	return p.state.ToAddressID
}

// PickUpNote returns the courier instructions for pick-up.
func (p *Package) PickUpNote() string {
	return p.state.PickUpNote
}

// DropOffNote returns the courier instructions for drop-off.
func (p *Package) DropOffNote() string {
	return p.state.DropOffNote
}

// PickUpStart returns the start of the pick-up window, nil until one is chosen.
func (p *Package) PickUpStart() *time.Time {
	return p.state.PickUpStart
}

// PickUpEnd returns PickUpStart plus PickupWindow.
func (p *Package) PickUpEnd() *time.Time {
	return p.state.PickUpEnd
}

// DriverID returns the assigned driver, if any.
func (p *Package) DriverID() *kernel.UUID {
	return p.state.DriverID
}

// AssignmentID returns the assignment-service id used to cancel the driver.
func (p *Package) AssignmentID() *kernel.UUID {
	return p.state.AssignmentID
}

// StaffNote returns the internal note visible to staff only.
func (p *Package) StaffNote() string {
	return p.state.StaffNote
}

// IsAssignable reports whether dispatch may pick the package up.
func (p *Package) IsAssignable() bool {
	return p.state.IsAssignable
}

// EnableNotifications reports whether the recipient gets status messages.
func (p *Package) EnableNotifications() bool {
	return p.state.EnableNotifications
}

// CancelReason returns why the package was closed, or "".
func (p *Package) CancelReason() string {
	return p.state.CancelReason
}

// IsDeletable reports whether the package may still be removed.
func (p *Package) IsDeletable() bool {
	return p.state.Status.IsUpdatable()
}

// SetPickupWindow sets pickUpStart and derives pickUpEnd.
func (p *Package) SetPickupWindow(start time.Time) {
	start = start.UTC()
	end := start.Add(PickupWindow)
	p.state.PickUpStart = &start
	p.state.PickUpEnd = &end
}

// Repoint swaps the sender and recipient references, typically to frozen
// contact and address snapshots.
func (p *Package) Repoint(fromContact, toContact, fromAddress, toAddress kernel.UUID) {
	p.state.FromContactID = &fromContact
	p.state.ToContactID = &toContact
	p.state.FromAddressID = &fromAddress
	p.state.ToAddressID = &toAddress
}

// SetRecipient points the drop-off side at a contact and address.
func (p *Package) SetRecipient(contactID, addressID kernel.UUID) {
	p.state.ToContactID = &contactID
	p.state.ToAddressID = &addressID
}

// Start moves a REQUEST package to STARTED.
func (p *Package) Start() error {
	return p.apply(p.state.Status.Start)
}

// MarkPending moves a draft package to PENDING.
func (p *Package) MarkPending() error {
	return p.apply(p.state.Status.MarkPending)
}

// Place freezes the package and makes it available for driver assignment.
func (p *Package) Place() error {
	if err := p.apply(p.state.Status.Place); err != nil {
		return err
	}
	p.state.IsAssignable = true
	return nil
}

// Cancel closes a placed package.
func (p *Package) Cancel(reason string) error {
	if err := p.apply(p.state.Status.Cancel); err != nil {
		return err
	}
	p.state.CancelReason = reason
	p.state.IsAssignable = false
	return nil
}

// MarkIncomplete closes a package that never reached completion.
func (p *Package) MarkIncomplete(reason string) error {
	if err := p.apply(p.state.Status.MarkIncomplete); err != nil {
		return err
	}
	p.state.CancelReason = reason
	p.state.IsAssignable = false
	return nil
}

// Close picks Cancel for placed packages and MarkIncomplete for the rest.
func (p *Package) Close(reason string) (EventName, error) {
	if p.state.Status == Placed {
		return EventPackageCancelled, p.Cancel(reason)
	}
	return EventPackageIncomplete, p.MarkIncomplete(reason)
}

// DuplicateFor returns a STARTED copy of the logistics data under a new
// order and tracking number. Assignment and staff data are not carried.
func (p *Package) DuplicateFor(
	newID kernel.UUID,
	orderID kernel.UUID,
	trackingNumber kernel.TrackingNumber,
	now time.Time,
) (*Package, error) {
	return NewPackage(newID, orderID, trackingNumber, Started, PackageDetails{
		Size:                p.state.Size,
		Priority:            p.state.Priority,
		FromContactID:       p.state.FromContactID,
		ToContactID:         p.state.ToContactID,
		FromAddressID:       p.state.FromAddressID,
		ToAddressID:         p.state.ToAddressID,
		PickUpNote:          p.state.PickUpNote,
		DropOffNote:         p.state.DropOffNote,
		EnableNotifications: p.state.EnableNotifications,
	}, now)
}

func (p *Package) apply(next func() (Status, error)) error {
	s, err := next()
	if err != nil {
		return err
	}
	p.state.Status = s
	return nil
}
