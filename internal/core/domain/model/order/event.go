package order

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent constructor")

type EventName string

const (
	EventOrderPlaced              EventName = "ORDER_PLACED"
	EventPackageCancelled         EventName = "PACKAGE_CANCELLED"
	EventPackageIncomplete        EventName = "PACKAGE_INCOMPLETE"
	EventDeliveryRequested        EventName = "DELIVERY_REQUESTED"
	EventDeliveryRequestConfirmed EventName = "DELIVERY_REQUEST_CONFIRMED"
	EventPackageUpdatedByStaff    EventName = "PACKAGE_UPDATED_BY_STAFF"
)

// Event is one entry in a package's append-only history.
type Event struct {
	id           kernel.UUID
	packageID    kernel.UUID
	name         EventName
	assignmentID *kernel.UUID
	metadata     map[string]any
	createdAt    time.Time

	guard guard.ConstructorGuard
}

func NewEvent(
	id, packageID kernel.UUID,
	name EventName,
	assignmentID *kernel.UUID,
	metadata map[string]any,
	createdAt time.Time,
) (*Event, error) {
	var nameErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("event name")
	}
	if err := errors.Join(id.Validate(), packageID.Validate(), nameErr); err != nil {
		return nil, err
	}
	if metadata == nil {
		metadata = map[string]any{}
	}

	return &Event{
		id:           id,
		packageID:    packageID,
		name:         name,
		assignmentID: assignmentID,
		metadata:     metadata,
		createdAt:    createdAt.UTC(),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// NewPackageEvent records name against p at now, carrying p's assignment.
func NewPackageEvent(p *Package, name EventName, metadata map[string]any, now time.Time) (*Event, error) {
	return NewEvent(kernel.NewUUID(), p.ID(), name, p.AssignmentID(), metadata, now)
}

func (e *Event) Validate() error {
	if e == nil {
		return ErrEventIsNotConstructed
	}
	return e.guard.Validate(ErrEventIsNotConstructed)
}

func (e *Event) ID() kernel.UUID            { return e.id }
func (e *Event) PackageID() kernel.UUID     { return e.packageID }
func (e *Event) Name() EventName            { return e.name }
func (e *Event) AssignmentID() *kernel.UUID { return e.assignmentID }
func (e *Event) Metadata() map[string]any   { return e.metadata }
func (e *Event) CreatedAt() time.Time       { return e.createdAt }
