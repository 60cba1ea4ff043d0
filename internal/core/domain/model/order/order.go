package order

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when a DeliveryOrder instance was not created
	// through NewDeliveryOrder or RestoreDeliveryOrder.
	ErrOrderIsNotConstructed = errors.New("DeliveryOrder must be created via NewDeliveryOrder constructor")

	// ErrOrderAlreadyPlaced guards the one-time placedAt stamp.
	ErrOrderAlreadyPlaced = errs.NewValueIsInvalidError("order is already placed")
)

// DeliveryOrder is the aggregate root grouping the packages a customer
// ships together. It owns the order status and the placement timestamp;
// packages, charges and discounts reference it by id.
//
// DeliveryOrder follows these invariants:
//   - Must have a valid id and customer id
//   - Starts as REQUEST (customer-initiated) or STARTED (direct)
//   - Status only moves forward along the machine in status.go
//   - placedAt is nil until the order is PLACED and never changes afterwards
//
// version is the optimistic concurrency token; repositories compare it on
// update and bump it via AdvanceVersion.
type DeliveryOrder struct {
	id               kernel.UUID
	customerID       kernel.UUID
	branchID         *kernel.UUID
	agentID          *kernel.UUID
	status           Status
	placedAt         *time.Time
	isCustomerPaying bool
	createdAt        time.Time
	version          int

	guard guard.ConstructorGuard
}

// NewDeliveryOrder creates an open order. initial must be Request or Started.
//
// Example:
//
//	o, err := NewDeliveryOrder(kernel.NewUUID(), customerID, nil, nil, Started, true, now)
func NewDeliveryOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	branchID *kernel.UUID,
	agentID *kernel.UUID,
	initial Status,
	isCustomerPaying bool,
	createdAt time.Time,
) (*DeliveryOrder, error) {
	o := &DeliveryOrder{
		branchID:         branchID,
		agentID:          agentID,
		isCustomerPaying: isCustomerPaying,
		createdAt:        createdAt.UTC(),
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setInitialStatus(initial),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreDeliveryOrder rebuilds an order from persisted state without
// applying creation rules.
func RestoreDeliveryOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	branchID *kernel.UUID,
	agentID *kernel.UUID,
	status Status,
	placedAt *time.Time,
	isCustomerPaying bool,
	createdAt time.Time,
	version int,
) (*DeliveryOrder, error) {
	o := &DeliveryOrder{
		branchID:         branchID,
		agentID:          agentID,
		placedAt:         placedAt,
		isCustomerPaying: isCustomerPaying,
		createdAt:        createdAt,
		version:          version,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = status

	return o, nil
}

// Validate ensures the order was built through NewDeliveryOrder or
// RestoreDeliveryOrder.
//
// Returns:
//   - nil if the order is valid
//   - ErrOrderIsNotConstructed for nil or zero-value orders
//
// Repositories call it before every write.
func (o *DeliveryOrder) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by id.
//
// Returns:
//   - true if both orders have the same id
//   - false if other is nil or the ids differ
func (o *DeliveryOrder) IsEqual(other *DeliveryOrder) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *DeliveryOrder) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the customer the order belongs to.
func (o *DeliveryOrder) CustomerID() kernel.UUID {
	return o.customerID
}

// BranchID returns the optional branch the order was created for.
func (o *DeliveryOrder) BranchID() *kernel.UUID {
	return o.branchID
}

// AgentID returns the staff member who created the order, if any.
func (o *DeliveryOrder) AgentID() *kernel.UUID {
	return o.agentID
}

// Status returns the current lifecycle status.
func (o *DeliveryOrder) Status() Status {
	return o.status
}

// PlacedAt is nil until the order is placed.
func (o *DeliveryOrder) PlacedAt() *time.Time {
	return o.placedAt
}

// IsCustomerPaying reports whether the customer, rather than the
// recipient, pays the delivery fees.
func (o *DeliveryOrder) IsCustomerPaying() bool {
	return o.isCustomerPaying
}

// CreatedAt returns the creation time in UTC.
func (o *DeliveryOrder) CreatedAt() time.Time {
	return o.createdAt
}

// Version returns the optimistic concurrency token loaded with the order.
func (o *DeliveryOrder) Version() int {
	return o.version
}

// AdvanceVersion is called by the repository after a successful versioned update.
func (o *DeliveryOrder) AdvanceVersion() {
	o.version++
}

// Start moves a delivery request to STARTED.
func (o *DeliveryOrder) Start() error {
	return o.apply(o.status.Start)
}

// MarkPending moves an open order to PENDING (awaiting confirmation or payment).
func (o *DeliveryOrder) MarkPending() error {
	return o.apply(o.status.MarkPending)
}

// Place moves the order to PLACED and stamps placedAt with now.
// Placing twice is an error: placedAt is written exactly once.
func (o *DeliveryOrder) Place(now time.Time) error {
	if o.placedAt != nil {
		return ErrOrderAlreadyPlaced
	}
	if err := o.apply(o.status.Place); err != nil {
		return err
	}
	placedAt := now.UTC()
	o.placedAt = &placedAt
	return nil
}

// Complete moves a PLACED order to COMPLETE.
//
// Returns:
//   - nil on success
//   - a validation error if the order is not PLACED; the status is unchanged
func (o *DeliveryOrder) Complete() error {
	return o.apply(o.status.Complete)
}

// Cancel moves a PLACED order to CANCELED. Orders that were never placed
// are closed with MarkIncomplete instead.
//
// Returns:
//   - nil on success
//   - a validation error from any other status; the status is unchanged
//
// Callers normally reach it through ReconcileWithPackages once every
// package is closed.
func (o *DeliveryOrder) Cancel() error {
	return o.apply(o.status.Cancel)
}

// MarkIncomplete closes an order that will not be delivered. It fails for
// orders that are already in a terminal status.
func (o *DeliveryOrder) MarkIncomplete() error {
	return o.apply(o.status.MarkIncomplete)
}

// ReconcileWithPackages aligns the order status with the statuses of all
// its packages and reports whether the order changed:
//   - a PLACED order whose packages are all CANCELED or INCOMPLETE becomes CANCELED
//   - an updatable order whose packages are all INCOMPLETE becomes INCOMPLETE
//
// An order without packages is left alone. Calling it again after a change
// is a no-op.
func (o *DeliveryOrder) ReconcileWithPackages(statuses []Status) (bool, error) {
	if len(statuses) == 0 {
		return false, nil
	}

	allIncomplete := true
	allClosed := true
	for _, s := range statuses {
		if s != Incomplete {
			allIncomplete = false
		}
		if s != Incomplete && s != Canceled {
			allClosed = false
		}
	}

	switch {
	case o.status == Placed && allClosed:
		return true, o.Cancel()
	case o.status.IsUpdatable() && allIncomplete:
		return true, o.MarkIncomplete()
	default:
		return false, nil
	}
}

// Duplicate returns a fresh STARTED order for the same customer lineage.
// Only PLACED or COMPLETE orders can be duplicated.
func (o *DeliveryOrder) Duplicate(newID kernel.UUID, now time.Time) (*DeliveryOrder, error) {
	if !o.status.CanBeDuplicated() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("invalid status for duplication: %s", o.status),
		)
	}
	return NewDeliveryOrder(newID, o.customerID, o.branchID, o.agentID, Started, o.isCustomerPaying, now)
}

func (o *DeliveryOrder) apply(next func() (Status, error)) error {
	s, err := next()
	if err != nil {
		return err
	}
	o.status = s
	return nil
}

func (o *DeliveryOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *DeliveryOrder) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	o.customerID = id
	return nil
}

func (o *DeliveryOrder) setInitialStatus(s Status) error {
	if s != Request && s != Started {
		return errs.NewValueIsInvalidErrorWithCause(
			"initial status is invalid",
			fmt.Errorf("%s is neither %s nor %s", s, Request, Started),
		)
	}
	o.status = s
	return nil
}
