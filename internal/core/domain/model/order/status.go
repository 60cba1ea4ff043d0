package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Status is the lifecycle state of an order or a package. Packages mirror
// the order's machine.
//
//	REQUEST ──┬──> STARTED ──┬──> PENDING ──> PLACED ──┬──> COMPLETE
//	          │              │                   ^      ├──> CANCELED
//	          └──────────────┴───────────────────┘      └──> INCOMPLETE
//
// REQUEST, STARTED and PENDING may also end in INCOMPLETE.
type Status string

const (
	// Unknown is the zero value and never valid. It catches uninitialized
	// statuses and failed transitions.
	Unknown Status = ""

	// Request is the initial status of a customer-initiated delivery
	// request. The recipient side is filled in later.
	Request Status = "REQUEST"

	// Started is the initial status of an order created directly by the
	// customer or an agent.
	Started Status = "STARTED"

	// Pending marks a draft waiting for confirmation or payment.
	Pending Status = "PENDING"

	// Placed freezes the order: charges are validated, contacts and
	// addresses are snapshotted and packages become assignable.
	Placed Status = "PLACED"

	// Complete is final: every package was delivered.
	Complete Status = "COMPLETE"

	// Canceled is final and only reachable from Placed.
	Canceled Status = "CANCELED"

	// Incomplete is final: the order or package was closed before delivery.
	Incomplete Status = "INCOMPLETE"
)

func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal statuses have no outgoing edges
	return map[Status][]Status{
		Request: {Started, Pending, Placed, Incomplete},
		Started: {Pending, Placed, Incomplete},
		Pending: {Placed, Incomplete},
		Placed:  {Complete, Canceled, Incomplete},
	}
}

func getValidStatuses() map[Status]struct{} {
	return map[Status]struct{}{
		Request: {}, Started: {}, Pending: {}, Placed: {}, Complete: {}, Canceled: {}, Incomplete: {},
	}
}

// ParseStatus converts the persisted or wire form back to a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return Unknown, err
	}
	return status, nil
}

// Validate checks that s is one of the seven known statuses.
//
// Returns:
//   - nil if the status is valid
//   - errs.ValueIsInvalidError for Unknown and any other string
//
// Statuses read from the database or the wire go through Validate (via
// ParseStatus) before use.
func (s Status) Validate() error {
	if _, ok := getValidStatuses()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// String returns the persisted form of the status, or "UNKNOWN" for the
// zero value. It implements fmt.Stringer.
//
// Example:
//
//	fmt.Println(order.Placed) // Output: "PLACED"
func (s Status) String() string {
	if s == Unknown {
		return "UNKNOWN"
	}
	return string(s)
}

// IsTerminal reports COMPLETE, CANCELED and INCOMPLETE.
func (s Status) IsTerminal() bool {
	return s == Complete || s == Canceled || s == Incomplete
}

// IsUpdatable reports the pre-placement statuses in which public package
// fields may still change and a package may be deleted.
func (s Status) IsUpdatable() bool {
	return s == Request || s == Started || s == Pending
}

// CanBeDuplicated reports whether an order in this status may be cloned.
func (s Status) CanBeDuplicated() bool {
	return s == Placed || s == Complete
}

// ValidateTransition checks that next is reachable from s in one step
// without performing the transition.
//
// Returns:
//   - nil if the edge s -> next exists
//   - the validation error of next if next is not a valid status
//   - errs.ValueIsInvalidError naming both statuses otherwise
//
// Terminal statuses have no outgoing edges, so every transition out of
// COMPLETE, CANCELED or INCOMPLETE fails.
//
// Example:
//
//	if err := order.Started.ValidateTransition(order.Placed); err != nil {
//	    // not reached: STARTED may be placed directly
//	}
func (s Status) ValidateTransition(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	for _, allowed := range getTransitions()[s] {
		if allowed == next {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%s cannot move to %s", s, next),
	)
}

// Start returns Started when s is Request.
//
// Returns:
//   - Started and nil on success
//   - Unknown and a validation error if the transition is not allowed
func (s Status) Start() (Status, error) {
	return s.transition(Started)
}

// MarkPending returns Pending from Request or Started.
func (s Status) MarkPending() (Status, error) {
	return s.transition(Pending)
}

// Place returns Placed from any pre-placement status. The charge and
// business-hour checks that guard placement live in the placement workflow,
// not here.
func (s Status) Place() (Status, error) {
	return s.transition(Placed)
}

// Complete returns Complete from Placed.
func (s Status) Complete() (Status, error) {
	return s.transition(Complete)
}

// Cancel is only reachable from PLACED; earlier statuses end in INCOMPLETE.
func (s Status) Cancel() (Status, error) {
	return s.transition(Canceled)
}

// MarkIncomplete returns Incomplete from any non-terminal status.
func (s Status) MarkIncomplete() (Status, error) {
	return s.transition(Incomplete)
}

func (s Status) transition(next Status) (Status, error) {
	if err := s.ValidateTransition(next); err != nil {
		return Unknown, err
	}
	return next, nil
}
