package commands

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrDuplicateOrderCommandIsNotConstructed = errors.New(
	"DuplicateOrderCommand must be created via NewDuplicateOrderCommand constructor",
)

// DuplicateOrderCommand clones sourceOrderID into newOrderID. A non-nil
// pickUpStart is applied to every new package; nil lets placement default it.
type DuplicateOrderCommand struct { //nolint:recvcheck //using for validation
	sourceOrderID kernel.UUID
	newOrderID    kernel.UUID
	pickUpStart   *time.Time

	guard guard.ConstructorGuard
}

func NewDuplicateOrderCommand(sourceOrderID, newOrderID kernel.UUID, pickUpStart *time.Time) (DuplicateOrderCommand, error) {
	if err := errors.Join(sourceOrderID.Validate(), newOrderID.Validate()); err != nil {
		return DuplicateOrderCommand{}, err
	}
	return DuplicateOrderCommand{
		sourceOrderID: sourceOrderID,
		newOrderID:    newOrderID,
		pickUpStart:   pickUpStart,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c DuplicateOrderCommand) Validate() error {
	return c.guard.Validate(ErrDuplicateOrderCommandIsNotConstructed)
}

func (c DuplicateOrderCommand) SourceOrderID() kernel.UUID { return c.sourceOrderID }
func (c DuplicateOrderCommand) NewOrderID() kernel.UUID    { return c.newOrderID }
func (c DuplicateOrderCommand) PickUpStart() *time.Time    { return c.pickUpStart }
