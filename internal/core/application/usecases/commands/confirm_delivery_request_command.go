package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/contact"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrConfirmDeliveryRequestCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryRequestCommand must be created via NewConfirmDeliveryRequestCommand constructor",
)

// ConfirmDeliveryRequestCommand is the recipient's answer to a delivery
// request: where to drop the package off.
type ConfirmDeliveryRequestCommand struct { //nolint:recvcheck //using for validation
	packageID   kernel.UUID
	address     contact.AddressFields
	dropOffNote string

	guard guard.ConstructorGuard
}

func NewConfirmDeliveryRequestCommand(
	packageID kernel.UUID,
	address contact.AddressFields,
	dropOffNote string,
) (ConfirmDeliveryRequestCommand, error) {
	if err := packageID.Validate(); err != nil {
		return ConfirmDeliveryRequestCommand{}, err
	}
	return ConfirmDeliveryRequestCommand{
		packageID:   packageID,
		address:     address,
		dropOffNote: dropOffNote,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmDeliveryRequestCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryRequestCommandIsNotConstructed)
}

func (c ConfirmDeliveryRequestCommand) PackageID() kernel.UUID         { return c.packageID }
func (c ConfirmDeliveryRequestCommand) Address() contact.AddressFields { return c.address }
func (c ConfirmDeliveryRequestCommand) DropOffNote() string            { return c.dropOffNote }
