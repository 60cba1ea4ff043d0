package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrCancelPackageCommandIsNotConstructed = errors.New(
	"CancelPackageCommand must be created via NewCancelPackageCommand constructor",
)

type CancelPackageCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.UUID
	reason    string

	guard guard.ConstructorGuard
}

func NewCancelPackageCommand(packageID kernel.UUID, reason string) (CancelPackageCommand, error) {
	if err := packageID.Validate(); err != nil {
		return CancelPackageCommand{}, err
	}
	return CancelPackageCommand{packageID: packageID, reason: reason, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelPackageCommand) Validate() error {
	return c.guard.Validate(ErrCancelPackageCommandIsNotConstructed)
}

func (c CancelPackageCommand) PackageID() kernel.UUID {
	return c.packageID
}

func (c CancelPackageCommand) Reason() string {
	return c.reason
}
