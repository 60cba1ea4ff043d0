package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrDeletePackageCommandIsNotConstructed = errors.New(
	"DeletePackageCommand must be created via NewDeletePackageCommand constructor",
)

type DeletePackageCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeletePackageCommand(packageID kernel.UUID) (DeletePackageCommand, error) {
	if err := packageID.Validate(); err != nil {
		return DeletePackageCommand{}, err
	}
	return DeletePackageCommand{packageID: packageID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeletePackageCommand) Validate() error {
	return c.guard.Validate(ErrDeletePackageCommandIsNotConstructed)
}

func (c DeletePackageCommand) PackageID() kernel.UUID {
	return c.packageID
}
