package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var (
	ErrUpdatePackageCommandIsNotConstructed = errors.New(
		"UpdatePackageCommand must be created via NewUpdatePackageCommand constructor",
	)
	ErrEmptyPatch = errors.New("patch has no fields")
)

// UpdatePackageCommand carries a partial update. privileged marks staff
// callers, who may edit restricted fields and placed packages.
type UpdatePackageCommand struct { //nolint:recvcheck //using for validation
	packageID  kernel.UUID
	patch      order.Patch
	privileged bool

	guard guard.ConstructorGuard
}

func NewUpdatePackageCommand(packageID kernel.UUID, patch order.Patch, privileged bool) (UpdatePackageCommand, error) {
	var emptyErr error
	if patch.IsEmpty() {
		emptyErr = ErrEmptyPatch
	}
	if err := errors.Join(packageID.Validate(), emptyErr); err != nil {
		return UpdatePackageCommand{}, err
	}
	return UpdatePackageCommand{
		packageID:  packageID,
		patch:      patch,
		privileged: privileged,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdatePackageCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePackageCommandIsNotConstructed)
}

func (c UpdatePackageCommand) PackageID() kernel.UUID {
	return c.packageID
}

func (c UpdatePackageCommand) Patch() order.Patch {
	return c.patch
}

func (c UpdatePackageCommand) IsPrivileged() bool {
	return c.privileged
}
