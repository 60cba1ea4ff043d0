package commands

import (
	"context"
)

// DeletePackageCommandHandler hard-deletes a package that has not been
// placed. Its charges are deleted first; storage does not cascade.
type DeletePackageCommandHandler struct {
	uowFactory PackageUoWFactory
}

func NewDeletePackageCommandHandler(uowFactory PackageUoWFactory) DeletePackageCommandHandler {
	return DeletePackageCommandHandler{uowFactory: uowFactory}
}

func (h DeletePackageCommandHandler) Handle(ctx context.Context, cmd DeletePackageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	p, o, err := lockPackage(ctx, uow, cmd.PackageID())
	if err != nil {
		return err
	}
	if !p.IsDeletable() {
		return ErrPackageNotDeletable
	}

	if err = uow.ChargeRepository().DeleteByPackage(ctx, p.ID()); err != nil {
		return err
	}
	if err = uow.PackageRepository().Delete(ctx, p.ID()); err != nil {
		return err
	}
	if err = reconcileOrder(ctx, uow, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
