package commands

import (
	"context"
)

// CancelPackageCommandHandler cancels a package on behalf of a caller.
//
// Example:
//
//	cmd, _ := NewCancelPackageCommand(packageID, "customer request")
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrExternalCallFailed) {
//	    // assignment service refused; nothing was written
//	}
type CancelPackageCommandHandler struct {
	uowFactory PackageUoWFactory
	canceller  PackageCanceller
}

func NewCancelPackageCommandHandler(uowFactory PackageUoWFactory, canceller PackageCanceller) CancelPackageCommandHandler {
	return CancelPackageCommandHandler{uowFactory: uowFactory, canceller: canceller}
}

func (h CancelPackageCommandHandler) Handle(ctx context.Context, cmd CancelPackageCommand) error {
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

	if err := h.canceller.Cancel(ctx, uow, cmd.PackageID(), cmd.Reason()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
