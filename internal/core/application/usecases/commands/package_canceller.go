package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/clock"
)

// ExpiredReason is recorded on packages closed by the nightly sweep.
const ExpiredReason = "Expired"

// PackageCanceller closes one package and cascades the result to its
// order. Interactive cancellation and the expiry sweep both go through it.
//
// A PLACED package becomes CANCELED after its driver assignment, if any, is
// cancelled with the assignment service; a failed call aborts. Any earlier
// status becomes INCOMPLETE. The order is then reconciled against all of
// its packages, which is idempotent.
type PackageCanceller struct {
	assignments ports.DeliveryAssignmentGateway
	clock       clock.Clock
}

func NewPackageCanceller(assignments ports.DeliveryAssignmentGateway, clk clock.Clock) PackageCanceller {
	return PackageCanceller{assignments: assignments, clock: clk}
}

func (c PackageCanceller) Cancel(ctx context.Context, uow PackageUoW, packageID kernel.UUID, reason string) error {
	p, o, err := lockPackage(ctx, uow, packageID)
	if err != nil {
		return err
	}

	if p.Status().IsTerminal() {
		return ErrPackageAlreadyClosed
	}

	return c.close(ctx, uow, p, o, reason)
}

// CancelIfExpired closes the package with ExpiredReason only if, under the
// order lock, it is still REQUEST or PENDING and its pick-up start is
// missing or before now. It reports whether the package was closed.
func (c PackageCanceller) CancelIfExpired(ctx context.Context, uow PackageUoW, packageID kernel.UUID, now time.Time) (bool, error) {
	p, o, err := lockPackage(ctx, uow, packageID)
	if err != nil {
		return false, err
	}

	if !isExpired(p, now) {
		return false, nil
	}

	if err = c.close(ctx, uow, p, o, ExpiredReason); err != nil {
		return false, err
	}
	return true, nil
}

func isExpired(p *order.Package, now time.Time) bool {
	if p.Status() != order.Request && p.Status() != order.Pending {
		return false
	}
	return p.PickUpStart() == nil || p.PickUpStart().Before(now)
}

func (c PackageCanceller) close(
	ctx context.Context,
	uow PackageUoW,
	p *order.Package,
	o *order.DeliveryOrder,
	reason string,
) error {
	if p.Status() == order.Placed && p.AssignmentID() != nil {
		if err := c.assignments.CancelAssignment(ctx, *p.AssignmentID()); err != nil {
			return err
		}
	}

	eventName, err := p.Close(reason)
	if err != nil {
		return err
	}
	if err = uow.PackageRepository().Update(ctx, p); err != nil {
		return err
	}

	if err = reconcileOrder(ctx, uow, o); err != nil {
		return err
	}

	e, err := order.NewPackageEvent(p, eventName, map[string]any{"reason": reason}, c.clock.Now())
	if err != nil {
		return err
	}
	return uow.PackageEventRepository().Append(ctx, e)
}

// lockPackage resolves the package's order, locks it, and re-reads the
// package under the lock so concurrent sibling updates are serialized.
func lockPackage(ctx context.Context, uow PackageUoW, packageID kernel.UUID) (*order.Package, *order.DeliveryOrder, error) {
	p, err := uow.PackageRepository().Get(ctx, packageID)
	if err != nil {
		return nil, nil, err
	}
	o, err := uow.OrderRepository().GetForUpdate(ctx, p.OrderID())
	if err != nil {
		return nil, nil, err
	}
	p, err = uow.PackageRepository().Get(ctx, packageID)
	if err != nil {
		return nil, nil, err
	}
	return p, o, nil
}

// reconcileOrder re-reads every package of o and persists o only if its
// status changed.
func reconcileOrder(ctx context.Context, uow PackageUoW, o *order.DeliveryOrder) error {
	siblings, err := uow.PackageRepository().GetByOrder(ctx, o.ID())
	if err != nil {
		return err
	}
	changed, err := o.ReconcileWithPackages(packageStatuses(siblings))
	if err != nil || !changed {
		return err
	}
	return uow.OrderRepository().Update(ctx, o)
}
