package commands

import (
	"context"
)

// PlaceOrderCommandHandler runs the placement workflow for one order.
type PlaceOrderCommandHandler struct {
	uowFactory UoWFactory
	workflow   OrderPlacementWorkflow
}

func NewPlaceOrderCommandHandler(uowFactory UoWFactory, workflow OrderPlacementWorkflow) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{uowFactory: uowFactory, workflow: workflow}
}

func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
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

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.workflow.Place(ctx, uow, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
