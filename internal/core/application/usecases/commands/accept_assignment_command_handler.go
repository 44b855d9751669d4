package commands

import (
	"context"
)

// AcceptAssignmentCommandHandler records the carrier's confirmation of a
// delivery assignment.
type AcceptAssignmentCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  OrderChangedPublisher
}

// NewAcceptAssignmentCommandHandler creates a handler for assignment
// confirmations.
func NewAcceptAssignmentCommandHandler(uowFactory OrderUoWFactory, publisher OrderChangedPublisher) AcceptAssignmentCommandHandler {
	return AcceptAssignmentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the confirmation command.
func (h *AcceptAssignmentCommandHandler) Handle(ctx context.Context, cmd AcceptAssignmentCommand) error {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.AcceptAssignment(cmd.CarrierID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishOrderChanged(ctx, h.publisher, aggregate)
	return nil
}
