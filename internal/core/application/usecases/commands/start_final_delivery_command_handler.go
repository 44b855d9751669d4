package commands

import (
	"context"
)

// StartFinalDeliveryCommandHandler records the carrier departing for the
// recipient.
type StartFinalDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  OrderChangedPublisher
}

// NewStartFinalDeliveryCommandHandler creates a handler for last-mile
// departures.
func NewStartFinalDeliveryCommandHandler(uowFactory OrderUoWFactory, publisher OrderChangedPublisher) StartFinalDeliveryCommandHandler {
	return StartFinalDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the departure command.
func (h *StartFinalDeliveryCommandHandler) Handle(ctx context.Context, cmd StartFinalDeliveryCommand) error {
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

	if err = aggregate.StartFinalDelivery(cmd.CarrierID()); err != nil {
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
