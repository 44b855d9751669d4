package commands

import (
	"context"
	"errors"
	"time"

	"transit/internal/core/ports"
	"transit/internal/pkg/errs"
)

// ErrOperatorNotAuthorized means the acting operator does not manage the
// hub named in the command.
var ErrOperatorNotAuthorized = errors.New("operator does not manage this hub")

// ScanInOrderCommandHandler records an order's physical arrival at a hub.
// The operator's hub membership is checked before the aggregate is
// touched; the sequence rules themselves live on the Order.
type ScanInOrderCommandHandler struct {
	uowFactory UoWFactory
	policy     ports.AccessPolicy
	publisher  OrderChangedPublisher
}

// NewScanInOrderCommandHandler creates a handler for arrival scans.
func NewScanInOrderCommandHandler(
	uowFactory UoWFactory,
	policy ports.AccessPolicy,
	publisher OrderChangedPublisher,
) ScanInOrderCommandHandler {
	return ScanInOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		publisher:  publisher,
	}
}

// Handle processes the scan-in command.
func (h *ScanInOrderCommandHandler) Handle(ctx context.Context, cmd ScanInOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	authorized, err := h.policy.ManagesHub(ctx, cmd.OperatorID(), cmd.HubID())
	if err != nil {
		return err
	}
	if !authorized {
		return ErrOperatorNotAuthorized
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	atHub, err := uow.HubRepository().Get(ctx, cmd.HubID())
	if err != nil {
		return err
	}
	if !atHub.IsActive() {
		return errs.NewObjectNotFoundError("hubId", cmd.HubID().String())
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.ScanIn(atHub, time.Now().UTC()); err != nil {
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
