package commands

import (
	"context"
	"errors"
	"time"

	"transit/internal/core/ports"
)

// ErrTooManyAttempts means the per-order confirmation budget is exhausted
// and the carrier must wait for the window to pass.
var ErrTooManyAttempts = errors.New("too many delivery code attempts")

// ConfirmDeliveryCommandHandler verifies the recipient's one-time code and
// completes the order.
//
// Attempts are throttled per order through the AttemptLimiter before the
// aggregate is loaded, so a brute-force loop never reaches the database.
// Limiter failures fail open: an unreachable limiter must not block
// legitimate deliveries.
type ConfirmDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	limiter    ports.AttemptLimiter
	publisher  OrderChangedPublisher
	clock      func() time.Time
}

// NewConfirmDeliveryCommandHandler creates a handler for delivery
// confirmations using the wall clock for code expiry.
func NewConfirmDeliveryCommandHandler(
	uowFactory OrderUoWFactory,
	limiter ports.AttemptLimiter,
	publisher OrderChangedPublisher,
) ConfirmDeliveryCommandHandler {
	return NewConfirmDeliveryCommandHandlerWithClock(uowFactory, limiter, publisher, time.Now)
}

// NewConfirmDeliveryCommandHandlerWithClock creates a handler with an
// explicit time source so code expiry can be pinned.
func NewConfirmDeliveryCommandHandlerWithClock(
	uowFactory OrderUoWFactory,
	limiter ports.AttemptLimiter,
	publisher OrderChangedPublisher,
	clock func() time.Time,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
		limiter:    limiter,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle processes the confirmation command.
func (h *ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if h.limiter != nil {
		allowed, err := h.limiter.Allow(ctx, "otp:"+cmd.OrderID().String())
		if err == nil && !allowed {
			return ErrTooManyAttempts
		}
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

	if err = aggregate.ConfirmDelivery(cmd.CarrierID(), cmd.Code(), h.clock().UTC()); err != nil {
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
