package commands

import (
	"context"
	"errors"
	"time"

	"transit/internal/core/domain/model/hub"
	"transit/internal/core/domain/model/kernel"
	"transit/internal/core/domain/model/order"
	"transit/internal/core/ports"
)

// ErrCarrierUnavailable means the named carrier is not registered for
// the order's destination district.
var ErrCarrierUnavailable = errors.New("carrier does not serve the destination district")

// DispatchedOtpSink receives the freshly issued delivery code after a
// carrier handover, typically to notify the recipient. Nil-safe: commands
// work without a sink wired.
type DispatchedOtpSink interface {
	DeliveryCodeIssued(ctx context.Context, orderID kernel.UUID, code kernel.Otp)
}

// DispatchOrderCommandHandler sends an order onward from the hub it sits
// at. Hub dispatches append an IN_TRANSIT event and leave the position
// untouched; carrier handovers issue the delivery code and advance the
// order to OutForDelivery.
type DispatchOrderCommandHandler struct {
	uowFactory UoWFactory
	policy     ports.AccessPolicy
	publisher  OrderChangedPublisher
	otpSink    DispatchedOtpSink
}

// NewDispatchOrderCommandHandler creates a handler for dispatch operations.
func NewDispatchOrderCommandHandler(
	uowFactory UoWFactory,
	policy ports.AccessPolicy,
	publisher OrderChangedPublisher,
	otpSink DispatchedOtpSink,
) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		publisher:  publisher,
		otpSink:    otpSink,
	}
}

// Handle processes the dispatch command.
func (h *DispatchOrderCommandHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) error {
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

	hubRepo := uow.HubRepository()
	from, err := hubRepo.Get(ctx, cmd.HubID())
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	var issued *kernel.Otp
	if carrierID := cmd.CarrierID(); carrierID != nil {
		issued, err = h.handleCarrierHandover(ctx, from, aggregate, *carrierID)
	} else {
		err = h.handleHubDispatch(ctx, hubRepo, from, aggregate, *cmd.NextHubID())
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishOrderChanged(ctx, h.publisher, aggregate)
	if issued != nil && h.otpSink != nil {
		h.otpSink.DeliveryCodeIssued(ctx, aggregate.ID(), *issued)
	}
	return nil
}

func (h *DispatchOrderCommandHandler) handleHubDispatch(
	ctx context.Context,
	hubRepo ports.HubRepository,
	from *hub.Hub,
	aggregate *order.Order,
	nextHubID kernel.UUID,
) error {
	next, err := hubRepo.Get(ctx, nextHubID)
	if err != nil {
		return err
	}

	return aggregate.DispatchToNextHub(from, next, time.Now().UTC())
}

func (h *DispatchOrderCommandHandler) handleCarrierHandover(
	ctx context.Context,
	from *hub.Hub,
	aggregate *order.Order,
	carrierID kernel.UUID,
) (*kernel.Otp, error) {
	eligible, err := h.policy.CarrierEligible(ctx, carrierID, aggregate.DestinationDistrict())
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, ErrCarrierUnavailable
	}

	otp, err := aggregate.DispatchToCarrier(from, carrierID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return &otp, nil
}
