// Package http exposes the transit operations over a REST API.
// It coordinates between HTTP handlers and application use cases.
package http

import (
	"errors"
	"net/http"

	"transit/internal/core/application/usecases/commands"
	"transit/internal/core/application/usecases/queries"
	"transit/internal/core/domain/model/kernel"
	"transit/internal/core/domain/model/order"
	"transit/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server implements the HTTP handlers for the transit API.
type Server struct {
	// Command handlers
	createOrderHandler        commands.CreateOrderCommandHandler
	approveOrderHandler       commands.ApproveOrderCommandHandler
	cancelOrderHandler        commands.CancelOrderCommandHandler
	scanInOrderHandler        commands.ScanInOrderCommandHandler
	dispatchOrderHandler      commands.DispatchOrderCommandHandler
	acceptAssignmentHandler   commands.AcceptAssignmentCommandHandler
	startFinalDeliveryHandler commands.StartFinalDeliveryCommandHandler
	confirmDeliveryHandler    commands.ConfirmDeliveryCommandHandler
	repairRoutesHandler       commands.RepairRoutesCommandHandler

	// Query handlers
	getTrackingViewHandler     queries.GetTrackingViewQueryHandler
	getHubOrdersHandler        queries.GetHubOrdersQueryHandler
	getDispatchedOrdersHandler queries.GetDispatchedOrdersQueryHandler
	getHubStatsHandler         queries.GetHubStatsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	approveOrderHandler commands.ApproveOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	scanInOrderHandler commands.ScanInOrderCommandHandler,
	dispatchOrderHandler commands.DispatchOrderCommandHandler,
	acceptAssignmentHandler commands.AcceptAssignmentCommandHandler,
	startFinalDeliveryHandler commands.StartFinalDeliveryCommandHandler,
	confirmDeliveryHandler commands.ConfirmDeliveryCommandHandler,
	repairRoutesHandler commands.RepairRoutesCommandHandler,
	getTrackingViewHandler queries.GetTrackingViewQueryHandler,
	getHubOrdersHandler queries.GetHubOrdersQueryHandler,
	getDispatchedOrdersHandler queries.GetDispatchedOrdersQueryHandler,
	getHubStatsHandler queries.GetHubStatsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:         createOrderHandler,
		approveOrderHandler:        approveOrderHandler,
		cancelOrderHandler:         cancelOrderHandler,
		scanInOrderHandler:         scanInOrderHandler,
		dispatchOrderHandler:       dispatchOrderHandler,
		acceptAssignmentHandler:    acceptAssignmentHandler,
		startFinalDeliveryHandler:  startFinalDeliveryHandler,
		confirmDeliveryHandler:     confirmDeliveryHandler,
		repairRoutesHandler:        repairRoutesHandler,
		getTrackingViewHandler:     getTrackingViewHandler,
		getHubOrdersHandler:        getHubOrdersHandler,
		getDispatchedOrdersHandler: getDispatchedOrdersHandler,
		getHubStatsHandler:         getHubStatsHandler,
	}
}

// RegisterRoutes attaches the API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/approve", s.ApproveOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/repair-route", s.RepairOrderRoute)
	api.GET("/orders/:id/tracking", s.GetTracking)

	api.POST("/hubs/:hubId/scan", s.ScanInOrder)
	api.POST("/hubs/:hubId/dispatch", s.DispatchOrder)
	api.GET("/hubs/:hubId/orders", s.GetHubOrders)
	api.GET("/hubs/:hubId/dispatched", s.GetDispatchedOrders)
	api.GET("/hubs/stats", s.GetHubStats)

	api.POST("/deliveries/:id/accept", s.AcceptAssignment)
	api.POST("/deliveries/:id/start", s.StartFinalDelivery)
	api.POST("/deliveries/:id/confirm", s.ConfirmDelivery)
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body CreateOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	destination, err := kernel.NewDistrict(body.DestinationDistrict)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, destination)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{OrderID: orderID.String()})
}

// ApproveOrder handles POST /api/v1/orders/:id/approve.
func (s *Server) ApproveOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewApproveOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.approveOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ScanInOrder handles POST /api/v1/hubs/:hubId/scan - confirms an arrival.
func (s *Server) ScanInOrder(ctx echo.Context) error {
	hubID, err := kernel.UUIDFromString(ctx.Param("hubId"))
	if err != nil {
		return badRequest(ctx, "Invalid hub id")
	}

	var body ScanRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(body.OrderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	operatorID, err := kernel.UUIDFromString(body.OperatorID)
	if err != nil {
		return badRequest(ctx, "Invalid operator id")
	}

	cmd, err := commands.NewScanInOrderCommand(orderID, hubID, operatorID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.scanInOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DispatchOrder handles POST /api/v1/hubs/:hubId/dispatch - sends an order
// to the next hub or hands it to a carrier.
func (s *Server) DispatchOrder(ctx echo.Context) error {
	hubID, err := kernel.UUIDFromString(ctx.Param("hubId"))
	if err != nil {
		return badRequest(ctx, "Invalid hub id")
	}

	var body DispatchRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(body.OrderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	operatorID, err := kernel.UUIDFromString(body.OperatorID)
	if err != nil {
		return badRequest(ctx, "Invalid operator id")
	}

	var cmd commands.DispatchOrderCommand
	switch {
	case body.NextHubID != "" && body.CarrierID != "":
		return badRequest(ctx, commands.ErrDispatchTargetIsAmbiguous.Error())
	case body.NextHubID != "":
		nextHubID, hubErr := kernel.UUIDFromString(body.NextHubID)
		if hubErr != nil {
			return badRequest(ctx, "Invalid next hub id")
		}
		cmd, err = commands.NewDispatchOrderToHubCommand(orderID, hubID, operatorID, nextHubID)
	case body.CarrierID != "":
		carrierID, carrierErr := kernel.UUIDFromString(body.CarrierID)
		if carrierErr != nil {
			return badRequest(ctx, "Invalid carrier id")
		}
		cmd, err = commands.NewDispatchOrderToCarrierCommand(orderID, hubID, operatorID, carrierID)
	default:
		return badRequest(ctx, commands.ErrDispatchTargetIsAmbiguous.Error())
	}
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.dispatchOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AcceptAssignment handles POST /api/v1/deliveries/:id/accept.
func (s *Server) AcceptAssignment(ctx echo.Context) error {
	orderID, carrierID, err := bindCarrierAction(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAcceptAssignmentCommand(orderID, carrierID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.acceptAssignmentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// StartFinalDelivery handles POST /api/v1/deliveries/:id/start.
func (s *Server) StartFinalDelivery(ctx echo.Context) error {
	orderID, carrierID, err := bindCarrierAction(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewStartFinalDeliveryCommand(orderID, carrierID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.startFinalDeliveryHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmDelivery handles POST /api/v1/deliveries/:id/confirm - completes a
// delivery against the recipient's code.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body ConfirmDeliveryRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	carrierID, err := kernel.UUIDFromString(body.CarrierID)
	if err != nil {
		return badRequest(ctx, "Invalid carrier id")
	}

	cmd, err := commands.NewConfirmDeliveryCommand(orderID, carrierID, body.Code)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.confirmDeliveryHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RepairOrderRoute handles POST /api/v1/orders/:id/repair-route.
func (s *Server) RepairOrderRoute(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewRepairOrderRouteCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	repaired, err := s.repairRoutesHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, RepairRoutesResponse{Repaired: repaired})
}

// GetTracking handles GET /api/v1/orders/:id/tracking.
func (s *Server) GetTracking(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetTrackingViewQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	view, err := s.getTrackingViewHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toTrackingResponse(view))
}

// GetHubOrders handles GET /api/v1/hubs/:hubId/orders.
func (s *Server) GetHubOrders(ctx echo.Context) error {
	hubID, err := kernel.UUIDFromString(ctx.Param("hubId"))
	if err != nil {
		return badRequest(ctx, "Invalid hub id")
	}

	query, err := queries.NewGetHubOrdersQuery(hubID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orders, err := s.getHubOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	response := make([]HubOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = HubOrderResponse{
			OrderID:             o.OrderID.String(),
			DestinationDistrict: o.DestinationDistrict,
			Status:              o.Status,
			ArrivedAt:           o.ArrivedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDispatchedOrders handles GET /api/v1/hubs/:hubId/dispatched.
func (s *Server) GetDispatchedOrders(ctx echo.Context) error {
	hubID, err := kernel.UUIDFromString(ctx.Param("hubId"))
	if err != nil {
		return badRequest(ctx, "Invalid hub id")
	}

	query, err := queries.NewGetDispatchedOrdersQuery(hubID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orders, err := s.getDispatchedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	response := make([]DispatchedOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = DispatchedOrderResponse{
			OrderID:             o.OrderID.String(),
			DestinationDistrict: o.DestinationDistrict,
			Status:              o.Status,
			Arrived:             o.Arrived,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetHubStats handles GET /api/v1/hubs/stats.
func (s *Server) GetHubStats(ctx echo.Context) error {
	query := queries.NewGetHubStatsQuery()

	stats, err := s.getHubStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	response := make([]HubStatsResponse, len(stats))
	for i, stat := range stats {
		response[i] = HubStatsResponse{
			HubID:    stat.HubID.String(),
			Name:     stat.Name,
			District: stat.District,
			Kind:     stat.Kind,
			Orders:   stat.Orders,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func bindCarrierAction(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("invalid order id")
	}

	var body CarrierActionRequest
	if err = ctx.Bind(&body); err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("invalid request body")
	}

	carrierID, err := kernel.UUIDFromString(body.CarrierID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("invalid carrier id")
	}

	return orderID, carrierID, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// mapError translates use case failures to HTTP status codes.
func mapError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, commands.ErrOperatorNotAuthorized):
		code = http.StatusForbidden
	case errors.Is(err, commands.ErrTooManyAttempts):
		code = http.StatusTooManyRequests
	case errors.Is(err, order.ErrOtpMismatch),
		errors.Is(err, order.ErrOtpExpired),
		errors.Is(err, order.ErrOtpNotIssued):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	case errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, commands.ErrCarrierUnavailable),
		errors.Is(err, order.ErrOrderTerminal),
		errors.Is(err, order.ErrOrderNotApproved),
		errors.Is(err, order.ErrHubNotOnRoute),
		errors.Is(err, order.ErrSequenceViolation),
		errors.Is(err, order.ErrNotCurrentHub),
		errors.Is(err, order.ErrNotArrivedAtHub),
		errors.Is(err, order.ErrAlreadyDispatched),
		errors.Is(err, order.ErrNoNextHubAvailable),
		errors.Is(err, order.ErrInvalidNextHub),
		errors.Is(err, order.ErrNotAtFinalHub),
		errors.Is(err, order.ErrCarrierMismatch):
		code = http.StatusConflict
	}

	return ctx.JSON(code, Error{
		Code:    code,
		Message: err.Error(),
	})
}
