package http

import (
	"time"

	"transit/internal/core/application/usecases/queries"
)

// Error is the common error payload.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	DestinationDistrict string `json:"destinationDistrict"`
}

// CreateOrderResponse returns the identifier of a placed order.
type CreateOrderResponse struct {
	OrderID string `json:"orderId"`
}

// ScanRequest is the body of POST /hubs/:hubId/scan.
type ScanRequest struct {
	OrderID    string `json:"orderId"`
	OperatorID string `json:"operatorId"`
}

// DispatchRequest is the body of POST /hubs/:hubId/dispatch.
// Exactly one of nextHubId and carrierId must be set.
type DispatchRequest struct {
	OrderID    string `json:"orderId"`
	OperatorID string `json:"operatorId"`
	NextHubID  string `json:"nextHubId,omitempty"`
	CarrierID  string `json:"carrierId,omitempty"`
}

// CarrierActionRequest is the body of the carrier accept/start endpoints.
type CarrierActionRequest struct {
	CarrierID string `json:"carrierId"`
}

// ConfirmDeliveryRequest is the body of POST /deliveries/:id/confirm.
type ConfirmDeliveryRequest struct {
	CarrierID string `json:"carrierId"`
	Code      string `json:"code"`
}

// RepairRoutesResponse reports how many orders were re-routed.
type RepairRoutesResponse struct {
	Repaired int `json:"repaired"`
}

// HubOrderResponse is one order currently sitting at a hub.
type HubOrderResponse struct {
	OrderID             string     `json:"orderId"`
	DestinationDistrict string     `json:"destinationDistrict"`
	Status              string     `json:"status"`
	ArrivedAt           *time.Time `json:"arrivedAt,omitempty"`
}

// DispatchedOrderResponse is one order a hub already sent onward.
type DispatchedOrderResponse struct {
	OrderID             string `json:"orderId"`
	DestinationDistrict string `json:"destinationDistrict"`
	Status              string `json:"status"`
	Arrived             bool   `json:"arrived"`
}

// HubStatsResponse is the order load of one hub.
type HubStatsResponse struct {
	HubID    string `json:"hubId"`
	Name     string `json:"name"`
	District string `json:"district"`
	Kind     string `json:"kind"`
	Orders   int    `json:"orders"`
}

// RouteStopResponse is one hub on the planned route.
type RouteStopResponse struct {
	HubID    string `json:"hubId"`
	Name     string `json:"name"`
	District string `json:"district"`
	Position int    `json:"position"`
}

// TimelineEntryResponse is one event on the tracking page.
type TimelineEntryResponse struct {
	Status      string    `json:"status"`
	HubName     *string   `json:"hubName,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
}

// TrackingResponse is the complete tracking page payload.
type TrackingResponse struct {
	OrderID             string                  `json:"orderId"`
	DestinationDistrict string                  `json:"destinationDistrict"`
	Status              string                  `json:"status"`
	DeliveryStatus      string                  `json:"deliveryStatus"`
	CurrentHub          *RouteStopResponse      `json:"currentHub,omitempty"`
	Route               []RouteStopResponse     `json:"route"`
	Timeline            []TimelineEntryResponse `json:"timeline"`
}

func toRouteStopResponse(stop queries.TrackingRouteStop) RouteStopResponse {
	return RouteStopResponse{
		HubID:    stop.HubID.String(),
		Name:     stop.Name,
		District: stop.District,
		Position: stop.Position,
	}
}

func toTrackingResponse(view queries.GetTrackingViewQueryResponse) TrackingResponse {
	response := TrackingResponse{
		OrderID:             view.OrderID.String(),
		DestinationDistrict: view.DestinationDistrict,
		Status:              view.Status,
		DeliveryStatus:      view.DeliveryStatus,
		Route:               make([]RouteStopResponse, len(view.Route)),
		Timeline:            make([]TimelineEntryResponse, len(view.Timeline)),
	}

	for i, stop := range view.Route {
		response.Route[i] = toRouteStopResponse(stop)
	}
	if view.CurrentHub != nil {
		current := toRouteStopResponse(*view.CurrentHub)
		response.CurrentHub = &current
	}
	for i, entry := range view.Timeline {
		response.Timeline[i] = TimelineEntryResponse{
			Status:      entry.Status,
			HubName:     entry.HubName,
			Timestamp:   entry.Timestamp,
			Location:    entry.Location,
			Description: entry.Description,
		}
	}

	return response
}
