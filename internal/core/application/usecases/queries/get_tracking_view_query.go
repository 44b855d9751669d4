// Package queries contains read-only operations against the database.
// Implements the query side of the CQRS pattern: handlers bypass the
// aggregates and read projections directly with SQL for performance.
package queries

import (
	"errors"
	"time"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/pkg/guard"
)

var ErrGetTrackingViewQueryIsNotConstructed = errors.New(
	"GetTrackingViewQuery must be created via NewGetTrackingViewQuery constructor",
)

// GetTrackingViewQuery retrieves the public tracking page data for one
// order: both statuses, the route with hub names, the last confirmed
// position and the full timeline.
//
// Example:
//
//	query, err := NewGetTrackingViewQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetTrackingViewQueryHandler(db)
//	view, err := handler.Handle(ctx, query)
type GetTrackingViewQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTrackingViewQuery creates a tracking query for one order.
func NewGetTrackingViewQuery(orderID kernel.UUID) (GetTrackingViewQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetTrackingViewQuery{}, err
	}

	return GetTrackingViewQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTrackingViewQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingViewQueryIsNotConstructed)
}

// OrderID returns the order being tracked.
func (q GetTrackingViewQuery) OrderID() kernel.UUID {
	return q.orderID
}

// TrackingRouteStop is one hub on the order's planned route.
type TrackingRouteStop struct {
	HubID    kernel.UUID
	Name     string
	District string
	Position int
}

// TrackingTimelineEntry is one event on the tracking page.
type TrackingTimelineEntry struct {
	Status      string
	HubName     *string
	Timestamp   time.Time
	Location    string
	Description string
}

// GetTrackingViewQueryResponse is the complete tracking page payload.
type GetTrackingViewQueryResponse struct {
	OrderID             kernel.UUID
	DestinationDistrict string
	Status              string
	DeliveryStatus      string
	CurrentHub          *TrackingRouteStop
	Route               []TrackingRouteStop
	Timeline            []TrackingTimelineEntry
}
