package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/core/domain/model/order"
	"transit/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// timelineEntryRow mirrors one element of the tracking_timeline JSONB
// column.
type timelineEntryRow struct {
	Status      string    `json:"status"`
	Hub         *string   `json:"hub,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
}

// GetTrackingViewQueryHandler assembles the tracking page for one order.
// Reads the order row and resolves every hub referenced by the route or
// the timeline in a single second query.
type GetTrackingViewQueryHandler struct {
	db *gorm.DB
}

// NewGetTrackingViewQueryHandler creates a handler for tracking queries.
// Requires a GORM database connection for query execution.
func NewGetTrackingViewQueryHandler(db *gorm.DB) GetTrackingViewQueryHandler {
	return GetTrackingViewQueryHandler{db: db}
}

// Handle executes the tracking query.
// Returns errs.ObjectNotFoundError when the order does not exist.
func (h GetTrackingViewQueryHandler) Handle(
	ctx context.Context,
	query GetTrackingViewQuery,
) (GetTrackingViewQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTrackingViewQueryResponse{}, err
	}

	var (
		id                  uuid.UUID
		destinationDistrict string
		routeJSON           []byte
		currentHubID        sql.Null[uuid.UUID]
		statusValue         int
		deliveryStatusValue int
		timelineJSON        []byte
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			destination_district,
			route,
			current_hub_id,
			status,
			delivery_status,
			tracking_timeline
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(&id, &destinationDistrict, &routeJSON, &currentHubID,
		&statusValue, &deliveryStatusValue, &timelineJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return GetTrackingViewQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
	}
	if err != nil {
		return GetTrackingViewQueryResponse{}, err
	}

	var routeIDs []string
	if err = json.Unmarshal(routeJSON, &routeIDs); err != nil {
		return GetTrackingViewQueryResponse{}, err
	}
	var timeline []timelineEntryRow
	if err = json.Unmarshal(timelineJSON, &timeline); err != nil {
		return GetTrackingViewQueryResponse{}, err
	}

	stops, err := h.loadStops(ctx, routeIDs, timeline)
	if err != nil {
		return GetTrackingViewQueryResponse{}, err
	}

	response := GetTrackingViewQueryResponse{
		OrderID:             query.OrderID(),
		DestinationDistrict: destinationDistrict,
		Status:              order.Status(statusValue).String(),
		DeliveryStatus:      order.DeliveryStatus(deliveryStatusValue).String(),
	}

	for _, routeID := range routeIDs {
		if stop, ok := stops[routeID]; ok {
			response.Route = append(response.Route, stop)
		}
	}

	if currentHubID.Valid {
		if stop, ok := stops[currentHubID.V.String()]; ok {
			response.CurrentHub = &stop
		}
	}

	for _, entry := range timeline {
		view := TrackingTimelineEntry{
			Status:      entry.Status,
			Timestamp:   entry.Timestamp,
			Location:    entry.Location,
			Description: entry.Description,
		}
		if entry.Hub != nil {
			if stop, ok := stops[*entry.Hub]; ok {
				name := stop.Name
				view.HubName = &name
			}
		}
		response.Timeline = append(response.Timeline, view)
	}

	return response, nil
}

// loadStops resolves every hub id referenced by the route or timeline.
// Hubs deleted since the order was planned are simply absent from the map.
func (h GetTrackingViewQueryHandler) loadStops(
	ctx context.Context,
	routeIDs []string,
	timeline []timelineEntryRow,
) (map[string]TrackingRouteStop, error) {
	wanted := make(map[string]struct{}, len(routeIDs))
	for _, routeID := range routeIDs {
		wanted[routeID] = struct{}{}
	}
	for _, entry := range timeline {
		if entry.Hub != nil {
			wanted[*entry.Hub] = struct{}{}
		}
	}

	ids := make([]uuid.UUID, 0, len(wanted))
	for raw := range wanted {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		ids = append(ids, parsed)
	}
	if len(ids) == 0 {
		return map[string]TrackingRouteStop{}, nil
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			district,
			position
		FROM hubs
		WHERE id IN ?
	`, ids).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stops := make(map[string]TrackingRouteStop, len(ids))
	for rows.Next() {
		var (
			id       uuid.UUID
			name     string
			district string
			position int
		)
		if err = rows.Scan(&id, &name, &district, &position); err != nil {
			return nil, err
		}

		hubID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		stops[id.String()] = TrackingRouteStop{
			HubID:    hubID,
			Name:     name,
			District: district,
			Position: position,
		}
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stops, nil
}
