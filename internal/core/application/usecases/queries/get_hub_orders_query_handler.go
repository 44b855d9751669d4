package queries

import (
	"context"
	"encoding/json"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetHubOrdersQueryHandler lists the orders sitting at a hub that have
// not been dispatched from it yet.
//
// The dispatched-already rule lives in the timeline, so candidate rows
// are narrowed by current_hub_id in SQL and the timeline filter runs in
// Go on the few orders a single hub holds at a time.
type GetHubOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetHubOrdersQueryHandler creates a handler for hub work queue queries.
// Requires a GORM database connection for query execution.
func NewGetHubOrdersQueryHandler(db *gorm.DB) GetHubOrdersQueryHandler {
	return GetHubOrdersQueryHandler{db: db}
}

// Handle executes the work queue query.
// Results are sorted by order ID for consistent output.
func (h GetHubOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetHubOrdersQuery,
) ([]GetHubOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	responses := make([]GetHubOrdersQueryResponse, 0)
	hubKey := query.HubID().String()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			destination_district,
			status,
			tracking_timeline
		FROM orders
		WHERE current_hub_id = ?
		  AND status = ?
		ORDER BY id
	`, query.HubID().Bytes(), order.StatusApproved).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id                  uuid.UUID
			destinationDistrict string
			statusValue         int
			timelineJSON        []byte
		)
		if err = rows.Scan(&id, &destinationDistrict, &statusValue, &timelineJSON); err != nil {
			return nil, err
		}

		var timeline []timelineEntryRow
		if err = json.Unmarshal(timelineJSON, &timeline); err != nil {
			return nil, err
		}
		if dispatchedFrom(timeline, hubKey) {
			continue
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		response := GetHubOrdersQueryResponse{
			OrderID:             orderID,
			DestinationDistrict: destinationDistrict,
			Status:              order.Status(statusValue).String(),
		}
		for _, entry := range timeline {
			if entry.Status == order.EventArrivedAtHub.String() && entry.Hub != nil && *entry.Hub == hubKey {
				at := entry.Timestamp
				response.ArrivedAt = &at
			}
		}
		responses = append(responses, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}

// dispatchedFrom reports whether the timeline holds a dispatch departing
// the hub.
func dispatchedFrom(timeline []timelineEntryRow, hubKey string) bool {
	for _, entry := range timeline {
		if entry.Hub == nil || *entry.Hub != hubKey {
			continue
		}
		if entry.Status == order.EventInTransit.String() ||
			entry.Status == order.EventOutForDelivery.String() {
			return true
		}
	}
	return false
}
