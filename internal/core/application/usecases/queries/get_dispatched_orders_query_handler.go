package queries

import (
	"context"
	"encoding/json"
	"fmt"

	"transit/internal/core/domain/model/kernel"
	"transit/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDispatchedOrdersQueryHandler lists orders a hub already sent onward.
// The candidate set is narrowed with a JSONB containment match on the
// timeline, so the table scan stays on the partial GIN index instead of
// unmarshalling every order.
type GetDispatchedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetDispatchedOrdersQueryHandler creates a handler for outbound order
// queries. Requires a GORM database connection for query execution.
func NewGetDispatchedOrdersQueryHandler(db *gorm.DB) GetDispatchedOrdersQueryHandler {
	return GetDispatchedOrdersQueryHandler{db: db}
}

// Handle executes the outbound orders query.
// Results are sorted by order ID for consistent output.
func (h GetDispatchedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetDispatchedOrdersQuery,
) ([]GetDispatchedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	hubKey := query.HubID().String()
	inTransitMatch := fmt.Sprintf(`[{"status":%q,"hub":%q}]`, order.EventInTransit.String(), hubKey)
	handoverMatch := fmt.Sprintf(`[{"status":%q,"hub":%q}]`, order.EventOutForDelivery.String(), hubKey)

	responses := make([]GetDispatchedOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			destination_district,
			status,
			tracking_timeline
		FROM orders
		WHERE tracking_timeline @> ?::jsonb
		   OR tracking_timeline @> ?::jsonb
		ORDER BY id
	`, inTransitMatch, handoverMatch).Rows()
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

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		var timeline []timelineEntryRow
		if err = json.Unmarshal(timelineJSON, &timeline); err != nil {
			return nil, err
		}

		responses = append(responses, GetDispatchedOrdersQueryResponse{
			OrderID:             orderID,
			DestinationDistrict: destinationDistrict,
			Status:              order.Status(statusValue).String(),
			Arrived:             arrivedAfterDispatch(timeline, hubKey),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}

// arrivedAfterDispatch reports whether an arrival follows the hub's
// dispatch entry in the timeline.
func arrivedAfterDispatch(timeline []timelineEntryRow, hubKey string) bool {
	dispatched := false
	for _, entry := range timeline {
		if entry.Hub != nil && *entry.Hub == hubKey &&
			(entry.Status == order.EventInTransit.String() ||
				entry.Status == order.EventOutForDelivery.String()) {
			dispatched = true
			continue
		}
		if dispatched && entry.Status == order.EventArrivedAtHub.String() {
			return true
		}
	}
	return false
}
