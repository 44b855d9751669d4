package queries

import (
	"context"

	"transit/internal/core/domain/model/hub"
	"transit/internal/core/domain/model/kernel"
	"transit/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetHubStatsQueryHandler counts in-network orders per active hub.
type GetHubStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetHubStatsQueryHandler creates a handler for hub load queries.
// Requires a GORM database connection for query execution.
func NewGetHubStatsQueryHandler(db *gorm.DB) GetHubStatsQueryHandler {
	return GetHubStatsQueryHandler{db: db}
}

// Handle executes the hub load query.
// Hubs holding no orders appear with a zero count so the dashboard shows
// the whole line. Results follow the hub ordering.
func (h GetHubStatsQueryHandler) Handle(
	ctx context.Context,
	query GetHubStatsQuery,
) ([]GetHubStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stats := make([]GetHubStatsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			h.id,
			h.name,
			h.district,
			h.kind,
			COUNT(o.id) AS orders
		FROM hubs h
		LEFT JOIN orders o
			ON o.current_hub_id = h.id
			AND o.status = ?
		WHERE h.is_active
		GROUP BY h.id, h.name, h.district, h.kind, h.position
		ORDER BY h.position
	`, order.StatusApproved).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id        uuid.UUID
			name      string
			district  string
			kindValue int
			orders    int
		)
		if err = rows.Scan(&id, &name, &district, &kindValue, &orders); err != nil {
			return nil, err
		}

		hubID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		stats = append(stats, GetHubStatsQueryResponse{
			HubID:    hubID,
			Name:     name,
			District: district,
			Kind:     hub.Kind(kindValue).String(),
			Orders:   orders,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
