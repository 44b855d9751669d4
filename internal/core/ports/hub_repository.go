// Package ports defines repository and service interfaces for the transit
// domain. These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"transit/internal/core/domain/model/hub"
	"transit/internal/core/domain/model/kernel"
)

// HubRepository defines the persistence contract for the hub registry.
// The transit core reads hubs; their lifecycle is owned by administrative
// tooling, so there are no write methods here.
type HubRepository interface {
	// Get retrieves a hub by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*hub.Hub, error)

	// GetAll retrieves every registered hub, active or not.
	// The topology snapshot filters out inactive hubs itself.
	GetAll(ctx context.Context) ([]*hub.Hub, error)
}
