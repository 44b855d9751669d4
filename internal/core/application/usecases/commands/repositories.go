// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"transit/internal/core/domain/services"
	"transit/internal/core/ports"
)

// TopologyProvider hands commands the current snapshot of the active hub
// line. Implementations rebuild the snapshot when the registry changes.
type TopologyProvider interface {
	Topology(ctx context.Context) (*services.Topology, error)
}

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// HubRepoFactory provides access to hub repository within a transaction.
	HubRepoFactory interface {
		HubRepository() ports.HubRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions that read hubs while modifying orders.
	// Hubs are read-only here; the shared transaction keeps the hub view
	// consistent with the order mutation.
	UoW interface {
		TxManager
		HubRepoFactory
		OrderRepoFactory
	}

	// UoWFactory creates new unit of work instances for hub-and-order operations.
	UoWFactory interface {
		Create() UoW
	}
)
