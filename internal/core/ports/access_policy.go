package ports

import (
	"context"

	"transit/internal/core/domain/model/kernel"
)

// AccessPolicy answers the authorization questions the transit commands
// must ask before mutating an order: may this operator act for this hub,
// and may this carrier take deliveries in this district.
type AccessPolicy interface {
	// ManagesHub reports whether the operator belongs to the hub's
	// manager set.
	ManagesHub(ctx context.Context, operatorID, hubID kernel.UUID) (bool, error)

	// CarrierEligible reports whether the carrier is registered and
	// serves the given district.
	CarrierEligible(ctx context.Context, carrierID kernel.UUID, district kernel.District) (bool, error)
}
