package hub

import (
	"fmt"

	"transit/internal/pkg/errs"
)

// Kind classifies a hub's role in the distribution network.
//
// Exactly one hub in the whole network has kind OriginWarehouse; it is the
// fixed source every shipment departs from. RegionalHub nodes relay
// shipments between zones, LocalHub nodes are the final stop before
// last-mile delivery.
//
// Kind is a value object that validates external input and provides string
// representations for persistence and display.
type Kind int

const (
	// KindUnknown represents an invalid or undefined kind.
	// This value (0) helps catch uninitialized Kind values.
	KindUnknown Kind = iota

	// OriginWarehouse is the single fixed shipment source of the network.
	OriginWarehouse

	// RegionalHub is an intermediate distribution point.
	RegionalHub

	// LocalHub is the last hub on a route; dispatch from it hands the
	// shipment to a final-mile carrier.
	LocalHub
)

// getKindStrings returns a map of Kind values to their string
// representations. All kinds are included for string conversion.
func getKindStrings() map[Kind]string {
	return map[Kind]string{
		KindUnknown:     "UNKNOWN",
		OriginWarehouse: "ORIGIN_WAREHOUSE",
		RegionalHub:     "REGIONAL_HUB",
		LocalHub:        "LOCAL_HUB",
	}
}

// getValidKindStrings returns a map of only valid Kind values.
func getValidKindStrings() map[Kind]string {
	//nolint:exhaustive // KindUnknown is intentionally excluded as it's invalid
	return map[Kind]string{
		OriginWarehouse: "ORIGIN_WAREHOUSE",
		RegionalHub:     "REGIONAL_HUB",
		LocalHub:        "LOCAL_HUB",
	}
}

// Validate checks if the Kind value is valid.
// Valid kinds are OriginWarehouse, RegionalHub and LocalHub; KindUnknown and
// any other values are invalid. Used to check Kind values arriving from the
// database or API before use.
func (k Kind) Validate() error {
	if _, ok := getValidKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("kind is invalid",
			fmt.Errorf("%d is not a valid hub kind", k))
	}
	return nil
}

// String returns the wire name of the kind, e.g. "REGIONAL_HUB".
// Returns "UNKNOWN" for invalid values. Implements fmt.Stringer and is safe
// to call on any Kind value.
func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "UNKNOWN"
}

// KindFromString parses a wire name produced by String back into a Kind.
func KindFromString(s string) (Kind, error) {
	for kind, str := range getValidKindStrings() {
		if str == s {
			return kind, nil
		}
	}
	return KindUnknown, errs.NewValueIsInvalidErrorWithCause("kind is invalid",
		fmt.Errorf("%q is not a valid hub kind", s))
}
