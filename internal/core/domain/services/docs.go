// Package services contains stateless domain services that operate across
// aggregates: the Topology snapshot of the active hub line and the
// RoutePlanner that derives order routes from it.
package services
