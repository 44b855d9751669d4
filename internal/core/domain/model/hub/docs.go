// Package hub contains the Hub entity and its Kind classification.
//
// Hubs form the static topology of the distribution network: a single
// origin warehouse, regional relays and local hubs, all placed on one
// global linear ordering via their position. The transit core reads hubs
// through the topology registry; administrative tooling owns their
// lifecycle.
package hub
