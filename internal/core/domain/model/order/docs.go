// Package order contains the Order aggregate and its state machines.
//
// An order carries a fixed planned route of hub identifiers, its current
// confirmed position, the overall lifecycle Status, the final-mile
// DeliveryStatus and an append-only tracking timeline. Scan-in and
// dispatch rules are derived from the timeline: a hub may dispatch only
// once, arrivals must follow the planned sequence, and the current hub
// moves only on a confirmed scan, never on dispatch.
package order
