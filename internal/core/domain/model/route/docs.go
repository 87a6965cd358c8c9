// Package route models the journey of a shipment as a fixed sequence of four
// waypoints with a single "current" pointer.
//
// The package includes:
//   - Route: a value type holding exactly four waypoints (origin, two hubs, destination)
//   - Waypoint: one geocoded stop together with its status and optional timestamp
//   - Status: completed, current or upcoming
//   - Address: the resolved postal address of a stop
//
// Key business rules:
//   - A route always has exactly four waypoints
//   - Statuses are monotonic: completed stops, then one current stop, then upcoming stops
//   - A timestamp is recorded the first time a stop becomes completed or current
//     and is dropped whenever the stop regresses to upcoming
//   - Every transition recomputes the whole sequence from the target index and
//     returns a new Route; the receiver is never modified
package route
