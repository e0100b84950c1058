// Package kernel holds the value objects shared by every aggregate of the dispatch
// domain:
//   - UUID: identifier of orders, drivers, firms, users, addresses and products
//   - GeoPoint: a validated latitude/longitude pair (driver position)
//   - Money: a non-negative decimal amount (order totals, price snapshots)
//
// Zero values of these types are invalid and fail Validate; use the constructors.
package kernel
