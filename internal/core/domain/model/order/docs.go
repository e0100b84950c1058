// Package order implements the Order aggregate of the water-delivery marketplace and
// the stage machine that governs its lifecycle.
//
// The package includes:
//   - Order: the aggregate root (identity, firm/user/address references, item snapshots,
//     driver assignment, stage and lifecycle timestamps)
//   - Stage: the lifecycle state machine
//   - Item: product name/price snapshot taken when the order is placed
//   - Number: the human-readable ORD-YYYYMMDD-NNNN order number
//   - QueuePosition: the derived FIFO position of an unassigned order within its firm
//
// Stage workflow:
//
//	PENDING (IN_QUEUE) ──> CONFIRMED ──┬──> PICKED_UP ──┬──> DELIVERED
//	        │                  │       └──> DELIVERING ─┘
//	        └──────────────────┴──────────────┴───────> CANCELLED
//
// Key business rules:
//   - DELIVERED and CANCELLED are terminal
//   - an order holds a driver exactly while it is CONFIRMED, PICKED_UP, DELIVERING or
//     DELIVERED; CANCELLED orders may keep the driver they had
//   - CONFIRMED is entered only by a driver claim
//   - item prices and names never change after creation
package order
