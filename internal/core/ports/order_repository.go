// Package ports defines the interfaces the application core consumes: storage of
// aggregates, the unit of work, and the external catalog, address and notification
// collaborators.
package ports

import (
	"context"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates.
//
// Mutations after creation are conditional updates; the repository never writes an
// order back unconditionally.
type OrderRepository interface {
	// Add inserts a new order with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get loads an order with its items.
	// Returns an errs.ErrObjectNotFound error when it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Claim assigns driverID and moves the order to CONFIRMED in one conditional update,
	// only if the order has no driver and its stage is in the queue set.
	// Returns order.ErrAlreadyClaimed when nothing matched, whether the order was claimed,
	// cancelled or never existed.
	Claim(ctx context.Context, orderID, driverID kernel.UUID, at time.Time) error

	// UpdateStage writes the stage-related state of aggregate only if the stored stage
	// still equals expected. Returns order.ErrStageChanged when it does not.
	UpdateStage(ctx context.Context, aggregate *order.Order, expected order.Stage) error
}
