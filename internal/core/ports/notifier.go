package ports

import (
	"context"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
)

// Notifier tells an order's owner about changes to it.
//
// Calls are fire-and-forget: implementations must return quickly, must not fail the
// caller and must not depend on ctx staying alive after they return.
type Notifier interface {
	NotifyStageChange(ctx context.Context, userID kernel.UUID, stage order.Stage, orderID kernel.UUID)
	NotifyDriverAssigned(ctx context.Context, userID, orderID kernel.UUID)
}
