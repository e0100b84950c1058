package notify

import (
	"context"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
)

// Noop discards notifications.
type Noop struct{}

func (Noop) NotifyStageChange(context.Context, kernel.UUID, order.Stage, kernel.UUID) {}

func (Noop) NotifyDriverAssigned(context.Context, kernel.UUID, kernel.UUID) {}
