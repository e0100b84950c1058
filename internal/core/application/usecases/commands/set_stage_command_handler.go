package commands

import (
	"context"
	"time"

	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/core/ports"
)

// SetStageCommandHandler applies driver, firm and ops stage changes.
type SetStageCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

func NewSetStageCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) SetStageCommandHandler {
	return SetStageCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle loads the order, lets it validate the transition and stores the result only if
// nobody changed the stage in between (order.ErrStageChanged otherwise).
func (h SetStageCommandHandler) Handle(ctx context.Context, cmd SetStageCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return applyStageChange(ctx, h.uowFactory, h.notifier, cmd.OrderID(), func(o *order.Order, at time.Time) error {
		return o.ChangeStage(cmd.Target(), at)
	})
}
