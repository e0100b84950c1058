package commands

import (
	"context"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/core/ports"
)

// CancelOrderCommandHandler cancels orders. Cancelling a DELIVERED or CANCELLED order
// fails with order.ErrInvalidTransition.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return applyStageChange(ctx, h.uowFactory, h.notifier, cmd.OrderID(), func(o *order.Order, at time.Time) error {
		return o.Cancel(cmd.Reason(), at)
	})
}

// applyStageChange is the read, change, compare-and-set cycle shared by stage commands.
// The owner is notified only after commit.
func applyStageChange(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	orderID kernel.UUID,
	change func(o *order.Order, at time.Time) error,
) (*order.Order, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	expected := o.Stage()
	if err = change(o, time.Now()); err != nil {
		return nil, err
	}

	if err = orderRepo.UpdateStage(ctx, o, expected); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	notifier.NotifyStageChange(ctx, o.UserID(), o.Stage(), o.ID())
	return o, nil
}
