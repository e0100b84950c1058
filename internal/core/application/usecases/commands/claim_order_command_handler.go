package commands

import (
	"context"
	"time"

	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/core/domain/services"
	"waterdelivery/internal/core/ports"
)

// ClaimOrderCommandHandler assigns a driver to a queued order.
//
// Example:
//
//	o, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, services.ErrDriverNotFound):
//	    // unknown driver: re-register
//	case errors.Is(err, order.ErrAlreadyClaimed):
//	    // someone else won: refresh the available orders
//	}
type ClaimOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

func NewClaimOrderCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle resolves the driver and claims the order with a single conditional update.
// There is no retry: after an error the caller decides from a fresh read.
//
// Returns services.ErrDriverNotFound or order.ErrAlreadyClaimed for the two expected
// failures.
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	d, err := services.NewDriverResolver(uow.DriverRepository()).Resolve(ctx, cmd.DriverIdentifier())
	if err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	if err = orderRepo.Claim(ctx, cmd.OrderID(), d.ID(), time.Now()); err != nil {
		return nil, err
	}

	claimed, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.NotifyDriverAssigned(ctx, claimed.UserID(), claimed.ID())
	return claimed, nil
}
