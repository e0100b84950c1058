package commands

import (
	"context"

	"waterdelivery/internal/core/domain/model/driver"
	"waterdelivery/internal/core/domain/model/kernel"
)

// CreateDriverCommandHandler registers drivers.
type CreateDriverCommandHandler struct {
	uowFactory DriverUoWFactory
}

func NewCreateDriverCommandHandler(uowFactory DriverUoWFactory) CreateDriverCommandHandler {
	return CreateDriverCommandHandler{uowFactory: uowFactory}
}

// Handle stores a new available driver. Linking a user that already has a driver is a
// validation error reported by the repository.
func (h CreateDriverCommandHandler) Handle(ctx context.Context, cmd CreateDriverCommand) (*driver.Driver, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	d, err := driver.NewDriver(kernel.NewUUID(), cmd.UserID(), cmd.Vehicle())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DriverRepository().Add(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return d, nil
}
