package commands

import (
	"errors"

	"waterdelivery/internal/core/domain/model/driver"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

var ErrCreateDriverCommandIsNotConstructed = errors.New(
	"CreateDriverCommand must be created via NewCreateDriverCommand constructor",
)

// CreateDriverCommand registers a driver, optionally linked to a user account.
type CreateDriverCommand struct { //nolint:recvcheck //using for validation
	userID  *kernel.UUID
	vehicle driver.Vehicle

	guard guard.ConstructorGuard
}

func NewCreateDriverCommand(userID *kernel.UUID, vehicleModel, vehiclePlate string) (CreateDriverCommand, error) {
	var userErr error
	if userID != nil {
		if err := userID.Validate(); err != nil {
			userErr = errs.NewValueIsInvalidErrorWithCause("userId", err)
		}
	}

	vehicle, vehicleErr := driver.NewVehicle(vehicleModel, vehiclePlate)

	if err := errors.Join(userErr, vehicleErr); err != nil {
		return CreateDriverCommand{}, err
	}

	return CreateDriverCommand{
		userID:  userID,
		vehicle: vehicle,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CreateDriverCommand) Validate() error {
	return c.guard.Validate(ErrCreateDriverCommandIsNotConstructed)
}

func (c CreateDriverCommand) UserID() *kernel.UUID {
	return c.userID
}

func (c CreateDriverCommand) Vehicle() driver.Vehicle {
	return c.vehicle
}
