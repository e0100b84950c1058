package commands

import (
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/guard"
)

var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand lets a driver take an unassigned order. The driver identifier is
// either a driver id or the id of the user linked to the driver.
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	driverIdentifier kernel.UUID

	guard guard.ConstructorGuard
}

func NewClaimOrderCommand(orderID, driverIdentifier kernel.UUID) (ClaimOrderCommand, error) {
	if err := errors.Join(
		required("orderId", orderID.Validate()),
		required("driverId", driverIdentifier.Validate()),
	); err != nil {
		return ClaimOrderCommand{}, err
	}

	return ClaimOrderCommand{
		orderID:          orderID,
		driverIdentifier: driverIdentifier,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

func (c ClaimOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ClaimOrderCommand) DriverIdentifier() kernel.UUID {
	return c.driverIdentifier
}
