// Package commands contains the operations that change order and driver state.
// Every handler follows the same shape: validate the command, open a unit of work,
// apply the domain change, commit, then fire notifications.
package commands

import (
	"context"

	"waterdelivery/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler touches.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides the order repository bound to the transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DriverRepoFactory provides the driver repository bound to the transaction.
	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	// OrderUoW is used by commands that only change orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates order units of work.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DriverUoW is used by commands that only change drivers.
	DriverUoW interface {
		TxManager
		DriverRepoFactory
	}

	// DriverUoWFactory creates driver units of work.
	DriverUoWFactory interface {
		Create() DriverUoW
	}

	// UoW spans orders and drivers, e.g. resolving a driver and claiming an order in one
	// transaction.
	UoW interface {
		TxManager
		OrderRepoFactory
		DriverRepoFactory
	}

	// UoWFactory creates cross-aggregate units of work.
	UoWFactory interface {
		Create() UoW
	}
)
