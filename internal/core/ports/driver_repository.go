package ports

import (
	"context"

	"waterdelivery/internal/core/domain/model/driver"
	"waterdelivery/internal/core/domain/model/kernel"
)

// DriverRepository persists driver aggregates. It satisfies services.DriverLookup.
type DriverRepository interface {
	// Add inserts a driver. A second driver for the same linked user is a validation error.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Get loads a driver by its own id.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetByUserID loads the driver linked to a user account.
	GetByUserID(ctx context.Context, userID kernel.UUID) (*driver.Driver, error)
}
