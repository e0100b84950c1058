package services

import (
	"context"
	"errors"

	"waterdelivery/internal/core/domain/model/driver"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
)

// ErrDriverNotFound is returned when an identifier matches neither a driver id nor the
// user linked to a driver. The caller has to re-register or re-authenticate.
var ErrDriverNotFound = errors.New("driver not found")

// DriverLookup is the part of driver storage the resolver needs. Both methods return an
// errs.ErrObjectNotFound error on a miss.
type DriverLookup interface {
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)
	GetByUserID(ctx context.Context, userID kernel.UUID) (*driver.Driver, error)
}

// DriverResolver resolves a driver identifier using two strategies in order:
// lookup by driver id, then lookup by linked user id.
//
// Example:
//
//	resolver := services.NewDriverResolver(uow.DriverRepository())
//	d, err := resolver.Resolve(ctx, identifier)
//	if errors.Is(err, services.ErrDriverNotFound) {
//	    return err
//	}
type DriverResolver struct {
	drivers DriverLookup
}

// NewDriverResolver creates a resolver over drivers.
func NewDriverResolver(drivers DriverLookup) DriverResolver {
	return DriverResolver{drivers: drivers}
}

// Resolve returns the driver identified by identifier.
//
// Storage failures are returned as is and never mistaken for a miss, so a transient
// error on the first lookup does not fall through to the second.
func (r DriverResolver) Resolve(ctx context.Context, identifier kernel.UUID) (*driver.Driver, error) {
	if err := identifier.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("driverId", err)
	}

	d, err := r.drivers.Get(ctx, identifier)
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	d, err = r.drivers.GetByUserID(ctx, identifier)
	if err == nil {
		return d, nil
	}
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrDriverNotFound
	}
	return nil, err
}
