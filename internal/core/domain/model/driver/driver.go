package driver

import (
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

const (
	// RatingMin and RatingMax bound a driver's rating.
	RatingMin = 0.0
	RatingMax = 5.0
)

// ErrDriverIsNotConstructed is returned when a Driver was not built by NewDriver or RestoreDriver.
var ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")

// Driver is the aggregate root of a delivery driver.
//
// Business rules:
//   - id is a valid UUID; the linked user, when present, too
//   - rating stays within [0, 5]
//   - location is optional until the driver reports one
//
// Availability is informational: claiming an order does not check it.
type Driver struct {
	id        kernel.UUID
	userID    *kernel.UUID
	available bool
	location  *kernel.GeoPoint
	vehicle   Vehicle
	rating    float64
	guard     guard.ConstructorGuard
}

// NewDriver registers an available driver with no rating yet.
func NewDriver(id kernel.UUID, userID *kernel.UUID, vehicle Vehicle) (*Driver, error) {
	d := &Driver{
		available: true,
		vehicle:   vehicle,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setUserID(userID),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDriver rebuilds a driver read from storage.
func RestoreDriver(
	id kernel.UUID,
	userID *kernel.UUID,
	available bool,
	location *kernel.GeoPoint,
	vehicle Vehicle,
	rating float64,
) (*Driver, error) {
	d := &Driver{
		available: available,
		vehicle:   vehicle,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setUserID(userID),
		d.setLocation(location),
		d.setRating(rating),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate ensures the driver was created through a constructor.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// IsEqual compares drivers by identity.
func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

func (d *Driver) ID() kernel.UUID {
	return d.id
}

// UserID returns the linked user account, or nil.
func (d *Driver) UserID() *kernel.UUID {
	return d.userID
}

func (d *Driver) IsAvailable() bool {
	return d.available
}

// Location returns the last reported position, or nil.
func (d *Driver) Location() *kernel.GeoPoint {
	return d.location
}

func (d *Driver) Vehicle() Vehicle {
	return d.vehicle
}

func (d *Driver) Rating() float64 {
	return d.rating
}

// SetAvailable toggles whether the driver is taking orders.
func (d *Driver) SetAvailable(available bool) {
	d.available = available
}

// MoveTo records the driver's current position.
func (d *Driver) MoveTo(location kernel.GeoPoint) error {
	return d.setLocation(&location)
}

// Rate replaces the driver's rating.
func (d *Driver) Rate(rating float64) error {
	return d.setRating(rating)
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setUserID(userID *kernel.UUID) error {
	if userID != nil {
		if err := userID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("userId", err)
		}
	}
	d.userID = userID
	return nil
}

func (d *Driver) setLocation(location *kernel.GeoPoint) error {
	if location != nil {
		if err := location.Validate(); err != nil {
			return err
		}
	}
	d.location = location
	return nil
}

func (d *Driver) setRating(rating float64) error {
	if rating < RatingMin || rating > RatingMax {
		return errs.NewValueIsOutOfRangeError("rating", rating, RatingMin, RatingMax)
	}
	d.rating = rating
	return nil
}
