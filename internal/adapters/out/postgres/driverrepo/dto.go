// Package driverrepo persists the driver aggregate with GORM.
package driverrepo

import (
	"time"

	"waterdelivery/internal/core/domain/model/driver"
	"waterdelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO is a row of the drivers table. A user account links to at most one driver.
type DriverDTO struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey"`
	UserID      *uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	IsAvailable bool        `gorm:"not null"`
	Location    LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	Vehicle     VehicleDTO  `gorm:"embedded;embeddedPrefix:vehicle_"`
	Rating      float64     `gorm:"type:double precision;not null;default:0"`
	CreatedAt   time.Time   `gorm:"not null"`
}

func (DriverDTO) TableName() string {
	return "drivers"
}

// LocationDTO holds the last reported position; both columns are NULL until the
// driver reports one.
type LocationDTO struct {
	Lat *float64 `gorm:"type:double precision"`
	Lng *float64 `gorm:"type:double precision"`
}

type VehicleDTO struct {
	Model string `gorm:"type:varchar(100)"`
	Plate string `gorm:"type:varchar(16)"`
}

func fromDomain(d *driver.Driver) DriverDTO {
	var userID *uuid.UUID
	if id := d.UserID(); id != nil {
		raw := id.Bytes()
		userID = &raw
	}

	var location LocationDTO
	if p := d.Location(); p != nil {
		lat, lng := p.Lat(), p.Lng()
		location = LocationDTO{Lat: &lat, Lng: &lng}
	}

	return DriverDTO{
		ID:          d.ID().Bytes(),
		UserID:      userID,
		IsAvailable: d.IsAvailable(),
		Location:    location,
		Vehicle: VehicleDTO{
			Model: d.Vehicle().Model(),
			Plate: d.Vehicle().Plate(),
		},
		Rating: d.Rating(),
	}
}

func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var userID *kernel.UUID
	if dto.UserID != nil {
		uID, userErr := kernel.UUIDFromBytes(dto.UserID[:])
		if userErr != nil {
			return nil, userErr
		}
		userID = &uID
	}

	var location *kernel.GeoPoint
	if dto.Location.Lat != nil && dto.Location.Lng != nil {
		p, locErr := kernel.NewGeoPoint(*dto.Location.Lat, *dto.Location.Lng)
		if locErr != nil {
			return nil, locErr
		}
		location = &p
	}

	vehicle, err := driver.NewVehicle(dto.Vehicle.Model, dto.Vehicle.Plate)
	if err != nil {
		return nil, err
	}

	return driver.RestoreDriver(id, userID, dto.IsAvailable, location, vehicle, dto.Rating)
}
