// Package clientrepo reads client accounts and their delivery addresses, which are
// managed by the account service.
package clientrepo

import (
	"github.com/google/uuid"
)

// UserDTO is a row of users.
type UserDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"type:varchar(255)"`
	Phone    string    `gorm:"type:varchar(32)"`
}

func (UserDTO) TableName() string {
	return "users"
}

// AddressDTO is a row of addresses.
type AddressDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Label     string    `gorm:"type:varchar(100)"`
	Street    string    `gorm:"type:text;not null"`
	Apartment string    `gorm:"type:varchar(50)"`
	Lat       *float64  `gorm:"type:double precision"`
	Lng       *float64  `gorm:"type:double precision"`
}

func (AddressDTO) TableName() string {
	return "addresses"
}
