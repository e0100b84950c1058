// Package catalogrepo reads the firm catalog (firms and their products). The tables are
// owned by the firm management service; this service only reads them.
package catalogrepo

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FirmDTO is a row of firms.
type FirmDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name    string    `gorm:"type:varchar(255);not null"`
	Phone   string    `gorm:"type:varchar(32)"`
	Address string    `gorm:"type:text"`
}

func (FirmDTO) TableName() string {
	return "firms"
}

// ProductDTO is a row of products.
type ProductDTO struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	FirmID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name     string          `gorm:"type:varchar(255);not null"`
	Price    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	IsActive bool            `gorm:"not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}
