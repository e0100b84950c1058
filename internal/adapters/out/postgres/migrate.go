package postgres

import (
	"waterdelivery/internal/adapters/out/postgres/catalogrepo"
	"waterdelivery/internal/adapters/out/postgres/clientrepo"
	"waterdelivery/internal/adapters/out/postgres/driverrepo"
	"waterdelivery/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Models lists every table the service reads or writes, in dependency order.
func Models() []any {
	return []any{
		&catalogrepo.FirmDTO{},
		&catalogrepo.ProductDTO{},
		&clientrepo.UserDTO{},
		&clientrepo.AddressDTO{},
		&driverrepo.DriverDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
	}
}

// Migrate creates or updates all tables of Models. Production databases are migrated by
// the platform; this is for local runs and tests.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// TruncateAll empties every table of Models. Tests call it between cases.
func TruncateAll(db *gorm.DB) error {
	return db.Exec("TRUNCATE TABLE order_items, orders, drivers, addresses, users, products, firms RESTART IDENTITY CASCADE").Error
}
