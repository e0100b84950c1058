package ports

import (
	"context"

	"waterdelivery/internal/core/domain/model/kernel"
)

// ProductSnapshot is the catalog view of a product at the moment an order is placed.
type ProductSnapshot struct {
	ID     kernel.UUID
	FirmID kernel.UUID
	Name   string
	Price  kernel.Money
}

// Catalog is the product catalog owned by the firm management service.
type Catalog interface {
	// Snapshot returns the products found among productIDs. Unknown ids are left out of
	// the result rather than reported as an error.
	Snapshot(ctx context.Context, productIDs []kernel.UUID) ([]ProductSnapshot, error)
}
