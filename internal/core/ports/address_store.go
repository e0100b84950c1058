package ports

import (
	"context"

	"waterdelivery/internal/core/domain/model/kernel"
)

// AddressStore answers questions about client delivery addresses, which are managed
// outside of this service.
type AddressStore interface {
	// Exists reports whether addressID exists and belongs to userID.
	Exists(ctx context.Context, addressID, userID kernel.UUID) (bool, error)
}
