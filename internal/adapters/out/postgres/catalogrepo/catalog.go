package catalogrepo

import (
	"context"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/ports"
	"waterdelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCatalog implements ports.Catalog over the products table.
type GormCatalog struct {
	db *gorm.DB
}

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

// Snapshot returns the active products among productIDs. Inactive and unknown products
// are omitted.
func (c *GormCatalog) Snapshot(ctx context.Context, productIDs []kernel.UUID) ([]ports.ProductSnapshot, error) {
	if len(productIDs) == 0 {
		return []ports.ProductSnapshot{}, nil
	}

	ids := make([]uuid.UUID, 0, len(productIDs))
	for _, id := range productIDs {
		ids = append(ids, id.Bytes())
	}

	var dtos []ProductDTO
	err := c.db.WithContext(ctx).
		Where("id IN ? AND is_active", ids).
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewStorageFailureError("snapshot products", err)
	}

	snapshots := make([]ports.ProductSnapshot, 0, len(dtos))
	for _, dto := range dtos {
		snapshot, snapErr := toSnapshot(dto)
		if snapErr != nil {
			return nil, snapErr
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, nil
}

func toSnapshot(dto ProductDTO) (ports.ProductSnapshot, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.ProductSnapshot{}, err
	}
	firmID, err := kernel.UUIDFromBytes(dto.FirmID[:])
	if err != nil {
		return ports.ProductSnapshot{}, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return ports.ProductSnapshot{}, err
	}

	return ports.ProductSnapshot{
		ID:     id,
		FirmID: firmID,
		Name:   dto.Name,
		Price:  price,
	}, nil
}
