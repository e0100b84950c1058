package clientrepo

import (
	"context"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAddressStore implements ports.AddressStore.
type GormAddressStore struct {
	db *gorm.DB
}

func NewGormAddressStore(db *gorm.DB) *GormAddressStore {
	return &GormAddressStore{db: db}
}

// Exists reports whether addressID belongs to userID.
func (s *GormAddressStore) Exists(ctx context.Context, addressID, userID kernel.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&AddressDTO{}).
		Where("id = ? AND user_id = ?", addressID.Bytes(), userID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, errs.NewStorageFailureError("check address", err)
	}

	return count > 0, nil
}
