package driverrepo

import (
	"context"
	"errors"

	"waterdelivery/internal/core/domain/model/driver"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDriverRepository implements ports.DriverRepository using GORM.
type GormDriverRepository struct {
	db *gorm.DB
}

// NewGormDriverRepository creates a repository on db, which may be a transaction.
func NewGormDriverRepository(db *gorm.DB) *GormDriverRepository {
	return &GormDriverRepository{db: db}
}

// Add inserts a driver. The connection must be opened with TranslateError so a second
// driver for the same user surfaces as gorm.ErrDuplicatedKey.
func (r *GormDriverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("userId",
				errors.New("user is already linked to a driver"))
		}
		return errs.NewStorageFailureError("add driver", err)
	}

	return nil
}

// Get loads a driver by its id.
func (r *GormDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.first(ctx, "get driver", "driverId", id, "id = ?")
}

// GetByUserID loads the driver linked to userID.
func (r *GormDriverRepository) GetByUserID(ctx context.Context, userID kernel.UUID) (*driver.Driver, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	return r.first(ctx, "get driver by user", "userId", userID, "user_id = ?")
}

func (r *GormDriverRepository) first(
	ctx context.Context,
	operation, param string,
	id kernel.UUID,
	where string,
) (*driver.Driver, error) {
	var dto DriverDTO
	if err := r.db.WithContext(ctx).First(&dto, where, id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, id.String())
		}
		return nil, errs.NewStorageFailureError(operation, err)
	}

	return toDomain(dto)
}
