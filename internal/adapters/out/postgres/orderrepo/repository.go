package orderrepo

import (
	"context"
	"errors"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a repository on db, which may be a transaction.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts the order and its items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewStorageFailureError("add order", err)
	}

	return nil
}

// Get loads an order with its items in line order.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id.String())
		}
		return nil, errs.NewStorageFailureError("get order", err)
	}

	return toDomain(dto)
}

// Claim sets the driver and CONFIRMED in a single conditional UPDATE. Postgres row locks
// make concurrent claims of the same row serialize on it, and whichever runs second
// re-evaluates the WHERE clause and matches nothing.
func (r *GormOrderRepository) Claim(ctx context.Context, orderID, driverID kernel.UUID, at time.Time) error {
	if err := errors.Join(orderID.Validate(), driverID.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND driver_id IS NULL AND stage IN ?", orderID.Bytes(), stageStrings(order.QueueSet())).
		Updates(map[string]any{
			"driver_id":  driverID.Bytes(),
			"stage":      string(order.Confirmed),
			"updated_at": at.UTC().Truncate(time.Microsecond),
		})
	if result.Error != nil {
		return errs.NewStorageFailureError("claim order", result.Error)
	}
	if result.RowsAffected == 0 {
		return order.ErrAlreadyClaimed
	}

	return nil
}

// UpdateStage writes the stage columns of aggregate if the row is still at expected.
func (r *GormOrderRepository) UpdateStage(ctx context.Context, aggregate *order.Order, expected order.Stage) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND stage = ?", dto.ID, string(expected)).
		Updates(map[string]any{
			"stage":         dto.Stage,
			"driver_id":     dto.DriverID,
			"updated_at":    dto.UpdatedAt,
			"delivered_at":  dto.DeliveredAt,
			"cancelled_at":  dto.CancelledAt,
			"cancel_reason": dto.CancelReason,
		})
	if result.Error != nil {
		return errs.NewStorageFailureError("update order stage", result.Error)
	}
	if result.RowsAffected == 0 {
		return order.ErrStageChanged
	}

	return nil
}

func stageStrings(stages []order.Stage) []string {
	out := make([]string, 0, len(stages))
	for _, s := range stages {
		out = append(out, string(s))
	}
	return out
}
