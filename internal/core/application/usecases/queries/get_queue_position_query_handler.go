package queries

import (
	"context"

	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetQueuePositionQueryHandler ranks an order among the unassigned queued orders of its
// firm. Nothing is locked: two reads around a claim may both see the claimed order.
//
// Example:
//
//	pos, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	if !pos.IsQueued() {
//	    // already taken by a driver or finished
//	}
type GetQueuePositionQueryHandler struct {
	db *gorm.DB
}

func NewGetQueuePositionQueryHandler(db *gorm.DB) GetQueuePositionQueryHandler {
	return GetQueuePositionQueryHandler{db: db}
}

type queuePositionRow struct {
	Stage string
	Ahead int
}

// Handle counts the queued orders of the same firm created before the target, with seq
// breaking created_at ties. Orders outside the queue report position 0 and 0 ahead.
//
// Returns an errs.ErrObjectNotFound error for an unknown order.
func (h GetQueuePositionQueryHandler) Handle(ctx context.Context, query GetQueuePositionQuery) (order.QueuePosition, error) {
	if err := query.Validate(); err != nil {
		return order.QueuePosition{}, err
	}

	queued := pq.Array(stageStrings(order.QueueSet()))

	var rows []queuePositionRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			t.stage,
			(
				SELECT COUNT(*)
				FROM orders o
				WHERE o.firm_id = t.firm_id
				  AND o.stage = ANY(?)
				  AND o.driver_id IS NULL
				  AND o.id <> t.id
				  AND (o.created_at, o.seq) < (t.created_at, t.seq)
			) AS ahead
		FROM orders t
		WHERE t.id = ?
	`, queued, query.OrderID().Bytes()).Scan(&rows).Error
	if err != nil {
		return order.QueuePosition{}, errs.NewStorageFailureError("count queued orders", err)
	}
	if len(rows) == 0 {
		return order.QueuePosition{}, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
	}

	if !order.Stage(rows[0].Stage).IsQueued() {
		return order.NotQueued(), nil
	}
	return order.NewQueuePosition(rows[0].Ahead), nil
}
