package queries

import (
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

var ErrGetQueuePositionQueryIsNotConstructed = errors.New(
	"GetQueuePositionQuery must be created via NewGetQueuePositionQuery constructor",
)

// GetQueuePositionQuery asks where an order stands in its firm's queue.
type GetQueuePositionQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetQueuePositionQuery(orderID kernel.UUID) (GetQueuePositionQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetQueuePositionQuery{}, errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	return GetQueuePositionQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetQueuePositionQuery) Validate() error {
	return q.guard.Validate(ErrGetQueuePositionQueryIsNotConstructed)
}

func (q GetQueuePositionQuery) OrderID() kernel.UUID {
	return q.orderID
}
