package commands

import (
	"errors"
	"strings"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

// maxCancelReasonLength bounds the free-text reason.
const maxCancelReasonLength = 500

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand cancels a non-terminal order with an optional reason.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID kernel.UUID, reason string) (CancelOrderCommand, error) {
	reason = strings.TrimSpace(reason)

	var reasonErr error
	if len(reason) > maxCancelReasonLength {
		reasonErr = errs.NewValueIsOutOfRangeError("reason length", len(reason), 0, maxCancelReasonLength)
	}

	if err := errors.Join(required("orderId", orderID.Validate()), reasonErr); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{
		orderID: orderID,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CancelOrderCommand) Reason() string {
	return c.reason
}
