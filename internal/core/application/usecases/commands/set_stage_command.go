package commands

import (
	"errors"
	"strings"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

var ErrSetStageCommandIsNotConstructed = errors.New(
	"SetStageCommand must be created via NewSetStageCommand constructor",
)

// SetStageCommand moves an order to a target stage.
//
// The target is only normalized here. Whether it is a known stage and a legal successor
// is decided by the order itself, so both cases surface as order.ErrInvalidTransition.
type SetStageCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Stage

	guard guard.ConstructorGuard
}

func NewSetStageCommand(orderID kernel.UUID, target string) (SetStageCommand, error) {
	target = strings.ToUpper(strings.TrimSpace(target))

	var targetErr error
	if target == "" {
		targetErr = errs.NewValueIsRequiredError("stage")
	}

	if err := errors.Join(required("orderId", orderID.Validate()), targetErr); err != nil {
		return SetStageCommand{}, err
	}

	return SetStageCommand{
		orderID: orderID,
		target:  order.Stage(target),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SetStageCommand) Validate() error {
	return c.guard.Validate(ErrSetStageCommandIsNotConstructed)
}

func (c SetStageCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c SetStageCommand) Target() order.Stage {
	return c.target
}
