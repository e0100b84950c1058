package commands

import (
	"errors"
	"fmt"
	"strings"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderLine is a requested product and quantity. Name and price come from the catalog.
type OrderLine struct {
	ProductID kernel.UUID
	Quantity  int
}

// CreateOrderCommand places a new order for a client with a firm.
//
// Example:
//
//	cmd, err := commands.NewCreateOrderCommand(
//	    userID, firmID, nil, addressID,
//	    []commands.OrderLine{{ProductID: waterID, Quantity: 2}},
//	    total, "", "call on arrival",
//	)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	userID        kernel.UUID
	firmID        kernel.UUID
	branchID      *kernel.UUID
	addressID     kernel.UUID
	lines         []OrderLine
	total         kernel.Money
	paymentMethod order.PaymentMethod
	notes         string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request. An empty paymentMethod defaults to CASH.
func NewCreateOrderCommand(
	userID, firmID kernel.UUID,
	branchID *kernel.UUID,
	addressID kernel.UUID,
	lines []OrderLine,
	total kernel.Money,
	paymentMethod string,
	notes string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		branchID: branchID,
		total:    total,
		notes:    strings.TrimSpace(notes),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		required("userId", userID.Validate()),
		required("firmId", firmID.Validate()),
		required("addressId", addressID.Validate()),
		cmd.validateBranch(),
		cmd.setLines(lines),
		cmd.setPaymentMethod(paymentMethod),
		total.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.userID = userID
	cmd.firmID = firmID
	cmd.addressID = addressID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) UserID() kernel.UUID {
	return c.userID
}

func (c CreateOrderCommand) FirmID() kernel.UUID {
	return c.firmID
}

func (c CreateOrderCommand) BranchID() *kernel.UUID {
	return c.branchID
}

func (c CreateOrderCommand) AddressID() kernel.UUID {
	return c.addressID
}

// Lines returns a copy of the requested lines.
func (c CreateOrderCommand) Lines() []OrderLine {
	out := make([]OrderLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c CreateOrderCommand) Total() kernel.Money {
	return c.total
}

func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

func (c CreateOrderCommand) Notes() string {
	return c.notes
}

func (c *CreateOrderCommand) validateBranch() error {
	if c.branchID == nil {
		return nil
	}
	return required("branchId", c.branchID.Validate())
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	seen := make(map[kernel.UUID]struct{}, len(lines))
	var lineErrs []error
	for i, line := range lines {
		if err := line.ProductID.Validate(); err != nil {
			lineErrs = append(lineErrs, errs.NewValueIsRequiredErrorWithCause(fmt.Sprintf("items[%d].productId", i), err))
			continue
		}
		if line.Quantity <= 0 {
			lineErrs = append(lineErrs, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].quantity", i), fmt.Errorf("%d is not greater than 0", line.Quantity)))
		}
		if _, dup := seen[line.ProductID]; dup {
			lineErrs = append(lineErrs, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].productId", i), errors.New("product is listed twice")))
		}
		seen[line.ProductID] = struct{}{}
	}
	if err := errors.Join(lineErrs...); err != nil {
		return err
	}

	c.lines = make([]OrderLine, len(lines))
	copy(c.lines, lines)
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(raw string) error {
	m, err := order.ParsePaymentMethod(raw)
	if err != nil {
		return err
	}
	c.paymentMethod = m
	return nil
}

func required(param string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsRequiredErrorWithCause(param, err)
}
