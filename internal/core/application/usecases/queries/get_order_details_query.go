package queries

import (
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

var ErrGetOrderDetailsQueryIsNotConstructed = errors.New(
	"GetOrderDetailsQuery must be created via NewGetOrderDetailsQuery constructor",
)

// GetOrderDetailsQuery loads an order together with its address, firm and client summary.
type GetOrderDetailsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderDetailsQuery(orderID kernel.UUID) (GetOrderDetailsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderDetailsQuery{}, errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	return GetOrderDetailsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderDetailsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDetailsQueryIsNotConstructed)
}

func (q GetOrderDetailsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// AddressView is the delivery address of an order.
type AddressView struct {
	Label     string
	Street    string
	Apartment string
	Lat       *float64
	Lng       *float64
}

// FirmView is the vendor of an order.
type FirmView struct {
	Name  string
	Phone string
}

// ClientView is what a driver may see about the client. The phone is masked.
type ClientView struct {
	FullName    string
	MaskedPhone string
}

// OrderDetails is an order hydrated with its collaborators. Address, Firm and Client are
// nil when the referenced rows are gone from the owning services.
type OrderDetails struct {
	OrderView
	Address *AddressView
	Firm    *FirmView
	Client  *ClientView
}
