// Package queries contains the read side: queue position, the available-orders feed and
// hydrated order details. Handlers read with raw SQL through GORM and never load aggregates.
package queries

import (
	"errors"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItemView is an order line as shown to clients and drivers.
type OrderItemView struct {
	ProductID kernel.UUID
	Name      string
	Quantity  int
	Price     kernel.Money
}

// OrderView is the read model of an order.
type OrderView struct {
	ID            kernel.UUID
	Number        string
	FirmID        kernel.UUID
	BranchID      *kernel.UUID
	UserID        kernel.UUID
	AddressID     kernel.UUID
	DriverID      *kernel.UUID
	Stage         order.Stage
	PaymentMethod order.PaymentMethod
	Total         kernel.Money
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeliveredAt   *time.Time
	CancelledAt   *time.Time
	CancelReason  string
	Items         []OrderItemView
}

// orderColumns is the select list matching orderRow.
const orderColumns = `
	o.id, o.order_number, o.firm_id, o.branch_id, o.user_id, o.address_id, o.driver_id,
	o.stage, o.payment_method, o.total, o.notes, o.created_at, o.updated_at,
	o.delivered_at, o.cancelled_at, o.cancel_reason`

type orderRow struct {
	ID            uuid.UUID
	OrderNumber   string
	FirmID        uuid.UUID
	BranchID      *uuid.UUID
	UserID        uuid.UUID
	AddressID     uuid.UUID
	DriverID      *uuid.UUID
	Stage         string
	PaymentMethod string
	Total         decimal.Decimal
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeliveredAt   *time.Time
	CancelledAt   *time.Time
	CancelReason  string
}

type itemRow struct {
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	Price       decimal.Decimal
}

func (r orderRow) toView() (OrderView, error) {
	ids := make([]kernel.UUID, 4)
	var idErrs []error
	for i, raw := range []uuid.UUID{r.ID, r.FirmID, r.UserID, r.AddressID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		ids[i] = id
		idErrs = append(idErrs, err)
	}
	branchID, branchErr := optionalUUID(r.BranchID)
	driverID, driverErr := optionalUUID(r.DriverID)
	total, totalErr := kernel.NewMoney(r.Total)

	if err := errors.Join(append(idErrs, branchErr, driverErr, totalErr)...); err != nil {
		return OrderView{}, err
	}

	return OrderView{
		ID:            ids[0],
		Number:        r.OrderNumber,
		FirmID:        ids[1],
		BranchID:      branchID,
		UserID:        ids[2],
		AddressID:     ids[3],
		DriverID:      driverID,
		Stage:         order.Stage(r.Stage),
		PaymentMethod: order.PaymentMethod(r.PaymentMethod),
		Total:         total,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt.UTC(),
		UpdatedAt:     r.UpdatedAt.UTC(),
		DeliveredAt:   r.DeliveredAt,
		CancelledAt:   r.CancelledAt,
		CancelReason:  r.CancelReason,
		Items:         []OrderItemView{},
	}, nil
}

func (r itemRow) toView() (OrderItemView, error) {
	productID, err := kernel.UUIDFromBytes(r.ProductID[:])
	if err != nil {
		return OrderItemView{}, err
	}
	price, err := kernel.NewMoney(r.Price)
	if err != nil {
		return OrderItemView{}, err
	}
	return OrderItemView{
		ProductID: productID,
		Name:      r.ProductName,
		Quantity:  r.Quantity,
		Price:     price,
	}, nil
}

func optionalUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	u, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func stageStrings(stages []order.Stage) []string {
	out := make([]string, 0, len(stages))
	for _, s := range stages {
		out = append(out, string(s))
	}
	return out
}
