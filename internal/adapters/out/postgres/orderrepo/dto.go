// Package orderrepo persists the order aggregate with GORM: the orders table, its items
// and the mapping between rows and the domain model.
package orderrepo

import (
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is a row of the orders table.
//
// idx_orders_queue serves both the queue position count and the available-orders feed,
// which filter by exactly (firm_id, stage, driver_id) and order by created_at. Seq breaks
// created_at ties so FIFO ranks stay stable between reads.
type OrderDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Seq           int64           `gorm:"autoIncrement;not null;uniqueIndex"`
	OrderNumber   string          `gorm:"type:varchar(20);not null;index"`
	FirmID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_orders_queue,priority:1"`
	Stage         string          `gorm:"type:varchar(20);not null;index:idx_orders_queue,priority:2"`
	DriverID      *uuid.UUID      `gorm:"type:uuid;index:idx_orders_queue,priority:3"`
	CreatedAt     time.Time       `gorm:"not null;index:idx_orders_queue,priority:4"`
	BranchID      *uuid.UUID      `gorm:"type:uuid"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	AddressID     uuid.UUID       `gorm:"type:uuid;not null"`
	PaymentMethod string          `gorm:"type:varchar(10);not null"`
	Total         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Notes         string          `gorm:"type:text"`
	UpdatedAt     time.Time       `gorm:"not null"`
	DeliveredAt   *time.Time
	CancelledAt   *time.Time
	CancelReason  string         `gorm:"type:text"`
	Items         []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is a row of order_items. Position keeps the line order of the order.
type OrderItemDTO struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"not null"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	Quantity    int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	items := o.Items()
	itemDTOs := make([]OrderItemDTO, 0, len(items))
	for i, item := range items {
		itemDTOs = append(itemDTOs, OrderItemDTO{
			OrderID:     o.ID().Bytes(),
			Position:    i,
			ProductID:   item.ProductID().Bytes(),
			ProductName: item.Name(),
			Quantity:    item.Quantity(),
			Price:       item.Price().Decimal(),
		})
	}

	return OrderDTO{
		ID:            o.ID().Bytes(),
		OrderNumber:   string(o.Number()),
		FirmID:        o.FirmID().Bytes(),
		Stage:         string(o.Stage()),
		DriverID:      optionalUUID(o.Driver()),
		CreatedAt:     o.CreatedAt(),
		BranchID:      optionalUUID(o.BranchID()),
		UserID:        o.UserID().Bytes(),
		AddressID:     o.AddressID().Bytes(),
		PaymentMethod: string(o.PaymentMethod()),
		Total:         o.Total().Decimal(),
		Notes:         o.Notes(),
		UpdatedAt:     o.UpdatedAt(),
		DeliveredAt:   o.DeliveredAt(),
		CancelledAt:   o.CancelledAt(),
		CancelReason:  o.CancelReason(),
		Items:         itemDTOs,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	firmID, err := kernel.UUIDFromBytes(dto.FirmID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	addressID, err := kernel.UUIDFromBytes(dto.AddressID[:])
	if err != nil {
		return nil, err
	}
	branchID, err := restoreOptionalUUID(dto.BranchID)
	if err != nil {
		return nil, err
	}
	driverID, err := restoreOptionalUUID(dto.DriverID)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.State{
		ID:     id,
		Number: order.Number(dto.OrderNumber),
		Placement: order.Placement{
			UserID:    userID,
			FirmID:    firmID,
			BranchID:  branchID,
			AddressID: addressID,
		},
		DriverID:      driverID,
		Stage:         order.Stage(dto.Stage),
		PaymentMethod: order.PaymentMethod(dto.PaymentMethod),
		Total:         total,
		Notes:         dto.Notes,
		Items:         items,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
		DeliveredAt:   dto.DeliveredAt,
		CancelledAt:   dto.CancelledAt,
		CancelReason:  dto.CancelReason,
	})
}

func itemToDomain(dto OrderItemDTO) (order.Item, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.Item{}, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return order.Item{}, err
	}
	return order.NewItem(productID, dto.ProductName, dto.Quantity, price)
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func restoreOptionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil // column is NULL
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
