package http

import (
	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/core/domain/model/driver"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func orderFromDomain(o *order.Order) Order {
	items := o.Items()
	response := Order{
		Id:            o.ID().Bytes(),
		Number:        o.Number().String(),
		FirmId:        o.FirmID().Bytes(),
		BranchId:      apiUUID(o.BranchID()),
		UserId:        o.UserID().Bytes(),
		AddressId:     o.AddressID().Bytes(),
		DriverId:      apiUUID(o.Driver()),
		Stage:         o.Stage().String(),
		PaymentMethod: o.PaymentMethod().String(),
		Total:         o.Total().String(),
		Notes:         o.Notes(),
		Items:         make([]OrderItem, 0, len(items)),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
		DeliveredAt:   o.DeliveredAt(),
		CancelledAt:   o.CancelledAt(),
		CancelReason:  o.CancelReason(),
	}
	for _, item := range items {
		response.Items = append(response.Items, OrderItem{
			ProductId: item.ProductID().Bytes(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			Price:     item.Price().String(),
		})
	}
	return response
}

func orderFromView(v queries.OrderView) Order {
	response := Order{
		Id:            v.ID.Bytes(),
		Number:        v.Number,
		FirmId:        v.FirmID.Bytes(),
		BranchId:      apiUUID(v.BranchID),
		UserId:        v.UserID.Bytes(),
		AddressId:     v.AddressID.Bytes(),
		DriverId:      apiUUID(v.DriverID),
		Stage:         v.Stage.String(),
		PaymentMethod: v.PaymentMethod.String(),
		Total:         v.Total.String(),
		Notes:         v.Notes,
		Items:         make([]OrderItem, 0, len(v.Items)),
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
		DeliveredAt:   v.DeliveredAt,
		CancelledAt:   v.CancelledAt,
		CancelReason:  v.CancelReason,
	}
	for _, item := range v.Items {
		response.Items = append(response.Items, OrderItem{
			ProductId: item.ProductID.Bytes(),
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price.String(),
		})
	}
	return response
}

func orderFromDetails(d queries.OrderDetails) Order {
	response := orderFromView(d.OrderView)
	if d.Address != nil {
		response.Address = &Address{
			Label:     d.Address.Label,
			Street:    d.Address.Street,
			Apartment: d.Address.Apartment,
			Lat:       d.Address.Lat,
			Lng:       d.Address.Lng,
		}
	}
	if d.Firm != nil {
		response.Firm = &Firm{Name: d.Firm.Name, Phone: d.Firm.Phone}
	}
	if d.Client != nil {
		response.Client = &Client{FullName: d.Client.FullName, Phone: d.Client.MaskedPhone}
	}
	return response
}

func driverFromDomain(d *driver.Driver) Driver {
	return Driver{
		Id:           d.ID().Bytes(),
		UserId:       apiUUID(d.UserID()),
		IsAvailable:  d.IsAvailable(),
		VehicleModel: d.Vehicle().Model(),
		VehiclePlate: d.Vehicle().Plate(),
		Rating:       d.Rating(),
	}
}

func apiUUID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	u := id.Bytes()
	return &u
}
