package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Wire types of openapi.yaml.
type (
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}

	NewOrderItem struct {
		ProductId openapi_types.UUID `json:"productId"`
		Quantity  int                `json:"quantity"`
	}

	NewOrder struct {
		UserId        openapi_types.UUID  `json:"userId"`
		FirmId        openapi_types.UUID  `json:"firmId"`
		BranchId      *openapi_types.UUID `json:"branchId,omitempty"`
		AddressId     openapi_types.UUID  `json:"addressId"`
		Items         []NewOrderItem      `json:"items"`
		Total         decimal.Decimal     `json:"total"`
		PaymentMethod *string             `json:"paymentMethod,omitempty"`
		Notes         *string             `json:"notes,omitempty"`
	}

	OrderItem struct {
		ProductId openapi_types.UUID `json:"productId"`
		Name      string             `json:"name"`
		Quantity  int                `json:"quantity"`
		Price     string             `json:"price"`
	}

	Address struct {
		Label     string   `json:"label,omitempty"`
		Street    string   `json:"street,omitempty"`
		Apartment string   `json:"apartment,omitempty"`
		Lat       *float64 `json:"lat,omitempty"`
		Lng       *float64 `json:"lng,omitempty"`
	}

	Firm struct {
		Name  string `json:"name,omitempty"`
		Phone string `json:"phone,omitempty"`
	}

	Client struct {
		FullName string `json:"fullName,omitempty"`
		Phone    string `json:"phone,omitempty"`
	}

	Order struct {
		Id            openapi_types.UUID  `json:"id"`
		Number        string              `json:"number"`
		FirmId        openapi_types.UUID  `json:"firmId"`
		BranchId      *openapi_types.UUID `json:"branchId,omitempty"`
		UserId        openapi_types.UUID  `json:"userId"`
		AddressId     openapi_types.UUID  `json:"addressId"`
		DriverId      *openapi_types.UUID `json:"driverId,omitempty"`
		Stage         string              `json:"stage"`
		PaymentMethod string              `json:"paymentMethod"`
		Total         string              `json:"total"`
		Notes         string              `json:"notes,omitempty"`
		Items         []OrderItem         `json:"items"`
		CreatedAt     time.Time           `json:"createdAt"`
		UpdatedAt     time.Time           `json:"updatedAt"`
		DeliveredAt   *time.Time          `json:"deliveredAt,omitempty"`
		CancelledAt   *time.Time          `json:"cancelledAt,omitempty"`
		CancelReason  string              `json:"cancelReason,omitempty"`
		Address       *Address            `json:"address,omitempty"`
		Firm          *Firm               `json:"firm,omitempty"`
		Client        *Client             `json:"client,omitempty"`
	}

	QueuePosition struct {
		OrderId       openapi_types.UUID `json:"orderId"`
		QueuePosition int                `json:"queuePosition"`
		OrdersAhead   int                `json:"ordersAhead"`
	}

	ClaimRequest struct {
		DriverId openapi_types.UUID `json:"driverId"`
	}

	StageRequest struct {
		Stage string `json:"stage"`
	}

	CancelRequest struct {
		Reason *string `json:"reason,omitempty"`
	}

	NewDriver struct {
		UserId       *openapi_types.UUID `json:"userId,omitempty"`
		VehicleModel *string             `json:"vehicleModel,omitempty"`
		VehiclePlate *string             `json:"vehiclePlate,omitempty"`
	}

	Driver struct {
		Id           openapi_types.UUID  `json:"id"`
		UserId       *openapi_types.UUID `json:"userId,omitempty"`
		IsAvailable  bool                `json:"isAvailable"`
		VehicleModel string              `json:"vehicleModel,omitempty"`
		VehiclePlate string              `json:"vehiclePlate,omitempty"`
		Rating       float64             `json:"rating"`
	}

	ListAvailableOrdersParams struct {
		Status *string             `form:"status,omitempty" json:"status,omitempty"`
		FirmId *openapi_types.UUID `form:"firmId,omitempty" json:"firmId,omitempty"`
	}
)

// ServerInterface lists the operations of openapi.yaml.
type ServerInterface interface {
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// (GET /api/v1/orders/available)
	ListAvailableOrders(ctx echo.Context, params ListAvailableOrdersParams) error
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (GET /api/v1/orders/{orderId}/queue-position)
	GetQueuePosition(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/claim)
	ClaimOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (PATCH /api/v1/orders/{orderId}/stage)
	SetOrderStage(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/cancel)
	CancelOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /api/v1/drivers)
	CreateDriver(ctx echo.Context) error
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlersWithBaseURL mounts si on router. Parameters are bound before si is
// called, so handlers receive typed values.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	w := serverInterfaceWrapper{handler: si}

	router.POST(baseURL+"/api/v1/orders", w.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/available", w.ListAvailableOrders)
	router.GET(baseURL+"/api/v1/orders/:orderId", w.GetOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId/queue-position", w.GetQueuePosition)
	router.POST(baseURL+"/api/v1/orders/:orderId/claim", w.ClaimOrder)
	router.PATCH(baseURL+"/api/v1/orders/:orderId/stage", w.SetOrderStage)
	router.POST(baseURL+"/api/v1/orders/:orderId/cancel", w.CancelOrder)
	router.POST(baseURL+"/api/v1/drivers", w.CreateDriver)
}

type serverInterfaceWrapper struct {
	handler ServerInterface
}

func (w serverInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.handler.CreateOrder(ctx)
}

func (w serverInterfaceWrapper) ListAvailableOrders(ctx echo.Context) error {
	var params ListAvailableOrdersParams

	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "firmId", ctx.QueryParams(), &params.FirmId); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter firmId: %s", err))
	}

	return w.handler.ListAvailableOrders(ctx, params)
}

func (w serverInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.handler.GetOrder(ctx, orderID)
}

func (w serverInterfaceWrapper) GetQueuePosition(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.handler.GetQueuePosition(ctx, orderID)
}

func (w serverInterfaceWrapper) ClaimOrder(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.handler.ClaimOrder(ctx, orderID)
}

func (w serverInterfaceWrapper) SetOrderStage(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.handler.SetOrderStage(ctx, orderID)
}

func (w serverInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.handler.CancelOrder(ctx, orderID)
}

func (w serverInterfaceWrapper) CreateDriver(ctx echo.Context) error {
	return w.handler.CreateDriver(ctx)
}

func bindOrderID(ctx echo.Context) (openapi_types.UUID, error) {
	var orderID openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return orderID, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}
	return orderID, nil
}
