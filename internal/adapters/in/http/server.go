package http

import (
	"context"
	"log/slog"
	"net/http"

	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/core/domain/model/driver"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Use case handlers the server calls. The application handlers satisfy them.
type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	ClaimOrderHandler interface {
		Handle(ctx context.Context, cmd commands.ClaimOrderCommand) (*order.Order, error)
	}
	SetStageHandler interface {
		Handle(ctx context.Context, cmd commands.SetStageCommand) (*order.Order, error)
	}
	CancelOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CancelOrderCommand) (*order.Order, error)
	}
	CreateDriverHandler interface {
		Handle(ctx context.Context, cmd commands.CreateDriverCommand) (*driver.Driver, error)
	}
	QueuePositionHandler interface {
		Handle(ctx context.Context, query queries.GetQueuePositionQuery) (order.QueuePosition, error)
	}
	AvailableOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListAvailableOrdersQuery) ([]queries.OrderView, error)
	}
	OrderDetailsHandler interface {
		Handle(ctx context.Context, query queries.GetOrderDetailsQuery) (queries.OrderDetails, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder     CreateOrderHandler
	ClaimOrder      ClaimOrderHandler
	SetStage        SetStageHandler
	CancelOrder     CancelOrderHandler
	CreateDriver    CreateDriverHandler
	QueuePosition   QueuePositionHandler
	AvailableOrders AvailableOrdersHandler
	OrderDetails    OrderDetailsHandler
}

// Server implements ServerInterface on top of the application handlers.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates a server over handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http_server"),
	}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := newCreateOrderCommand(body)
	if err != nil {
		return s.fail(ctx, err)
	}

	created, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, orderFromDomain(created))
}

// ListAvailableOrders handles GET /api/v1/orders/available.
func (s *Server) ListAvailableOrders(ctx echo.Context, params ListAvailableOrdersParams) error {
	var token string
	if params.Status != nil {
		token = *params.Status
	}
	firmID, err := optionalKernelUUID("firmId", params.FirmId)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewListAvailableOrdersQuery(token, firmID)
	if err != nil {
		return s.fail(ctx, err)
	}

	views, err := s.handlers.AvailableOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]Order, 0, len(views))
	for _, v := range views {
		response = append(response, orderFromView(v))
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := kernelUUID("orderId", orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondWithDetails(ctx, orderID)
}

// GetQueuePosition handles GET /api/v1/orders/{orderId}/queue-position.
func (s *Server) GetQueuePosition(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := kernelUUID("orderId", orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetQueuePositionQuery(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	pos, err := s.handlers.QueuePosition.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, QueuePosition{
		OrderId:       orderId,
		QueuePosition: pos.Position(),
		OrdersAhead:   pos.Ahead(),
	})
}

// ClaimOrder handles POST /api/v1/orders/{orderId}/claim. The response is the hydrated
// order so the driver gets the address and client right away.
func (s *Server) ClaimOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	var body ClaimRequest
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	orderID, orderErr := kernelUUID("orderId", orderId)
	driverID, driverErr := kernelUUID("driverId", body.DriverId)
	if orderErr != nil {
		return s.fail(ctx, orderErr)
	}
	if driverErr != nil {
		return s.fail(ctx, driverErr)
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, driverID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if _, err = s.handlers.ClaimOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return s.respondWithDetails(ctx, orderID)
}

// SetOrderStage handles PATCH /api/v1/orders/{orderId}/stage.
func (s *Server) SetOrderStage(ctx echo.Context, orderId openapi_types.UUID) error {
	var body StageRequest
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernelUUID("orderId", orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewSetStageCommand(orderID, body.Stage)
	if err != nil {
		return s.fail(ctx, err)
	}

	updated, err := s.handlers.SetStage.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(updated))
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	var body CancelRequest
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernelUUID("orderId", orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	var reason string
	if body.Reason != nil {
		reason = *body.Reason
	}
	cmd, err := commands.NewCancelOrderCommand(orderID, reason)
	if err != nil {
		return s.fail(ctx, err)
	}

	cancelled, err := s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(cancelled))
}

// CreateDriver handles POST /api/v1/drivers.
func (s *Server) CreateDriver(ctx echo.Context) error {
	var body NewDriver
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	userID, err := optionalKernelUUID("userId", body.UserId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateDriverCommand(userID, deref(body.VehicleModel), deref(body.VehiclePlate))
	if err != nil {
		return s.fail(ctx, err)
	}

	created, err := s.handlers.CreateDriver.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, driverFromDomain(created))
}

func (s *Server) respondWithDetails(ctx echo.Context, orderID kernel.UUID) error {
	query, err := queries.NewGetOrderDetailsQuery(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	details, err := s.handlers.OrderDetails.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderFromDetails(details))
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

// fail renders err with the status of its class. Server-side failures are logged.
func (s *Server) fail(ctx echo.Context, err error) error {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
	}
	return ctx.JSON(status, Error{Code: status, Message: messageFor(status, err)})
}

func newCreateOrderCommand(body NewOrder) (commands.CreateOrderCommand, error) {
	userID, userErr := kernelUUID("userId", body.UserId)
	firmID, firmErr := kernelUUID("firmId", body.FirmId)
	addressID, addressErr := kernelUUID("addressId", body.AddressId)
	branchID, branchErr := optionalKernelUUID("branchId", body.BranchId)
	total, totalErr := kernel.NewMoney(body.Total)

	lines := make([]commands.OrderLine, 0, len(body.Items))
	var lineErr error
	for _, item := range body.Items {
		productID, err := kernelUUID("productId", item.ProductId)
		if err != nil {
			lineErr = err
			break
		}
		lines = append(lines, commands.OrderLine{ProductID: productID, Quantity: item.Quantity})
	}

	for _, err := range []error{userErr, firmErr, addressErr, branchErr, totalErr, lineErr} {
		if err != nil {
			return commands.CreateOrderCommand{}, err
		}
	}

	return commands.NewCreateOrderCommand(
		userID, firmID, branchID, addressID, lines, total,
		deref(body.PaymentMethod), deref(body.Notes),
	)
}

func kernelUUID(param string, id openapi_types.UUID) (kernel.UUID, error) {
	u, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return u, nil
}

func optionalKernelUUID(param string, id *openapi_types.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	u, err := kernelUUID(param, *id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
