package cmd_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"waterdelivery/cmd"
	postgresadapter "waterdelivery/internal/adapters/out/postgres"
	"waterdelivery/internal/adapters/out/postgres/catalogrepo"
	"waterdelivery/internal/adapters/out/postgres/clientrepo"
	"waterdelivery/internal/adapters/out/postgres/pgtest"
	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type OrderFlowIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	app       *cmd.CompositionRoot

	firmID    kernel.UUID
	userID    kernel.UUID
	addressID kernel.UUID
	waterID   kernel.UUID
	pumpID    kernel.UUID
}

func (suite *OrderFlowIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db
	suite.Require().NoError(postgresadapter.Migrate(db))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := cmd.Config{NotifyChannel: "order-events", NotifyMaxInFlight: 8, NotifyTimeout: time.Second}
	suite.app = cmd.NewCompositionRoot(cfg, db, nil, logger)
}

func (suite *OrderFlowIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(postgresadapter.TruncateAll(suite.db))

	suite.firmID = kernel.NewUUID()
	suite.userID = kernel.NewUUID()
	suite.addressID = kernel.NewUUID()
	suite.waterID = kernel.NewUUID()
	suite.pumpID = kernel.NewUUID()

	suite.Require().NoError(suite.db.Create(&catalogrepo.FirmDTO{
		ID: suite.firmID.Bytes(), Name: "Toza Suv", Phone: "+998711234567",
	}).Error)
	suite.Require().NoError(suite.db.Create(&[]catalogrepo.ProductDTO{
		{ID: suite.waterID.Bytes(), FirmID: suite.firmID.Bytes(), Name: "Water 19L", Price: decimal.NewFromInt(15000), IsActive: true},
		{ID: suite.pumpID.Bytes(), FirmID: suite.firmID.Bytes(), Name: "Hand pump", Price: decimal.NewFromInt(15000), IsActive: true},
	}).Error)
	suite.Require().NoError(suite.db.Create(&clientrepo.UserDTO{
		ID: suite.userID.Bytes(), FullName: "Aziza Karimova", Phone: "+998901234567",
	}).Error)
	suite.Require().NoError(suite.db.Create(&clientrepo.AddressDTO{
		ID: suite.addressID.Bytes(), UserID: suite.userID.Bytes(), Label: "Home", Street: "Amir Temur 1",
	}).Error)
}

func (suite *OrderFlowIntegrationTestSuite) TearDownSuite() {
	if suite.app != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		suite.NoError(suite.app.Shutdown(ctx))
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderFlowIntegrationTestSuite) TestClaimFlow() {
	ctx := context.Background()

	first := suite.placeOrder()
	second := suite.placeOrder()
	suite.Equal(order.Pending, first.Stage())
	suite.Equal("45000.00", first.Total().String())
	suite.Len(first.Items(), 2)

	suite.assertPosition(first.ID(), 1, 0)
	suite.assertPosition(second.ID(), 2, 1)

	driverX := suite.createDriver()
	driverY := suite.createDriver()

	claimX, err := commands.NewClaimOrderCommand(second.ID(), driverX)
	suite.Require().NoError(err)
	claimed, err := suite.app.CreateClaimOrderCommandHandler().Handle(ctx, claimX)
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, claimed.Stage())
	suite.Require().NotNil(claimed.Driver())
	suite.True(claimed.Driver().IsEqual(driverX))

	suite.assertPosition(second.ID(), 0, 0)
	suite.assertPosition(first.ID(), 1, 0)

	claimY, err := commands.NewClaimOrderCommand(second.ID(), driverY)
	suite.Require().NoError(err)
	_, err = suite.app.CreateClaimOrderCommandHandler().Handle(ctx, claimY)
	suite.ErrorIs(err, order.ErrAlreadyClaimed)

	details := suite.details(second.ID())
	suite.Require().NotNil(details.DriverID)
	suite.True(details.DriverID.IsEqual(driverX))
	suite.Require().NotNil(details.Client)
	suite.Equal("+********4567", details.Client.MaskedPhone)
}

func (suite *OrderFlowIntegrationTestSuite) TestDeliveryLifecycle() {
	ctx := context.Background()
	placed := suite.placeOrder()
	driverID := suite.createDriver()

	claim, err := commands.NewClaimOrderCommand(placed.ID(), driverID)
	suite.Require().NoError(err)
	_, err = suite.app.CreateClaimOrderCommandHandler().Handle(ctx, claim)
	suite.Require().NoError(err)

	available := suite.available("COURIER_ON_THE_WAY")
	suite.Require().Len(available, 1)
	suite.True(available[0].ID.IsEqual(placed.ID()))

	for _, stage := range []string{"picked_up", "DELIVERING", "DELIVERED"} {
		cmdStage, err := commands.NewSetStageCommand(placed.ID(), stage)
		suite.Require().NoError(err)
		_, err = suite.app.CreateSetStageCommandHandler().Handle(ctx, cmdStage)
		suite.Require().NoError(err, stage)
	}

	details := suite.details(placed.ID())
	suite.Equal(order.Delivered, details.Stage)
	suite.NotNil(details.DeliveredAt)

	cancel, err := commands.NewCancelOrderCommand(placed.ID(), "too late")
	suite.Require().NoError(err)
	_, err = suite.app.CreateCancelOrderCommandHandler().Handle(ctx, cancel)
	suite.ErrorIs(err, order.ErrInvalidTransition)
}

func (suite *OrderFlowIntegrationTestSuite) TestCancelLeavesQueue() {
	ctx := context.Background()
	first := suite.placeOrder()
	second := suite.placeOrder()

	cancel, err := commands.NewCancelOrderCommand(first.ID(), "changed my mind")
	suite.Require().NoError(err)
	cancelled, err := suite.app.CreateCancelOrderCommandHandler().Handle(ctx, cancel)
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, cancelled.Stage())
	suite.Equal("changed my mind", cancelled.CancelReason())

	suite.assertPosition(first.ID(), 0, 0)
	suite.assertPosition(second.ID(), 1, 0)
	suite.Len(suite.available(""), 1)
}

func (suite *OrderFlowIntegrationTestSuite) placeOrder() *order.Order {
	total, err := kernel.MoneyFromString("45000")
	suite.Require().NoError(err)

	cmdCreate, err := commands.NewCreateOrderCommand(
		suite.userID, suite.firmID, nil, suite.addressID,
		[]commands.OrderLine{{ProductID: suite.waterID, Quantity: 2}, {ProductID: suite.pumpID, Quantity: 1}},
		total, "cash", "",
	)
	suite.Require().NoError(err)

	created, err := suite.app.CreateCreateOrderCommandHandler().Handle(context.Background(), cmdCreate)
	suite.Require().NoError(err)
	return created
}

func (suite *OrderFlowIntegrationTestSuite) createDriver() kernel.UUID {
	userID := kernel.NewUUID()
	cmdDriver, err := commands.NewCreateDriverCommand(&userID, "Damas", "01 A 123 BC")
	suite.Require().NoError(err)

	created, err := suite.app.CreateCreateDriverCommandHandler().Handle(context.Background(), cmdDriver)
	suite.Require().NoError(err)
	return created.ID()
}

func (suite *OrderFlowIntegrationTestSuite) assertPosition(orderID kernel.UUID, position, ahead int) {
	query, err := queries.NewGetQueuePositionQuery(orderID)
	suite.Require().NoError(err)

	pos, err := suite.app.CreateGetQueuePositionQueryHandler().Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal(position, pos.Position())
	suite.Equal(ahead, pos.Ahead())
}

func (suite *OrderFlowIntegrationTestSuite) available(token string) []queries.OrderView {
	query, err := queries.NewListAvailableOrdersQuery(token, nil)
	suite.Require().NoError(err)

	views, err := suite.app.CreateListAvailableOrdersQueryHandler().Handle(context.Background(), query)
	suite.Require().NoError(err)
	return views
}

func (suite *OrderFlowIntegrationTestSuite) details(orderID kernel.UUID) queries.OrderDetails {
	query, err := queries.NewGetOrderDetailsQuery(orderID)
	suite.Require().NoError(err)

	details, err := suite.app.CreateGetOrderDetailsQueryHandler().Handle(context.Background(), query)
	suite.Require().NoError(err)
	return details
}

func TestOrderFlowIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderFlowIntegrationTestSuite))
}
