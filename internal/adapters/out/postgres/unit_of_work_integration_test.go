package postgres_test

import (
	"context"
	"testing"
	"time"

	postgresadapter "waterdelivery/internal/adapters/out/postgres"
	"waterdelivery/internal/adapters/out/postgres/pgtest"
	"waterdelivery/internal/core/domain/model/driver"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/core/ports"
	"waterdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.Require().NoError(postgresadapter.Migrate(db))
	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(postgresadapter.TruncateAll(suite.db))
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesIndependentInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.DriverRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "second Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAcrossRepositories() {
	ctx := context.Background()
	d := suite.newDriver()
	o := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.DriverRepository().Add(ctx, d))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.OrderRepository().Claim(ctx, o.ID(), d.ID(), time.Now()))
	suite.Require().NoError(uow.Commit(ctx))

	stored, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, stored.Stage())
	suite.True(stored.Driver().IsEqual(d.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChanges() {
	ctx := context.Background()
	o := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRepositoriesWithoutTransaction_WriteImmediately() {
	ctx := context.Background()
	d := suite.newDriver()

	suite.Require().NoError(suite.factory.Create().DriverRepository().Add(ctx, d))

	stored, err := suite.factory.Create().DriverRepository().Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.True(stored.IsEqual(d))
}

func (suite *UnitOfWorkIntegrationTestSuite) newDriver() *driver.Driver {
	d, err := driver.NewDriver(kernel.NewUUID(), nil, driver.Vehicle{})
	suite.Require().NoError(err)
	return d
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	price, err := kernel.MoneyFromString("22500")
	suite.Require().NoError(err)
	item, err := order.NewItem(kernel.NewUUID(), "Water 19L", 2, price)
	suite.Require().NoError(err)
	total, err := kernel.MoneyFromString("45000")
	suite.Require().NoError(err)

	now := time.Now()
	o, err := order.NewOrder(kernel.NewUUID(), order.GenerateNumber(now), order.Placement{
		UserID:    kernel.NewUUID(),
		FirmID:    kernel.NewUUID(),
		AddressID: kernel.NewUUID(),
	}, []order.Item{item}, total, order.Cash, "", now)
	suite.Require().NoError(err)
	return o
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
