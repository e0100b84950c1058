package orderrepo_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	postgresadapter "waterdelivery/internal/adapters/out/postgres"
	"waterdelivery/internal/adapters/out/postgres/orderrepo"
	"waterdelivery/internal/adapters/out/postgres/pgtest"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.Require().NoError(postgresadapter.Migrate(db))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(postgresadapter.TruncateAll(suite.db))
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_RoundTripsAggregate() {
	ctx := context.Background()
	branchID := kernel.NewUUID()
	o := suite.createOrder(kernel.NewUUID(), time.Now(), &branchID)

	suite.Require().NoError(suite.repository.Add(ctx, o))
	stored, err := suite.repository.Get(ctx, o.ID())

	suite.Require().NoError(err)
	suite.True(stored.IsEqual(o))
	suite.Equal(o.Number(), stored.Number())
	suite.Equal(order.Pending, stored.Stage())
	suite.Nil(stored.Driver())
	suite.True(stored.FirmID().IsEqual(o.FirmID()))
	suite.True(stored.BranchID().IsEqual(branchID))
	suite.Equal("45000.00", stored.Total().String())
	suite.Equal("leave at the door", stored.Notes())
	suite.True(o.CreatedAt().Equal(stored.CreatedAt()))

	items := stored.Items()
	suite.Require().Len(items, 2)
	suite.Equal("Water 19L", items[0].Name())
	suite.Equal(2, items[0].Quantity())
	suite.Equal("15000.00", items[0].Price().String())
	suite.Equal("Cup dispenser", items[1].Name())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_AssignsIncreasingSeq() {
	ctx := context.Background()
	firmID := kernel.NewUUID()
	at := time.Now()
	first := suite.createOrder(firmID, at, nil)
	second := suite.createOrder(firmID, at, nil)

	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	var seqs []int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).
		Where("id IN ?", []any{first.ID().Bytes(), second.ID().Bytes()}).
		Order("seq").Pluck("seq", &seqs).Error)
	suite.Require().Len(seqs, 2)
	suite.Less(seqs[0], seqs[1])
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_InvalidAggregate() {
	err := suite.repository.Add(context.Background(), &order.Order{})

	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
	suite.assertOrderCount(0)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	id := kernel.NewUUID()

	_, err := suite.repository.Get(context.Background(), id)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Contains(err.Error(), id.String())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_CancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrStorageFailure)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_ConfirmsQueuedOrder() {
	ctx := context.Background()
	o := suite.createOrder(kernel.NewUUID(), time.Now(), nil)
	suite.Require().NoError(suite.repository.Add(ctx, o))
	driverID := kernel.NewUUID()

	suite.Require().NoError(suite.repository.Claim(ctx, o.ID(), driverID, time.Now()))

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, stored.Stage())
	suite.True(stored.Driver().IsEqual(driverID))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_AlreadyClaimed() {
	ctx := context.Background()
	o := suite.createOrder(kernel.NewUUID(), time.Now(), nil)
	suite.Require().NoError(suite.repository.Add(ctx, o))
	first := kernel.NewUUID()
	suite.Require().NoError(suite.repository.Claim(ctx, o.ID(), first, time.Now()))

	err := suite.repository.Claim(ctx, o.ID(), kernel.NewUUID(), time.Now())

	suite.Require().ErrorIs(err, order.ErrAlreadyClaimed)
	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(stored.Driver().IsEqual(first))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_CancelledOrMissingOrder() {
	ctx := context.Background()
	o := suite.createOrder(kernel.NewUUID(), time.Now(), nil)
	suite.Require().NoError(o.Cancel("client left", time.Now()))
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().ErrorIs(suite.repository.Claim(ctx, o.ID(), kernel.NewUUID(), time.Now()), order.ErrAlreadyClaimed)
	suite.Require().ErrorIs(suite.repository.Claim(ctx, kernel.NewUUID(), kernel.NewUUID(), time.Now()), order.ErrAlreadyClaimed)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_ConcurrentDriversExactlyOneWins() {
	ctx := context.Background()
	o := suite.createOrder(kernel.NewUUID(), time.Now(), nil)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	const drivers = 16
	var won, lost atomic.Int32
	start := make(chan struct{})
	g, gctx := errgroup.WithContext(ctx)
	for range drivers {
		driverID := kernel.NewUUID()
		g.Go(func() error {
			<-start
			err := orderrepo.NewGormOrderRepository(suite.db).Claim(gctx, o.ID(), driverID, time.Now())
			switch {
			case err == nil:
				won.Add(1)
			case errors.Is(err, order.ErrAlreadyClaimed):
				lost.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	close(start)

	suite.Require().NoError(g.Wait())
	suite.Equal(int32(1), won.Load())
	suite.Equal(int32(drivers-1), lost.Load())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStage_AppliesWhenStageUnchanged() {
	ctx := context.Background()
	o := suite.createOrder(kernel.NewUUID(), time.Now(), nil)
	suite.Require().NoError(o.AssignDriver(kernel.NewUUID(), time.Now()))
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(o.ChangeStage(order.PickedUp, time.Now()))
	suite.Require().NoError(suite.repository.UpdateStage(ctx, o, order.Confirmed))
	suite.Require().NoError(o.ChangeStage(order.Delivered, time.Now()))
	suite.Require().NoError(suite.repository.UpdateStage(ctx, o, order.PickedUp))

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Delivered, stored.Stage())
	suite.Require().NotNil(stored.DeliveredAt())
	suite.True(o.DeliveredAt().Equal(*stored.DeliveredAt()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStage_DetectsConcurrentChange() {
	ctx := context.Background()
	o := suite.createOrder(kernel.NewUUID(), time.Now(), nil)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	// a driver claims while ops is cancelling the copy they read
	suite.Require().NoError(suite.repository.Claim(ctx, o.ID(), kernel.NewUUID(), time.Now()))
	suite.Require().NoError(o.Cancel("duplicate", time.Now()))

	err := suite.repository.UpdateStage(ctx, o, order.Pending)

	suite.Require().ErrorIs(err, order.ErrStageChanged)
	suite.Require().ErrorIs(err, order.ErrInvalidTransition)
	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, stored.Stage())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestQueueIndexExists() {
	var columns []string
	suite.Require().NoError(suite.db.Raw(`
		SELECT a.attname
		FROM pg_index i
		JOIN pg_class c ON c.oid = i.indexrelid
		JOIN LATERAL unnest(i.indkey) WITH ORDINALITY AS k(attnum, ord) ON true
		JOIN pg_attribute a ON a.attrelid = i.indrelid AND a.attnum = k.attnum
		WHERE c.relname = 'idx_orders_queue'
		ORDER BY k.ord
	`).Scan(&columns).Error)

	suite.Equal([]string{"firm_id", "stage", "driver_id", "created_at"}, columns)
}

func (suite *OrderRepositoryIntegrationTestSuite) createOrder(firmID kernel.UUID, at time.Time, branchID *kernel.UUID) *order.Order {
	water, err := order.NewItem(kernel.NewUUID(), "Water 19L", 2, suite.money("15000"))
	suite.Require().NoError(err)
	cups, err := order.NewItem(kernel.NewUUID(), "Cup dispenser", 1, suite.money("15000"))
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), order.GenerateNumber(at), order.Placement{
		UserID:    kernel.NewUUID(),
		FirmID:    firmID,
		BranchID:  branchID,
		AddressID: kernel.NewUUID(),
	}, []order.Item{water, cups}, suite.money("45000"), order.Cash, "leave at the door", at)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) money(s string) kernel.Money {
	m, err := kernel.MoneyFromString(s)
	suite.Require().NoError(err)
	return m
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
