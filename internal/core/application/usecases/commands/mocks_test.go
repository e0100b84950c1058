package commands_test

import (
	"context"
	"testing"
	"time"

	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/domain/model/driver"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Claim(ctx context.Context, orderID, driverID kernel.UUID, at time.Time) error {
	args := m.Called(ctx, orderID, driverID, at)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStage(ctx context.Context, o *order.Order, expected order.Stage) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetByUserID(ctx context.Context, userID kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

// MockUoW satisfies every unit of work flavour in the package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockDriverUoWFactory struct{ mock.Mock }

func (m *MockDriverUoWFactory) Create() commands.DriverUoW {
	args := m.Called()
	return args.Get(0).(commands.DriverUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NotifyStageChange(ctx context.Context, userID kernel.UUID, stage order.Stage, orderID kernel.UUID) {
	m.Called(ctx, userID, stage, orderID)
}

func (m *MockNotifier) NotifyDriverAssigned(ctx context.Context, userID, orderID kernel.UUID) {
	m.Called(ctx, userID, orderID)
}

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) Snapshot(ctx context.Context, productIDs []kernel.UUID) ([]ports.ProductSnapshot, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.ProductSnapshot), args.Error(1)
}

type MockAddressStore struct{ mock.Mock }

func (m *MockAddressStore) Exists(ctx context.Context, addressID, userID kernel.UUID) (bool, error) {
	args := m.Called(ctx, addressID, userID)
	return args.Bool(0), args.Error(1)
}

func testMoney(t *testing.T, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(amount)
	require.NoError(t, err)
	return m
}

// newPendingOrder builds a stored-looking order in PENDING.
func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), "Water 19L", 2, testMoney(t, "15000"))
	require.NoError(t, err)

	now := time.Now()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		order.GenerateNumber(now),
		order.Placement{UserID: kernel.NewUUID(), FirmID: kernel.NewUUID(), AddressID: kernel.NewUUID()},
		[]order.Item{item},
		testMoney(t, "30000"),
		order.Cash,
		"",
		now,
	)
	require.NoError(t, err)
	return o
}

// newConfirmedOrder builds an order already claimed by driverID.
func newConfirmedOrder(t *testing.T, driverID kernel.UUID) *order.Order {
	t.Helper()
	o := newPendingOrder(t)
	require.NoError(t, o.AssignDriver(driverID, time.Now()))
	return o
}

func newTestDriver(t *testing.T, userID *kernel.UUID) *driver.Driver {
	t.Helper()
	vehicle, err := driver.NewVehicle("Isuzu NQR", "01 A 123 BC")
	require.NoError(t, err)
	d, err := driver.NewDriver(kernel.NewUUID(), userID, vehicle)
	require.NoError(t, err)
	return d
}
