package order_test

import (
	"strings"
	"testing"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.March, 7, 10, 0, 0, 0, time.UTC)

func testMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func testItems(t *testing.T) []order.Item {
	t.Helper()
	bottle, err := order.NewItem(kernel.NewUUID(), "Water 19L", 2, testMoney(t, "15000"))
	require.NoError(t, err)
	pump, err := order.NewItem(kernel.NewUUID(), "Hand pump", 1, testMoney(t, "15000"))
	require.NoError(t, err)
	return []order.Item{bottle, pump}
}

func testPlacement() order.Placement {
	return order.Placement{
		UserID:    kernel.NewUUID(),
		FirmID:    kernel.NewUUID(),
		AddressID: kernel.NewUUID(),
	}
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		order.GenerateNumber(testNow),
		testPlacement(),
		testItems(t),
		testMoney(t, "45000"),
		order.Cash,
		"",
		testNow,
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create pending order without driver", func(t *testing.T) {
		id := kernel.NewUUID()
		placement := testPlacement()
		branch := kernel.NewUUID()
		placement.BranchID = &branch

		o, err := order.NewOrder(id, "ORD-20240307-0042", placement, testItems(t),
			testMoney(t, "45000"), order.Card, "ring twice", testNow)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, order.Number("ORD-20240307-0042"), o.Number())
		assert.Equal(t, order.Pending, o.Stage())
		assert.Nil(t, o.Driver())
		assert.True(t, o.FirmID().IsEqual(placement.FirmID))
		assert.True(t, o.UserID().IsEqual(placement.UserID))
		assert.True(t, o.AddressID().IsEqual(placement.AddressID))
		require.NotNil(t, o.BranchID())
		assert.True(t, o.BranchID().IsEqual(branch))
		assert.Equal(t, order.Card, o.PaymentMethod())
		assert.Equal(t, "45000.00", o.Total().String())
		assert.Equal(t, "ring twice", o.Notes())
		assert.Len(t, o.Items(), 2)
		assert.Equal(t, testNow, o.CreatedAt())
		assert.Equal(t, testNow, o.UpdatedAt())
		assert.Nil(t, o.DeliveredAt())
		assert.Nil(t, o.CancelledAt())
	})

	t.Run("should fail with empty item list", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), order.GenerateNumber(testNow), testPlacement(),
			nil, testMoney(t, "45000"), order.Cash, "", testNow)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "items")
	})

	t.Run("should fail with zero total", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), order.GenerateNumber(testNow), testPlacement(),
			testItems(t), testMoney(t, "0"), order.Cash, "", testNow)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "total")
	})

	t.Run("should report every invalid reference at once", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, order.GenerateNumber(testNow), order.Placement{},
			testItems(t), testMoney(t, "1"), order.Cash, "", testNow)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "userId")
		assert.Contains(t, err.Error(), "firmId")
		assert.Contains(t, err.Error(), "addressId")
	})

	t.Run("should fail with unknown payment method", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), order.GenerateNumber(testNow), testPlacement(),
			testItems(t), testMoney(t, "1"), order.PaymentMethod("CRYPTO"), "", testNow)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail with oversized notes", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), order.GenerateNumber(testNow), testPlacement(),
			testItems(t), testMoney(t, "1"), order.Cash, strings.Repeat("x", 1001), testNow)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should normalize creation time to UTC microseconds", func(t *testing.T) {
		local := time.Date(2024, time.March, 7, 15, 0, 0, 123456789, time.FixedZone("UZT", 5*60*60))

		o, err := order.NewOrder(kernel.NewUUID(), order.GenerateNumber(local), testPlacement(),
			testItems(t), testMoney(t, "1"), order.Cash, "", local)

		require.NoError(t, err)
		assert.Equal(t, time.UTC, o.CreatedAt().Location())
		assert.Equal(t, 123456000, o.CreatedAt().Nanosecond())
	})
}

func TestOrder_Validate(t *testing.T) {
	var nilOrder *order.Order
	require.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)

	var zero order.Order
	require.ErrorIs(t, zero.Validate(), order.ErrOrderIsNotConstructed)

	require.NoError(t, newTestOrder(t).Validate())
}

func TestOrder_Items_ReturnsCopy(t *testing.T) {
	o := newTestOrder(t)

	items := o.Items()
	items[0] = order.Item{}

	assert.Equal(t, "Water 19L", o.Items()[0].Name())
}

func TestOrder_AssignDriver(t *testing.T) {
	t.Run("should confirm queued order", func(t *testing.T) {
		o := newTestOrder(t)
		driverID := kernel.NewUUID()
		at := testNow.Add(time.Minute)

		err := o.AssignDriver(driverID, at)

		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, o.Stage())
		require.NotNil(t, o.Driver())
		assert.True(t, o.Driver().IsEqual(driverID))
		assert.Equal(t, at, o.UpdatedAt())
	})

	t.Run("should refuse second driver", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AssignDriver(kernel.NewUUID(), testNow))

		err := o.AssignDriver(kernel.NewUUID(), testNow)

		require.ErrorIs(t, err, order.ErrAlreadyClaimed)
	})

	t.Run("should refuse cancelled order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Cancel("changed my mind", testNow))

		err := o.AssignDriver(kernel.NewUUID(), testNow)

		require.ErrorIs(t, err, order.ErrAlreadyClaimed)
	})

	t.Run("should refuse invalid driver id", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.AssignDriver(kernel.UUID{}, testNow)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.Equal(t, order.Pending, o.Stage())
	})
}

func TestOrder_ChangeStage(t *testing.T) {
	t.Run("should walk the happy path", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AssignDriver(kernel.NewUUID(), testNow))

		require.NoError(t, o.ChangeStage(order.PickedUp, testNow.Add(time.Minute)))
		require.NoError(t, o.ChangeStage(order.Delivering, testNow.Add(2*time.Minute)))
		deliveredAt := testNow.Add(30 * time.Minute)
		require.NoError(t, o.ChangeStage(order.Delivered, deliveredAt))

		assert.Equal(t, order.Delivered, o.Stage())
		require.NotNil(t, o.DeliveredAt())
		assert.Equal(t, deliveredAt, *o.DeliveredAt())
		assert.Equal(t, deliveredAt, o.UpdatedAt())
	})

	t.Run("should reject DELIVERED from PENDING", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.ChangeStage(order.Delivered, testNow)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Pending, o.Stage())
		assert.Nil(t, o.DeliveredAt())
	})

	t.Run("should reject CONFIRMED without driver", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.ChangeStage(order.Confirmed, testNow)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Contains(t, err.Error(), "no driver assigned")
		assert.Equal(t, order.Pending, o.Stage())
	})

	t.Run("should route CANCELLED through Cancel", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.ChangeStage(order.Cancelled, testNow))

		assert.Equal(t, order.Cancelled, o.Stage())
		assert.NotNil(t, o.CancelledAt())
		assert.Empty(t, o.CancelReason())
	})
}

func TestOrder_Cancel(t *testing.T) {
	prepare := map[string]func(t *testing.T, o *order.Order){
		"PENDING": func(*testing.T, *order.Order) {},
		"CONFIRMED": func(t *testing.T, o *order.Order) {
			require.NoError(t, o.AssignDriver(kernel.NewUUID(), testNow))
		},
		"DELIVERING": func(t *testing.T, o *order.Order) {
			require.NoError(t, o.AssignDriver(kernel.NewUUID(), testNow))
			require.NoError(t, o.ChangeStage(order.Delivering, testNow))
		},
	}

	for name, setup := range prepare {
		t.Run("should cancel from "+name, func(t *testing.T) {
			o := newTestOrder(t)
			setup(t, o)
			driverBefore := o.Driver()
			at := testNow.Add(time.Hour)

			err := o.Cancel("  client unreachable ", at)

			require.NoError(t, err)
			assert.Equal(t, order.Cancelled, o.Stage())
			require.NotNil(t, o.CancelledAt())
			assert.Equal(t, at, *o.CancelledAt())
			assert.Equal(t, "client unreachable", o.CancelReason())
			assert.Equal(t, driverBefore, o.Driver())
		})
	}

	t.Run("should fail from DELIVERED", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AssignDriver(kernel.NewUUID(), testNow))
		require.NoError(t, o.ChangeStage(order.PickedUp, testNow))
		require.NoError(t, o.ChangeStage(order.Delivered, testNow))

		err := o.Cancel("", testNow)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Nil(t, o.CancelledAt())
	})

	t.Run("should fail when already cancelled", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Cancel("first", testNow))

		err := o.Cancel("second", testNow.Add(time.Minute))

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, "first", o.CancelReason())
	})
}

func TestRestoreOrder(t *testing.T) {
	base := func(t *testing.T) order.State {
		return order.State{
			ID:            kernel.NewUUID(),
			Number:        "ORD-20240307-0001",
			Placement:     testPlacement(),
			Stage:         order.Pending,
			PaymentMethod: order.Cash,
			Total:         testMoney(t, "45000"),
			Items:         testItems(t),
			CreatedAt:     testNow,
			UpdatedAt:     testNow,
		}
	}

	t.Run("should restore confirmed order with driver", func(t *testing.T) {
		s := base(t)
		driverID := kernel.NewUUID()
		s.Stage = order.Confirmed
		s.DriverID = &driverID

		o, err := order.RestoreOrder(s)

		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, o.Stage())
		assert.True(t, o.Driver().IsEqual(driverID))
	})

	t.Run("should reject driver on queued order", func(t *testing.T) {
		s := base(t)
		driverID := kernel.NewUUID()
		s.DriverID = &driverID

		_, err := order.RestoreOrder(s)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "PENDING is not a valid stage to have a driver")
	})

	t.Run("should reject delivered order without driver", func(t *testing.T) {
		s := base(t)
		s.Stage = order.Delivered

		_, err := order.RestoreOrder(s)

		require.Error(t, err)
	})

	t.Run("should reject unknown stage", func(t *testing.T) {
		s := base(t)
		s.Stage = "LOST"

		_, err := order.RestoreOrder(s)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewItem(t *testing.T) {
	t.Run("should compute subtotal", func(t *testing.T) {
		item, err := order.NewItem(kernel.NewUUID(), " Water 19L ", 3, testMoney(t, "12500.50"))

		require.NoError(t, err)
		assert.Equal(t, "Water 19L", item.Name())
		assert.Equal(t, 3, item.Quantity())
		assert.Equal(t, "37501.50", item.Subtotal().String())
	})

	t.Run("should reject non-positive quantity and blank name", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), " ", 0, testMoney(t, "1"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "quantity")
		assert.Contains(t, err.Error(), "product name")
	})
}

func TestQueuePosition(t *testing.T) {
	first := order.NewQueuePosition(0)
	assert.Equal(t, 1, first.Position())
	assert.Equal(t, 0, first.Ahead())
	assert.True(t, first.IsQueued())

	third := order.NewQueuePosition(2)
	assert.Equal(t, 3, third.Position())

	none := order.NotQueued()
	assert.Equal(t, 0, none.Position())
	assert.Equal(t, 0, none.Ahead())
	assert.False(t, none.IsQueued())
}

func TestParsePaymentMethod(t *testing.T) {
	m, err := order.ParsePaymentMethod("")
	require.NoError(t, err)
	assert.Equal(t, order.Cash, m)

	m, err = order.ParsePaymentMethod("card")
	require.NoError(t, err)
	assert.Equal(t, order.Card, m)

	_, err = order.ParsePaymentMethod("barter")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
