package kernel

import (
	"fmt"

	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of fractional digits kept for amounts (numeric(14,2) in storage).
const moneyScale = 2

// MoneyMax is the largest amount numeric(14,2) holds.
var MoneyMax = decimal.RequireFromString("999999999999.99")

// ErrMoneyIsNotConstructed is returned when a zero-value Money is used.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney or MoneyFromString")

// Money is a non-negative amount in the firm's currency, rounded to two decimals.
// Totals and item prices are snapshotted as Money when an order is created.
type Money struct { //nolint:recvcheck //using for validation
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewMoney validates and rounds amount.
func NewMoney(amount decimal.Decimal) (Money, error) {
	m := Money{guard: guard.NewConstructorGuard()}
	if err := m.setAmount(amount); err != nil {
		return Money{}, err
	}
	return m, nil
}

// MoneyFromString parses a decimal string such as "45000" or "12.50".
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(amount)
}

// Validate returns ErrMoneyIsNotConstructed for the zero value.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Decimal returns the amount for arithmetic and persistence.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// IsZero reports whether the amount is 0.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Mul multiplies the amount by an integer quantity.
func (m Money) Mul(quantity int) Money {
	return Money{
		amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))),
		guard:  m.guard,
	}
}

// Add sums two amounts.
func (m Money) Add(other Money) Money {
	return Money{
		amount: m.amount.Add(other.amount),
		guard:  guard.NewConstructorGuard(),
	}
}

// IsEqual compares amounts numerically, so 45000 equals 45000.00.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount with two fractional digits.
func (m Money) String() string {
	return m.amount.StringFixed(moneyScale)
}

func (m *Money) setAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsOutOfRangeErrorWithCause(
			"amount", amount.String(), "0", "unbounded",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	rounded := amount.Round(moneyScale)
	if rounded.GreaterThan(MoneyMax) {
		return errs.NewValueIsOutOfRangeError("amount", rounded.String(), "0", MoneyMax.String())
	}
	m.amount = rounded
	return nil
}
