package order

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"

	"waterdelivery/internal/pkg/errs"
)

// numberSuffixSpace is the number of distinct daily suffixes (0000-9999).
const numberSuffixSpace = 10000

var numberPattern = regexp.MustCompile(`^ORD-\d{8}-\d{4}$`)

// Number is the human-readable order number ORD-YYYYMMDD-NNNN.
//
// The suffix is random and not checked for uniqueness, so two orders placed on the same
// day may share a number. The order id stays the only identity.
type Number string

// GenerateNumber returns a number for an order placed at the given time (UTC date).
func GenerateNumber(at time.Time) Number {
	return numberWithSuffix(at, rand.IntN(numberSuffixSpace)) //nolint:gosec // display number, not a secret
}

// NumberFromString validates a stored number.
func NumberFromString(s string) (Number, error) {
	if !numberPattern.MatchString(s) {
		return "", errs.NewValueIsInvalidErrorWithCause("order number", fmt.Errorf("%q does not match ORD-YYYYMMDD-NNNN", s))
	}
	return Number(s), nil
}

func (n Number) String() string {
	return string(n)
}

func numberWithSuffix(at time.Time, suffix int) Number {
	return Number(fmt.Sprintf("ORD-%s-%04d", at.UTC().Format("20060102"), suffix))
}
