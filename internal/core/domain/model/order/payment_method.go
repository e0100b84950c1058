package order

import (
	"fmt"
	"strings"

	"waterdelivery/internal/pkg/errs"
)

// PaymentMethod is how the client pays the driver or the firm.
type PaymentMethod string

const (
	// Cash is the default when the client does not choose.
	Cash PaymentMethod = "CASH"
	// Card covers online card payments; checkout itself happens elsewhere.
	Card PaymentMethod = "CARD"
)

// ParsePaymentMethod maps client input to a PaymentMethod; an empty value means Cash.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	switch PaymentMethod(strings.ToUpper(strings.TrimSpace(raw))) {
	case "", Cash:
		return Cash, nil
	case Card:
		return Card, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%q is not CASH or CARD", raw))
	}
}

func (m PaymentMethod) String() string {
	return string(m)
}
