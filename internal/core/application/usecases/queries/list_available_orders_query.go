package queries

import (
	"errors"
	"strings"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

var ErrListAvailableOrdersQueryIsNotConstructed = errors.New(
	"ListAvailableOrdersQuery must be created via NewListAvailableOrdersQuery constructor",
)

// ListAvailableOrdersQuery is the driver feed. Without a status token it lists unassigned
// queued orders; with one it lists the stages the token stands for.
type ListAvailableOrdersQuery struct {
	statusToken string
	firmID      *kernel.UUID

	guard guard.ConstructorGuard
}

// NewListAvailableOrdersQuery accepts an optional status token and an optional firm.
func NewListAvailableOrdersQuery(statusToken string, firmID *kernel.UUID) (ListAvailableOrdersQuery, error) {
	if firmID != nil {
		if err := firmID.Validate(); err != nil {
			return ListAvailableOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("firmId", err)
		}
	}

	return ListAvailableOrdersQuery{
		statusToken: strings.TrimSpace(statusToken),
		firmID:      firmID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListAvailableOrdersQueryIsNotConstructed)
}

func (q ListAvailableOrdersQuery) StatusToken() string {
	return q.statusToken
}

func (q ListAvailableOrdersQuery) FirmID() *kernel.UUID {
	return q.firmID
}
