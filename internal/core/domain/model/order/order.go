package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrAlreadyClaimed is returned when a driver tries to take an order that already has
	// a driver, was cancelled, or no longer exists. Callers should re-fetch available orders.
	ErrAlreadyClaimed = errors.New("order is already claimed")
)

// maxNotesLength bounds the free-text client notes.
const maxNotesLength = 1000

// Placement groups who ordered, from which firm and where to deliver.
type Placement struct {
	UserID    kernel.UUID
	FirmID    kernel.UUID
	BranchID  *kernel.UUID
	AddressID kernel.UUID
}

// State is the complete persisted state of an order, used to restore the aggregate
// from storage.
type State struct {
	ID            kernel.UUID
	Number        Number
	Placement     Placement
	DriverID      *kernel.UUID
	Stage         Stage
	PaymentMethod PaymentMethod
	Total         kernel.Money
	Notes         string
	Items         []Item
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeliveredAt   *time.Time
	CancelledAt   *time.Time
	CancelReason  string
}

// Order is the aggregate root of an order's lifecycle.
//
// Order follows these invariants:
//   - identity, firm, user and address references are valid UUIDs
//   - at least one item, and a positive total
//   - the driver is set exactly while the stage requires one (CANCELLED may keep it)
//   - the stage only moves along the edges of the stage machine
//
// Storage applies the same rules with conditional updates; the aggregate is the single
// place that decides whether a change is legal.
type Order struct {
	id            kernel.UUID
	number        Number
	placement     Placement
	driverID      *kernel.UUID
	stage         Stage
	paymentMethod PaymentMethod
	total         kernel.Money
	notes         string
	items         []Item
	createdAt     time.Time
	updatedAt     time.Time
	deliveredAt   *time.Time
	cancelledAt   *time.Time
	cancelReason  string

	guard guard.ConstructorGuard
}

// NewOrder places a new order in the PENDING stage without a driver.
//
// Example:
//
//	o, err := order.NewOrder(
//	    kernel.NewUUID(),
//	    order.GenerateNumber(now),
//	    order.Placement{UserID: userID, FirmID: firmID, AddressID: addressID},
//	    items, total, order.Cash, "call on arrival", now,
//	)
//
// All validation failures are returned joined.
func NewOrder(
	id kernel.UUID,
	number Number,
	placement Placement,
	items []Item,
	total kernel.Money,
	paymentMethod PaymentMethod,
	notes string,
	createdAt time.Time,
) (*Order, error) {
	createdAt = normalizeTime(createdAt)
	o := &Order{
		stage:     Pending,
		createdAt: createdAt,
		updatedAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setPlacement(placement),
		o.setItems(items),
		o.setTotal(total),
		o.setPaymentMethod(paymentMethod),
		o.setNotes(notes),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order read from storage and re-checks its invariants.
func RestoreOrder(s State) (*Order, error) {
	o := &Order{
		stage:        s.Stage,
		createdAt:    normalizeTime(s.CreatedAt),
		updatedAt:    normalizeTime(s.UpdatedAt),
		deliveredAt:  normalizeTimePtr(s.DeliveredAt),
		cancelledAt:  normalizeTimePtr(s.CancelledAt),
		cancelReason: s.CancelReason,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setNumber(s.Number),
		o.setPlacement(s.Placement),
		o.setItems(s.Items),
		o.setTotal(s.Total),
		o.setPaymentMethod(s.PaymentMethod),
		o.setNotes(s.Notes),
		s.Stage.Validate(),
		o.setDriver(s.Stage, s.DriverID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identity.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() Number {
	return o.number
}

// UserID returns the client who placed the order.
func (o *Order) UserID() kernel.UUID {
	return o.placement.UserID
}

// FirmID returns the vendor whose queue the order belongs to.
func (o *Order) FirmID() kernel.UUID {
	return o.placement.FirmID
}

// BranchID returns the firm branch, or nil when the firm has none.
func (o *Order) BranchID() *kernel.UUID {
	return o.placement.BranchID
}

// AddressID returns the delivery address.
func (o *Order) AddressID() kernel.UUID {
	return o.placement.AddressID
}

// Driver returns the assigned driver, or nil.
func (o *Order) Driver() *kernel.UUID {
	return o.driverID
}

// Stage returns the current lifecycle stage.
func (o *Order) Stage() Stage {
	return o.stage
}

// PaymentMethod returns how the order is paid.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// Total returns the amount the client pays.
func (o *Order) Total() kernel.Money {
	return o.total
}

// Notes returns the client's free-text notes.
func (o *Order) Notes() string {
	return o.notes
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// CreatedAt is the FIFO key of the firm's queue.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the time of the last change.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// DeliveredAt is set when the order reaches DELIVERED.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// CancelledAt is set when the order reaches CANCELLED.
func (o *Order) CancelledAt() *time.Time {
	return o.cancelledAt
}

// CancelReason returns the optional reason recorded on cancellation.
func (o *Order) CancelReason() string {
	return o.cancelReason
}

// AssignDriver moves a queued order to CONFIRMED with the given driver.
//
// Storage performs the same change as a single conditional update; this method is the
// in-memory form of the rule.
//
// Returns ErrAlreadyClaimed if the order already has a driver or left the queue.
func (o *Order) AssignDriver(driverID kernel.UUID, at time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if o.driverID != nil || !o.stage.IsQueued() {
		return ErrAlreadyClaimed
	}

	next, err := o.stage.TransitionTo(Confirmed)
	if err != nil {
		return err
	}

	o.stage = next
	o.driverID = &driverID
	o.updatedAt = normalizeTime(at)
	return nil
}

// ChangeStage applies a stage transition requested by the driver, the firm or ops.
//
// Business rules:
//   - target must be a legal successor of the current stage
//   - stages that require a driver cannot be entered without one, so CONFIRMED is only
//     reachable through AssignDriver
//   - CANCELLED delegates to Cancel without a reason
//   - DELIVERED records DeliveredAt
//
// Returns an *InvalidTransitionError otherwise.
func (o *Order) ChangeStage(target Stage, at time.Time) error {
	if target == Cancelled {
		return o.Cancel("", at)
	}

	next, err := o.stage.TransitionTo(target)
	if err != nil {
		return err
	}
	if next.RequiresDriver() && o.driverID == nil {
		return NewInvalidTransitionError(o.stage, next, "no driver assigned")
	}

	at = normalizeTime(at)
	o.stage = next
	o.updatedAt = at
	if next == Delivered {
		o.deliveredAt = &at
	}
	return nil
}

// Cancel moves a non-terminal order to CANCELLED and records when and why.
// The driver, if any, stays on the order for history.
func (o *Order) Cancel(reason string, at time.Time) error {
	next, err := o.stage.TransitionTo(Cancelled)
	if err != nil {
		return err
	}

	at = normalizeTime(at)
	o.stage = next
	o.updatedAt = at
	o.cancelledAt = &at
	o.cancelReason = strings.TrimSpace(reason)
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number Number) error {
	if _, err := NumberFromString(string(number)); err != nil {
		return err
	}
	o.number = number
	return nil
}

func (o *Order) setPlacement(p Placement) error {
	var branchErr error
	if p.BranchID != nil {
		branchErr = wrapRequired("branchId", p.BranchID.Validate())
	}

	if err := errors.Join(
		wrapRequired("userId", p.UserID.Validate()),
		wrapRequired("firmId", p.FirmID.Validate()),
		wrapRequired("addressId", p.AddressID.Validate()),
		branchErr,
	); err != nil {
		return err
	}

	o.placement = p
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setTotal(total kernel.Money) error {
	if err := total.Validate(); err != nil {
		return err
	}
	if total.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause("total", errors.New("total must be greater than 0"))
	}
	o.total = total
	return nil
}

func (o *Order) setPaymentMethod(m PaymentMethod) error {
	if m != Cash && m != Card {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%q is not CASH or CARD", string(m)))
	}
	o.paymentMethod = m
	return nil
}

func (o *Order) setNotes(notes string) error {
	if len(notes) > maxNotesLength {
		return errs.NewValueIsOutOfRangeError("notes length", len(notes), 0, maxNotesLength)
	}
	o.notes = notes
	return nil
}

func (o *Order) setDriver(stage Stage, driverID *kernel.UUID) error {
	if err := stage.ValidateCanHaveDriver(driverID != nil); err != nil {
		return err
	}
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return err
		}
	}
	o.driverID = driverID
	return nil
}

func wrapRequired(param string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsRequiredErrorWithCause(param, err)
}

// normalizeTime keeps timestamps in UTC at microsecond precision, the resolution of
// postgres timestamptz, so FIFO comparisons agree between memory and storage.
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func normalizeTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	n := normalizeTime(*t)
	return &n
}
