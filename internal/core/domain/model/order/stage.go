package order

import (
	"errors"
	"fmt"
	"strings"

	"waterdelivery/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel behind every rejected stage change.
var ErrInvalidTransition = errors.New("invalid stage transition")

// ErrStageChanged is returned by storage when the stage an update was based on is no
// longer current. It is an InvalidTransition for callers that only classify.
var ErrStageChanged = fmt.Errorf("order stage was changed concurrently: %w", ErrInvalidTransition)

// Stage is the position of an order in its fulfilment lifecycle. The string values are
// the ones stored in the database and exchanged with clients.
type Stage string

const (
	// Pending is the initial stage: the order waits in its firm's queue for a driver.
	Pending Stage = "PENDING"

	// InQueue is a legacy synonym of Pending still written by older clients.
	InQueue Stage = "IN_QUEUE"

	// Confirmed means a driver claimed the order.
	Confirmed Stage = "CONFIRMED"

	// PickedUp means the driver collected the water at the firm or branch.
	PickedUp Stage = "PICKED_UP"

	// Delivering means the driver is on the way to the client.
	Delivering Stage = "DELIVERING"

	// Delivered is terminal: the client received the order.
	Delivered Stage = "DELIVERED"

	// Cancelled is terminal and reachable from every non-terminal stage.
	Cancelled Stage = "CANCELLED"
)

// QueueSet returns the stages of orders awaiting a driver.
func QueueSet() []Stage {
	return []Stage{Pending, InQueue}
}

// AllStages returns every known stage in workflow order.
func AllStages() []Stage {
	return []Stage{Pending, InQueue, Confirmed, PickedUp, Delivering, Delivered, Cancelled}
}

// successors lists the stages reachable from each stage in one step.
//
//nolint:exhaustive // terminal stages have no successors
func successors(s Stage) []Stage {
	switch s {
	case Pending, InQueue:
		return []Stage{Confirmed, Cancelled}
	case Confirmed:
		return []Stage{PickedUp, Delivering, Cancelled}
	case PickedUp:
		return []Stage{Delivering, Delivered, Cancelled}
	case Delivering:
		return []Stage{Delivered, Cancelled}
	default:
		return nil
	}
}

// ParseStage converts client input to a Stage. Matching ignores case and surrounding
// blanks; unknown values are a validation error.
func ParseStage(raw string) (Stage, error) {
	s := Stage(strings.ToUpper(strings.TrimSpace(raw)))
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// Validate checks that s is one of the known stages.
func (s Stage) Validate() error {
	for _, known := range AllStages() {
		if s == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%q is not a known stage", string(s)))
}

func (s Stage) String() string {
	return string(s)
}

// IsQueued reports whether s belongs to the queue set.
func (s Stage) IsQueued() bool {
	return s == Pending || s == InQueue
}

// IsTerminal reports whether no transition leaves s.
func (s Stage) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// RequiresDriver reports whether an order in s must have a driver assigned.
func (s Stage) RequiresDriver() bool {
	return s == Confirmed || s == PickedUp || s == Delivering || s == Delivered
}

// CanTransitionTo reports whether target is a legal successor of s.
func (s Stage) CanTransitionTo(target Stage) bool {
	for _, next := range successors(s) {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo returns target if it is a legal successor of s and an
// *InvalidTransitionError otherwise.
//
// Example:
//
//	next, err := order.Pending.TransitionTo(order.Delivered)
//	// err: invalid stage transition: PENDING -> DELIVERED
func (s Stage) TransitionTo(target Stage) (Stage, error) {
	if err := target.Validate(); err != nil {
		return "", NewInvalidTransitionError(s, target, "unknown target stage")
	}
	if s.IsTerminal() {
		return "", NewInvalidTransitionError(s, target, "stage is terminal")
	}
	if !s.CanTransitionTo(target) {
		return "", NewInvalidTransitionError(s, target, "")
	}

	return target, nil
}

// ValidateCanHaveDriver checks the consistency between stage and driver assignment.
//
// Business rules:
//   - PENDING and IN_QUEUE orders must not have a driver
//   - CONFIRMED, PICKED_UP, DELIVERING and DELIVERED orders must have one
//   - CANCELLED orders may have either
func (s Stage) ValidateCanHaveDriver(hasDriver bool) error {
	if hasDriver && s.IsQueued() {
		return errs.NewValueIsInvalidErrorWithCause(
			"stage is invalid",
			fmt.Errorf("%s is not a valid stage to have a driver", s),
		)
	}

	if !hasDriver && s.RequiresDriver() {
		return errs.NewValueIsInvalidErrorWithCause(
			"stage is invalid",
			fmt.Errorf("%s is not a valid stage to have no driver", s),
		)
	}

	return nil
}

// InvalidTransitionError describes a rejected stage change.
type InvalidTransitionError struct {
	From   Stage
	To     Stage
	Reason string
}

// NewInvalidTransitionError builds the error for from -> to; reason may be empty.
func NewInvalidTransitionError(from, to Stage, reason string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Reason: reason}
}

func (e *InvalidTransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s -> %s (%s)", ErrInvalidTransition, e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
