package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"

	"golang.org/x/sync/semaphore"
)

const (
	DefaultMaxInFlight = 64
	DefaultTimeout     = 5 * time.Second
)

// Async is a fire-and-forget ports.Notifier over a Sender.
//
// Example:
//
//	notifier := notify.NewAsync(notify.NewRedisPublisher(client, "order-events"), 64, 5*time.Second, logger)
//	defer notifier.Wait(shutdownCtx)
type Async struct {
	sender  Sender
	sem     *semaphore.Weighted
	timeout time.Duration
	logger  *slog.Logger
	wg      sync.WaitGroup
}

// NewAsync bounds in-flight sends by maxInFlight and each send by timeout. Non-positive
// values fall back to DefaultMaxInFlight and DefaultTimeout.
func NewAsync(sender Sender, maxInFlight int64, timeout time.Duration, logger *slog.Logger) *Async {
	if maxInFlight <= 0 {
		maxInFlight = DefaultMaxInFlight
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Async{
		sender:  sender,
		sem:     semaphore.NewWeighted(maxInFlight),
		timeout: timeout,
		logger:  logger.With("component", "notifier"),
	}
}

func (a *Async) NotifyStageChange(ctx context.Context, userID kernel.UUID, stage order.Stage, orderID kernel.UUID) {
	a.dispatch(ctx, Event{
		Type:    EventStageChanged,
		UserID:  userID.String(),
		OrderID: orderID.String(),
		Stage:   stage.String(),
		At:      time.Now().UTC(),
	})
}

func (a *Async) NotifyDriverAssigned(ctx context.Context, userID, orderID kernel.UUID) {
	a.dispatch(ctx, Event{
		Type:    EventDriverAssigned,
		UserID:  userID.String(),
		OrderID: orderID.String(),
		At:      time.Now().UTC(),
	})
}

// Wait blocks until all in-flight notifications finished or ctx is done.
func (a *Async) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *Async) dispatch(ctx context.Context, event Event) {
	if !a.sem.TryAcquire(1) {
		a.logger.WarnContext(ctx, "Notification dropped, too many in flight",
			"type", event.Type, "order_id", event.OrderID)
		return
	}

	// the request context is cancelled as soon as the response is written
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer a.sem.Release(1)
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				a.logger.ErrorContext(sendCtx, "Notification sender panicked",
					"type", event.Type, "order_id", event.OrderID, "panic", r)
			}
		}()

		if err := a.sender.Send(sendCtx, event); err != nil {
			a.logger.ErrorContext(sendCtx, "Notification failed",
				"type", event.Type, "order_id", event.OrderID, "error", err)
		}
	}()
}
