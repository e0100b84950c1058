package notify

import (
	"context"
	"log/slog"
)

// LogSender writes events to the log. Used when no Redis is configured.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger.With("component", "notification_log")}
}

func (s *LogSender) Send(ctx context.Context, event Event) error {
	s.logger.InfoContext(ctx, "Order notification",
		"type", event.Type,
		"user_id", event.UserID,
		"order_id", event.OrderID,
		"stage", event.Stage,
	)
	return nil
}
