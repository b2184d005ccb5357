package notify

import (
	"context"
	"log/slog"

	"github.com/wishyoulucky/storefront/pkg/storefront"
)

// NoopSink logs order-received events without dispatching anything. Used in
// development and tests.
type NoopSink struct{}

// NewNoopSink creates a sink that drops all notifications
func NewNoopSink() *NoopSink {
	return &NoopSink{}
}

func (s *NoopSink) OrderReceived(ctx context.Context, event storefront.OrderReceivedEvent) error {
	slog.Info("Order received (notification disabled)",
		"order_id", event.OrderID,
		"order_number", event.OrderNumber,
		"to", event.To)
	return nil
}
