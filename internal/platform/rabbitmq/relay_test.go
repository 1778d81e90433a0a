package rabbitmq

import (
	"testing"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/events"
)

func TestRoutingKey(t *testing.T) {
	tests := []struct {
		eventType string
		want      string
	}{
		{"orders.OrderPlaced", "orders.order_placed"},
		{"orders.OrderStatusChanged", "orders.order_status_changed"},
		{"catalog.BookCreated", "catalog.book_created"},
		// No module prefix: lowered as-is.
		{"Heartbeat", "heartbeat"},
	}
	for _, tt := range tests {
		if got := RoutingKey(events.EventType(tt.eventType)); got != tt.want {
			t.Errorf("RoutingKey(%q) = %q, want %q", tt.eventType, got, tt.want)
		}
	}
}
