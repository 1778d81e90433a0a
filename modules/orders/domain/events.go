package domain

import (
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/events"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/events/contracts"
)

func NewOrderPlacedEvent(order *Order) contracts.OrderPlacedEvent {
	return contracts.OrderPlacedEvent{
		BaseEvent:   events.NewBaseEvent(contracts.OrderPlacedEventType, order.ID().String()),
		OrderID:     order.ID().String(),
		UserID:      order.UserID().String(),
		TotalAmount: order.Total().Amount().String(),
		Currency:    order.Total().Currency(),
		LineCount:   len(order.Lines()),
	}
}

func NewOrderStatusChangedEvent(order *Order, oldStatus Status) contracts.OrderStatusChangedEvent {
	return contracts.OrderStatusChangedEvent{
		BaseEvent: events.NewBaseEvent(contracts.OrderStatusChangedEventType, order.ID().String()),
		OrderID:   order.ID().String(),
		OldStatus: oldStatus.String(),
		NewStatus: order.Status().String(),
	}
}
