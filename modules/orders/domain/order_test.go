package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

func usd(t *testing.T, amount string) types.Money {
	t.Helper()
	return types.MustNewMoneyFromString(amount, "USD")
}

func TestNewOrderComputesExactTotal(t *testing.T) {
	lines := []OrderLine{
		NewOrderLine(types.NewBookID(), 3, usd(t, "12.99")), // 38.97
		NewOrderLine(types.NewBookID(), 1, usd(t, "0.01")),  // 0.01
		NewOrderLine(types.NewBookID(), 2, usd(t, "12.995")), // 25.99
	}

	order, err := NewOrder(types.NewUserID(), "221B Baker Street", lines)
	if err != nil {
		t.Fatalf("NewOrder: %v", err)
	}

	if !order.Total().Equals(usd(t, "64.97")) {
		t.Errorf("total = %s, want 64.97", order.Total().Amount().String())
	}
	if order.Status() != StatusPending {
		t.Errorf("status = %s, want PENDING", order.Status())
	}
	if len(order.Lines()) != 3 {
		t.Errorf("len(lines) = %d, want 3", len(order.Lines()))
	}
}

func TestNewOrderEmitsPlacedEvent(t *testing.T) {
	order, err := NewOrder(types.NewUserID(), "addr", []OrderLine{
		NewOrderLine(types.NewBookID(), 1, usd(t, "5.00")),
	})
	if err != nil {
		t.Fatalf("NewOrder: %v", err)
	}

	events := order.PopDomainEvents()
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	if events[0].AggregateID() != order.ID().String() {
		t.Errorf("aggregate id = %s, want %s", events[0].AggregateID(), order.ID().String())
	}
}

func TestNewOrderValidation(t *testing.T) {
	line := NewOrderLine(types.NewBookID(), 1, usd(t, "5.00"))

	if _, err := NewOrder(types.NewUserID(), "   ", []OrderLine{line}); !errors.Is(err, ErrBlankShippingAddress) {
		t.Errorf("blank address: err = %v, want ErrBlankShippingAddress", err)
	}
	if _, err := NewOrder(types.NewUserID(), strings.Repeat("x", MaxShippingAddressLength+1), []OrderLine{line}); !errors.Is(err, ErrShippingAddressTooLong) {
		t.Errorf("long address: err = %v, want ErrShippingAddressTooLong", err)
	}
	if _, err := NewOrder(types.NewUserID(), "addr", nil); !errors.Is(err, ErrOrderEmpty) {
		t.Errorf("no lines: err = %v, want ErrOrderEmpty", err)
	}
}

func TestSetStatusAnyToAny(t *testing.T) {
	order, err := NewOrder(types.NewUserID(), "addr", []OrderLine{
		NewOrderLine(types.NewBookID(), 1, usd(t, "5.00")),
	})
	if err != nil {
		t.Fatalf("NewOrder: %v", err)
	}
	order.ClearDomainEvents()

	// Statuses form no state machine: every member may follow any other.
	transitions := []Status{StatusCompleted, StatusDelivered, StatusPending, StatusDelivered}
	for _, status := range transitions {
		if err := order.SetStatus(status); err != nil {
			t.Fatalf("SetStatus(%s): %v", status, err)
		}
		if order.Status() != status {
			t.Errorf("status = %s, want %s", order.Status(), status)
		}
	}

	if got := len(order.PopDomainEvents()); got != len(transitions) {
		t.Errorf("len(events) = %d, want %d", got, len(transitions))
	}
}

func TestSetStatusRejectsUnknownValue(t *testing.T) {
	order, err := NewOrder(types.NewUserID(), "addr", []OrderLine{
		NewOrderLine(types.NewBookID(), 1, usd(t, "5.00")),
	})
	if err != nil {
		t.Fatalf("NewOrder: %v", err)
	}

	if err := order.SetStatus(Status("SHIPPED")); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("err = %v, want ErrInvalidStatus", err)
	}
	if order.Status() != StatusPending {
		t.Errorf("status = %s, want PENDING after rejected update", order.Status())
	}
}

func TestOrderLineLookup(t *testing.T) {
	line := NewOrderLine(types.NewBookID(), 2, usd(t, "10.00"))
	order, err := NewOrder(types.NewUserID(), "addr", []OrderLine{line})
	if err != nil {
		t.Fatalf("NewOrder: %v", err)
	}

	got, err := order.Line(line.ID())
	if err != nil {
		t.Fatalf("Line: %v", err)
	}
	if !got.Subtotal().Equals(usd(t, "20.00")) {
		t.Errorf("subtotal = %s, want 20.00", got.Subtotal().Amount().String())
	}

	if _, err := order.Line(NewLineID()); !errors.Is(err, ErrLineNotFound) {
		t.Errorf("err = %v, want ErrLineNotFound", err)
	}
}
