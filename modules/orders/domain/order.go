// Package domain contains business entities and rules for orders.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	shareddomain "github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// MaxShippingAddressLength bounds the free-form address field.
const MaxShippingAddressLength = 255

// LineID identifies a single order line.
type LineID struct {
	value string
}

func NewLineID() LineID {
	return LineID{value: uuid.NewString()}
}

func ParseLineID(s string) (LineID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return LineID{}, types.ErrInvalidID
	}
	return LineID{value: id.String()}, nil
}

func (id LineID) String() string { return id.value }
func (id LineID) IsZero() bool   { return id.value == "" }

// OrderLine is a priced snapshot of one cart line at placement time.
// The unit price is frozen here; later catalog changes do not affect it.
type OrderLine struct {
	id        LineID
	bookID    types.BookID
	quantity  int
	unitPrice types.Money
}

// NewOrderLine creates a line for a new order.
func NewOrderLine(bookID types.BookID, quantity int, unitPrice types.Money) OrderLine {
	return OrderLine{
		id:        NewLineID(),
		bookID:    bookID,
		quantity:  quantity,
		unitPrice: unitPrice,
	}
}

// ReconstituteOrderLine restores a line from persistence.
func ReconstituteOrderLine(id LineID, bookID types.BookID, quantity int, unitPrice types.Money) OrderLine {
	return OrderLine{id: id, bookID: bookID, quantity: quantity, unitPrice: unitPrice}
}

func (l OrderLine) ID() LineID             { return l.id }
func (l OrderLine) BookID() types.BookID   { return l.bookID }
func (l OrderLine) Quantity() int          { return l.quantity }
func (l OrderLine) UnitPrice() types.Money { return l.unitPrice }

func (l OrderLine) Subtotal() types.Money {
	return l.unitPrice.Multiply(int64(l.quantity))
}

// Order is the aggregate root for the order bounded context.
// After placement only the status may change.
type Order struct {
	shareddomain.AggregateRoot

	id              types.OrderID
	userID          types.UserID
	lines           []OrderLine
	status          Status
	shippingAddress string
	total           types.Money
	createdAt       time.Time
	updatedAt       time.Time
}

// NewOrder places an order from priced lines. The total is the exact
// decimal sum of the line subtotals.
func NewOrder(userID types.UserID, shippingAddress string, lines []OrderLine) (*Order, error) {
	if strings.TrimSpace(shippingAddress) == "" {
		return nil, ErrBlankShippingAddress
	}
	if len(shippingAddress) > MaxShippingAddressLength {
		return nil, ErrShippingAddressTooLong
	}
	if len(lines) == 0 {
		return nil, ErrOrderEmpty
	}

	total, err := sumLines(lines)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &Order{
		id:              types.NewOrderID(),
		userID:          userID,
		lines:           lines,
		status:          StatusPending,
		shippingAddress: shippingAddress,
		total:           total,
		createdAt:       now,
		updatedAt:       now,
	}
	order.AddDomainEvent(NewOrderPlacedEvent(order))
	return order, nil
}

// Reconstitute rebuilds an order from persistence.
func Reconstitute(
	id types.OrderID,
	userID types.UserID,
	lines []OrderLine,
	status Status,
	shippingAddress string,
	total types.Money,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:              id,
		userID:          userID,
		lines:           lines,
		status:          status,
		shippingAddress: shippingAddress,
		total:           total,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// Getters

func (o *Order) ID() types.OrderID       { return o.id }
func (o *Order) UserID() types.UserID    { return o.userID }
func (o *Order) Status() Status          { return o.status }
func (o *Order) ShippingAddress() string { return o.shippingAddress }
func (o *Order) Total() types.Money      { return o.total }
func (o *Order) CreatedAt() time.Time    { return o.createdAt }
func (o *Order) UpdatedAt() time.Time    { return o.updatedAt }

// Lines returns a copy of the order's lines.
func (o *Order) Lines() []OrderLine {
	lines := make([]OrderLine, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// Line returns the line with the given id, or ErrLineNotFound.
func (o *Order) Line(lineID LineID) (OrderLine, error) {
	for _, line := range o.lines {
		if line.id == lineID {
			return line, nil
		}
	}
	return OrderLine{}, ErrLineNotFound
}

// Business methods

// SetStatus replaces the order status. Any member of the status
// enumeration may follow any other; only unknown values are rejected.
func (o *Order) SetStatus(status Status) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	oldStatus := o.status
	o.status = status
	o.updatedAt = time.Now().UTC()
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, oldStatus))
	return nil
}

func sumLines(lines []OrderLine) (types.Money, error) {
	total := lines[0].Subtotal()
	for _, line := range lines[1:] {
		var err error
		total, err = total.Add(line.Subtotal())
		if err != nil {
			return types.Money{}, err
		}
	}
	return total, nil
}
