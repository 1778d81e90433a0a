// Package domain contains the cart domain model.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// LineID identifies a single cart line.
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

// Line is one book entry in a cart. A cart holds at most one line per book.
type Line struct {
	id       LineID
	bookID   types.BookID
	quantity int
}

func (l Line) ID() LineID           { return l.id }
func (l Line) BookID() types.BookID { return l.bookID }
func (l Line) Quantity() int        { return l.quantity }

// Cart is a user's shopping cart. It is keyed by the owning user;
// there is no separate cart identity.
type Cart struct {
	userID    types.UserID
	lines     []Line
	createdAt time.Time
	updatedAt time.Time
}

// NewCart creates an empty cart for the user.
func NewCart(userID types.UserID) *Cart {
	now := time.Now().UTC()
	return &Cart{
		userID:    userID,
		createdAt: now,
		updatedAt: now,
	}
}

// ReconstituteCart restores a cart from persistence.
func ReconstituteCart(userID types.UserID, lines []Line, createdAt, updatedAt time.Time) *Cart {
	return &Cart{
		userID:    userID,
		lines:     lines,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ReconstituteLine restores a cart line from persistence.
func ReconstituteLine(id LineID, bookID types.BookID, quantity int) Line {
	return Line{id: id, bookID: bookID, quantity: quantity}
}

func (c *Cart) UserID() types.UserID  { return c.userID }
func (c *Cart) CreatedAt() time.Time  { return c.createdAt }
func (c *Cart) UpdatedAt() time.Time  { return c.updatedAt }
func (c *Cart) IsEmpty() bool         { return len(c.lines) == 0 }

// Lines returns a copy of the cart's lines.
func (c *Cart) Lines() []Line {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// AddItem adds quantity of a book to the cart. If a line for the book
// already exists the quantities are merged, so adding is always
// cumulative and never silently discards a previous add.
func (c *Cart) AddItem(bookID types.BookID, quantity int) (Line, error) {
	if quantity < 1 {
		return Line{}, ErrInvalidQuantity
	}

	for i := range c.lines {
		if c.lines[i].bookID == bookID {
			c.lines[i].quantity += quantity
			c.touch()
			return c.lines[i], nil
		}
	}

	line := Line{
		id:       NewLineID(),
		bookID:   bookID,
		quantity: quantity,
	}
	c.lines = append(c.lines, line)
	c.touch()
	return line, nil
}

// UpdateLineQuantity replaces the quantity of an existing line.
func (c *Cart) UpdateLineQuantity(lineID LineID, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	for i := range c.lines {
		if c.lines[i].id == lineID {
			c.lines[i].quantity = quantity
			c.touch()
			return nil
		}
	}
	return ErrLineNotFound
}

// RemoveLine removes a line from the cart. The cart itself survives,
// possibly empty.
func (c *Cart) RemoveLine(lineID LineID) error {
	for i := range c.lines {
		if c.lines[i].id == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			c.touch()
			return nil
		}
	}
	return ErrLineNotFound
}

func (c *Cart) touch() {
	c.updatedAt = time.Now().UTC()
}
