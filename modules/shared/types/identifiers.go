// Package types provides shared value objects and type definitions
// used across multiple modules (Shared Kernel pattern).
package types

import (
	"github.com/google/uuid"
)

// UserID represents a unique identifier for a user.
// Using a distinct type prevents mixing up different ID types.
type UserID struct {
	value string
}

func NewUserID() UserID {
	return UserID{value: uuid.New().String()}
}

func ParseUserID(s string) (UserID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return UserID{}, ErrInvalidID
	}
	return UserID{value: s}, nil
}

func (id UserID) String() string { return id.value }
func (id UserID) IsZero() bool   { return id.value == "" }

// BookID represents a unique identifier for a book in the catalog.
type BookID struct {
	value string
}

func NewBookID() BookID {
	return BookID{value: uuid.New().String()}
}

func ParseBookID(s string) (BookID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return BookID{}, ErrInvalidID
	}
	return BookID{value: s}, nil
}

func (id BookID) String() string { return id.value }
func (id BookID) IsZero() bool   { return id.value == "" }

// CategoryID represents a unique identifier for a catalog category.
type CategoryID struct {
	value string
}

func NewCategoryID() CategoryID {
	return CategoryID{value: uuid.New().String()}
}

func ParseCategoryID(s string) (CategoryID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return CategoryID{}, ErrInvalidID
	}
	return CategoryID{value: s}, nil
}

func (id CategoryID) String() string { return id.value }
func (id CategoryID) IsZero() bool   { return id.value == "" }

// OrderID represents a unique identifier for an order.
type OrderID struct {
	value string
}

func NewOrderID() OrderID {
	return OrderID{value: uuid.New().String()}
}

func ParseOrderID(s string) (OrderID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return OrderID{}, ErrInvalidID
	}
	return OrderID{value: s}, nil
}

func (id OrderID) String() string { return id.value }
func (id OrderID) IsZero() bool   { return id.value == "" }
