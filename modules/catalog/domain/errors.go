package domain

import "errors"

var (
	ErrBookNotFound         = errors.New("book not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrTitleRequired        = errors.New("title is required")
	ErrAuthorRequired       = errors.New("author is required")
	ErrISBNRequired         = errors.New("isbn is required")
	ErrDuplicateISBN        = errors.New("a book with this isbn already exists")
	ErrNegativePrice        = errors.New("price must not be negative")
	ErrInvalidPrice         = errors.New("invalid price")
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrUnknownFilterField   = errors.New("unknown search filter field")
)
