// Package domain contains business entities and rules for the catalog.
package domain

import (
	"time"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// Book is the aggregate root for the catalog bounded context.
// Soft deletion is a storage concern: repositories must never return a
// deleted book, so from the domain's point of view a deleted book simply
// does not exist.
type Book struct {
	id          types.BookID
	title       string
	author      string
	isbn        string
	price       types.Money
	description string
	coverImage  string
	categoryIDs []types.CategoryID
	createdAt   time.Time
	updatedAt   time.Time
}

// NewBook creates a new book with validated inputs.
func NewBook(title, author, isbn string, price types.Money, description, coverImage string, categoryIDs []types.CategoryID) (*Book, error) {
	if err := validateBook(title, author, isbn, price); err != nil {
		return nil, err
	}
	return &Book{
		id:          types.NewBookID(),
		title:       title,
		author:      author,
		isbn:        isbn,
		price:       price,
		description: description,
		coverImage:  coverImage,
		categoryIDs: append([]types.CategoryID(nil), categoryIDs...),
		createdAt:   time.Now().UTC(),
		updatedAt:   time.Now().UTC(),
	}, nil
}

// ReconstituteBook rebuilds a book from persistence.
func ReconstituteBook(
	id types.BookID,
	title, author, isbn string,
	price types.Money,
	description, coverImage string,
	categoryIDs []types.CategoryID,
	createdAt, updatedAt time.Time,
) *Book {
	return &Book{
		id:          id,
		title:       title,
		author:      author,
		isbn:        isbn,
		price:       price,
		description: description,
		coverImage:  coverImage,
		categoryIDs: categoryIDs,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Getters

func (b *Book) ID() types.BookID                 { return b.id }
func (b *Book) Title() string                    { return b.title }
func (b *Book) Author() string                   { return b.author }
func (b *Book) ISBN() string                     { return b.isbn }
func (b *Book) Price() types.Money               { return b.price }
func (b *Book) Description() string              { return b.description }
func (b *Book) CoverImage() string               { return b.coverImage }
func (b *Book) CategoryIDs() []types.CategoryID  { return b.categoryIDs }
func (b *Book) CreatedAt() time.Time             { return b.createdAt }
func (b *Book) UpdatedAt() time.Time             { return b.updatedAt }

// Update replaces the book's attributes with validated inputs.
func (b *Book) Update(title, author, isbn string, price types.Money, description, coverImage string, categoryIDs []types.CategoryID) error {
	if err := validateBook(title, author, isbn, price); err != nil {
		return err
	}
	b.title = title
	b.author = author
	b.isbn = isbn
	b.price = price
	b.description = description
	b.coverImage = coverImage
	b.categoryIDs = append([]types.CategoryID(nil), categoryIDs...)
	b.updatedAt = time.Now().UTC()
	return nil
}

// HasCategory reports whether the book is tagged with the given category.
func (b *Book) HasCategory(id types.CategoryID) bool {
	for _, c := range b.categoryIDs {
		if c.String() == id.String() {
			return true
		}
	}
	return false
}

func validateBook(title, author, isbn string, price types.Money) error {
	if title == "" {
		return ErrTitleRequired
	}
	if author == "" {
		return ErrAuthorRequired
	}
	if isbn == "" {
		return ErrISBNRequired
	}
	if price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}
