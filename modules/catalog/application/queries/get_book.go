// Package queries contains read use cases for the catalog module.
package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// BookDTO is a read model for catalog book data.
// Price is the exact decimal amount as a string.
type BookDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	ISBN        string    `json:"isbn"`
	Price       string    `json:"price"`
	Currency    string    `json:"currency"`
	Description string    `json:"description,omitempty"`
	CoverImage  string    `json:"cover_image,omitempty"`
	CategoryIDs []string  `json:"category_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GetBookQuery retrieves a book by ID.
type GetBookQuery struct {
	BookID string
}

type GetBookHandler struct {
	repo domain.BookRepository
}

func NewGetBookHandler(repo domain.BookRepository) *GetBookHandler {
	return &GetBookHandler{repo: repo}
}

func (h *GetBookHandler) Handle(ctx context.Context, query GetBookQuery) (*BookDTO, error) {
	bookID, err := types.ParseBookID(query.BookID)
	if err != nil {
		return nil, fmt.Errorf("invalid book ID: %w", err)
	}

	book, err := h.repo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	return ToBookDTO(book), nil
}

// ToBookDTO maps a book aggregate to its read model.
func ToBookDTO(book *domain.Book) *BookDTO {
	categoryIDs := make([]string, len(book.CategoryIDs()))
	for i, id := range book.CategoryIDs() {
		categoryIDs[i] = id.String()
	}

	return &BookDTO{
		ID:          book.ID().String(),
		Title:       book.Title(),
		Author:      book.Author(),
		ISBN:        book.ISBN(),
		Price:       book.Price().Amount().String(),
		Currency:    book.Price().Currency(),
		Description: book.Description(),
		CoverImage:  book.CoverImage(),
		CategoryIDs: categoryIDs,
		CreatedAt:   book.CreatedAt(),
		UpdatedAt:   book.UpdatedAt(),
	}
}
