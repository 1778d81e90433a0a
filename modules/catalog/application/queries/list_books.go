package queries

import (
	"context"
	"fmt"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// BookListDTO contains a paginated list of books.
type BookListDTO struct {
	Books      []*BookDTO `json:"books"`
	TotalCount int        `json:"total_count"`
	Offset     int        `json:"offset"`
	Limit      int        `json:"limit"`
}

// ListBooksQuery retrieves a page of the catalog.
type ListBooksQuery struct {
	Offset int
	Limit  int
}

type ListBooksHandler struct {
	repo domain.BookRepository
}

func NewListBooksHandler(repo domain.BookRepository) *ListBooksHandler {
	return &ListBooksHandler{repo: repo}
}

func (h *ListBooksHandler) Handle(ctx context.Context, query ListBooksQuery) (*BookListDTO, error) {
	limit := clampLimit(query.Limit)
	offset := clampOffset(query.Offset)

	books, total, err := h.repo.FindAll(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	return toBookListDTO(books, total, offset, limit), nil
}

// ListBooksByCategoryQuery retrieves a page of books tagged with a category.
type ListBooksByCategoryQuery struct {
	CategoryID string
	Offset     int
	Limit      int
}

type ListBooksByCategoryHandler struct {
	repo domain.BookRepository
}

func NewListBooksByCategoryHandler(repo domain.BookRepository) *ListBooksByCategoryHandler {
	return &ListBooksByCategoryHandler{repo: repo}
}

func (h *ListBooksByCategoryHandler) Handle(ctx context.Context, query ListBooksByCategoryQuery) (*BookListDTO, error) {
	categoryID, err := types.ParseCategoryID(query.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid category ID: %w", err)
	}

	limit := clampLimit(query.Limit)
	offset := clampOffset(query.Offset)

	books, total, err := h.repo.FindByCategory(ctx, categoryID, offset, limit)
	if err != nil {
		return nil, err
	}

	return toBookListDTO(books, total, offset, limit), nil
}

func toBookListDTO(books []*domain.Book, total, offset, limit int) *BookListDTO {
	dtos := make([]*BookDTO, len(books))
	for i, book := range books {
		dtos[i] = ToBookDTO(book)
	}
	return &BookListDTO{
		Books:      dtos,
		TotalCount: total,
		Offset:     offset,
		Limit:      limit,
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 100 {
		return 100
	}
	return limit
}

// clampOffset floors the offset at zero. A negative offset must never reach
// a repository: it would slice out of range in memory or produce an invalid
// OFFSET clause in SQL.
func clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
