package queries

import (
	"context"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog/domain"
)

// SearchBooksQuery retrieves a page of books matching a set of
// independently-optional field filters.
type SearchBooksQuery struct {
	// Filters maps a field name (title, author) to acceptable values.
	// An empty or absent value list imposes no constraint for that field.
	Filters map[string][]string
	Offset  int
	Limit   int
}

type SearchBooksHandler struct {
	repo domain.BookRepository
}

func NewSearchBooksHandler(repo domain.BookRepository) *SearchBooksHandler {
	return &SearchBooksHandler{repo: repo}
}

// Handle composes the criteria and runs the search. An unknown filter field
// fails the whole request with domain.ErrUnknownFilterField - no partial
// results are returned.
func (h *SearchBooksHandler) Handle(ctx context.Context, query SearchBooksQuery) (*BookListDTO, error) {
	criteria, err := domain.BuildSearchCriteria(query.Filters)
	if err != nil {
		return nil, err
	}

	limit := clampLimit(query.Limit)
	offset := clampOffset(query.Offset)

	books, total, err := h.repo.Search(ctx, criteria, offset, limit)
	if err != nil {
		return nil, err
	}

	return toBookListDTO(books, total, offset, limit), nil
}
