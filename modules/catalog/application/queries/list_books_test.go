package queries

import (
	"context"
	"testing"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog/infrastructure/persistence"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

func saveTestBook(t *testing.T, repo *persistence.InMemoryBookRepository, title, isbn string) {
	t.Helper()
	book, err := domain.NewBook(title, "Author", isbn, types.MustNewMoneyFromString("9.99", "USD"), "", "", nil)
	if err != nil {
		t.Fatalf("NewBook: %v", err)
	}
	if err := repo.Save(context.Background(), book); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func TestListBooksNegativeOffset(t *testing.T) {
	repo := persistence.NewInMemoryBookRepository()
	saveTestBook(t, repo, "First", "1111111111")
	saveTestBook(t, repo, "Second", "2222222222")

	handler := NewListBooksHandler(repo)
	result, err := handler.Handle(context.Background(), ListBooksQuery{Offset: -1})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if len(result.Books) != 2 {
		t.Errorf("len(books) = %d, want 2", len(result.Books))
	}
	if result.Offset != 0 {
		t.Errorf("offset = %d, want 0", result.Offset)
	}
}

func TestSearchBooksNegativeOffset(t *testing.T) {
	repo := persistence.NewInMemoryBookRepository()
	saveTestBook(t, repo, "First", "1111111111")

	handler := NewSearchBooksHandler(repo)
	result, err := handler.Handle(context.Background(), SearchBooksQuery{
		Filters: map[string][]string{"title": {"First"}},
		Offset:  -3,
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if len(result.Books) != 1 {
		t.Errorf("len(books) = %d, want 1", len(result.Books))
	}
}
