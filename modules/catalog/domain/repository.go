package domain

import (
	"context"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// BookRepository defines persistence operations for books.
//
// Implementations apply soft deletion transparently: a soft-deleted book is
// reported as ErrBookNotFound by every read, identically to a missing row.
type BookRepository interface {
	Save(ctx context.Context, book *Book) error
	FindByID(ctx context.Context, id types.BookID) (*Book, error)
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)
	FindAll(ctx context.Context, offset, limit int) ([]*Book, int, error)
	FindByCategory(ctx context.Context, categoryID types.CategoryID, offset, limit int) ([]*Book, int, error)
	Search(ctx context.Context, criteria SearchCriteria, offset, limit int) ([]*Book, int, error)
	// Delete soft-deletes the book.
	Delete(ctx context.Context, id types.BookID) error
}

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	Save(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id types.CategoryID) (*Category, error)
	FindAll(ctx context.Context, offset, limit int) ([]*Category, int, error)
	Delete(ctx context.Context, id types.CategoryID) error
}
