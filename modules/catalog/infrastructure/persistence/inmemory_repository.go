// Package persistence implements repository interfaces for the catalog.
package persistence

import (
	"context"
	"sort"
	"sync"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// InMemoryBookRepository implements BookRepository using in-memory storage.
// Soft-deleted books stay in the map but are invisible to every read,
// mirroring the store-level soft-delete contract.
type InMemoryBookRepository struct {
	mu      sync.RWMutex
	books   map[string]*domain.Book
	deleted map[string]bool
}

func NewInMemoryBookRepository() *InMemoryBookRepository {
	return &InMemoryBookRepository{
		books:   make(map[string]*domain.Book),
		deleted: make(map[string]bool),
	}
}

func (r *InMemoryBookRepository) Save(ctx context.Context, book *domain.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.books[book.ID().String()] = book
	return nil
}

func (r *InMemoryBookRepository) FindByID(ctx context.Context, id types.BookID) (*domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	book, exists := r.books[id.String()]
	if !exists || r.deleted[id.String()] {
		return nil, domain.ErrBookNotFound
	}
	return book, nil
}

func (r *InMemoryBookRepository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, book := range r.books {
		if !r.deleted[id] && book.ISBN() == isbn {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryBookRepository) FindAll(ctx context.Context, offset, limit int) ([]*domain.Book, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return paginateBooks(r.visible(), offset, limit)
}

func (r *InMemoryBookRepository) FindByCategory(ctx context.Context, categoryID types.CategoryID, offset, limit int) ([]*domain.Book, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*domain.Book
	for _, book := range r.visible() {
		if book.HasCategory(categoryID) {
			matched = append(matched, book)
		}
	}
	return paginateBooks(matched, offset, limit)
}

func (r *InMemoryBookRepository) Search(ctx context.Context, criteria domain.SearchCriteria, offset, limit int) ([]*domain.Book, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*domain.Book
	for _, book := range r.visible() {
		if criteria.Matches(book) {
			matched = append(matched, book)
		}
	}
	return paginateBooks(matched, offset, limit)
}

func (r *InMemoryBookRepository) Delete(ctx context.Context, id types.BookID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted[id.String()] = true
	return nil
}

// visible returns non-deleted books in a stable order.
func (r *InMemoryBookRepository) visible() []*domain.Book {
	books := make([]*domain.Book, 0, len(r.books))
	for id, book := range r.books {
		if !r.deleted[id] {
			books = append(books, book)
		}
	}
	sort.Slice(books, func(i, j int) bool {
		return books[i].ID().String() < books[j].ID().String()
	})
	return books
}

func paginateBooks(books []*domain.Book, offset, limit int) ([]*domain.Book, int, error) {
	total := len(books)
	if offset >= total {
		return []*domain.Book{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return books[offset:end], total, nil
}

// InMemoryCategoryRepository implements CategoryRepository using in-memory storage.
type InMemoryCategoryRepository struct {
	mu         sync.RWMutex
	categories map[string]*domain.Category
}

func NewInMemoryCategoryRepository() *InMemoryCategoryRepository {
	return &InMemoryCategoryRepository{
		categories: make(map[string]*domain.Category),
	}
}

func (r *InMemoryCategoryRepository) Save(ctx context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[category.ID().String()] = category
	return nil
}

func (r *InMemoryCategoryRepository) FindByID(ctx context.Context, id types.CategoryID) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, exists := r.categories[id.String()]
	if !exists {
		return nil, domain.ErrCategoryNotFound
	}
	return category, nil
}

func (r *InMemoryCategoryRepository) FindAll(ctx context.Context, offset, limit int) ([]*domain.Category, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make([]*domain.Category, 0, len(r.categories))
	for _, category := range r.categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].ID().String() < categories[j].ID().String()
	})

	total := len(categories)
	if offset >= total {
		return []*domain.Category{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return categories[offset:end], total, nil
}

func (r *InMemoryCategoryRepository) Delete(ctx context.Context, id types.CategoryID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.categories, id.String())
	return nil
}

// Compile-time interface checks.
var (
	_ domain.BookRepository     = (*InMemoryBookRepository)(nil)
	_ domain.CategoryRepository = (*InMemoryCategoryRepository)(nil)
)
