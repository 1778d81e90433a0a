package persistence

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/internal/platform/cache"
	platformspanner "github.com/Oleksandr-Tymoshenko/Online-Book-Store/internal/platform/spanner"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

const bookCacheTTL = 5 * time.Minute

// CachedBookRepository decorates a BookRepository with a cache-aside
// read path for FindByID. Writes invalidate the cached entry; list and
// search reads always go to the underlying store.
type CachedBookRepository struct {
	inner  domain.BookRepository
	cache  cache.Cache
	group  singleflight.Group
	logger *slog.Logger
}

func NewCachedBookRepository(inner domain.BookRepository, c cache.Cache, logger *slog.Logger) *CachedBookRepository {
	return &CachedBookRepository{inner: inner, cache: c, logger: logger}
}

// cachedBook is the serialized cache entry. It mirrors the aggregate's
// persisted state, not its behavior.
type cachedBook struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	ISBN        string    `json:"isbn"`
	Price       string    `json:"price"`
	Currency    string    `json:"currency"`
	Description string    `json:"description"`
	CoverImage  string    `json:"cover_image"`
	CategoryIDs []string  `json:"category_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func bookCacheKey(id types.BookID) string {
	return "catalog:book:" + id.String()
}

func hasLiveTransaction(ctx context.Context) bool {
	_, ok := platformspanner.ReadTransactionFromContext(ctx)
	return ok
}

func (r *CachedBookRepository) FindByID(ctx context.Context, id types.BookID) (*domain.Book, error) {
	// Reads inside a read-write transaction must see buffered state,
	// never a possibly stale cache entry.
	if hasLiveTransaction(ctx) {
		return r.inner.FindByID(ctx, id)
	}

	key := bookCacheKey(id)

	if data, ok, err := r.cache.Get(ctx, key); err != nil {
		r.logger.Warn("book cache read failed", "book_id", id.String(), "error", err)
	} else if ok {
		book, err := decodeCachedBook(data)
		if err == nil {
			return book, nil
		}
		r.logger.Warn("book cache entry corrupt", "book_id", id.String(), "error", err)
	}

	// Collapse concurrent misses for the same book into one store read.
	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		book, err := r.inner.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if data, err := encodeCachedBook(book); err == nil {
			if err := r.cache.Set(ctx, key, data, bookCacheTTL); err != nil {
				r.logger.Warn("book cache write failed", "book_id", id.String(), "error", err)
			}
		}
		return book, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Book), nil
}

func (r *CachedBookRepository) Save(ctx context.Context, book *domain.Book) error {
	if err := r.inner.Save(ctx, book); err != nil {
		return err
	}
	r.invalidate(ctx, book.ID())
	return nil
}

func (r *CachedBookRepository) Delete(ctx context.Context, id types.BookID) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *CachedBookRepository) invalidate(ctx context.Context, id types.BookID) {
	if err := r.cache.Delete(ctx, bookCacheKey(id)); err != nil {
		r.logger.Warn("book cache invalidation failed", "book_id", id.String(), "error", err)
	}
}

func (r *CachedBookRepository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	return r.inner.ExistsByISBN(ctx, isbn)
}

func (r *CachedBookRepository) FindAll(ctx context.Context, offset, limit int) ([]*domain.Book, int, error) {
	return r.inner.FindAll(ctx, offset, limit)
}

func (r *CachedBookRepository) FindByCategory(ctx context.Context, categoryID types.CategoryID, offset, limit int) ([]*domain.Book, int, error) {
	return r.inner.FindByCategory(ctx, categoryID, offset, limit)
}

func (r *CachedBookRepository) Search(ctx context.Context, criteria domain.SearchCriteria, offset, limit int) ([]*domain.Book, int, error) {
	return r.inner.Search(ctx, criteria, offset, limit)
}

func encodeCachedBook(book *domain.Book) ([]byte, error) {
	categoryIDs := make([]string, len(book.CategoryIDs()))
	for i, id := range book.CategoryIDs() {
		categoryIDs[i] = id.String()
	}
	return json.Marshal(cachedBook{
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
	})
}

func decodeCachedBook(data []byte) (*domain.Book, error) {
	var c cachedBook
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}

	id, err := types.ParseBookID(c.ID)
	if err != nil {
		return nil, err
	}
	price, err := types.NewMoneyFromString(c.Price, c.Currency)
	if err != nil {
		return nil, err
	}
	categoryIDs := make([]types.CategoryID, 0, len(c.CategoryIDs))
	for _, s := range c.CategoryIDs {
		categoryID, err := types.ParseCategoryID(s)
		if err != nil {
			return nil, err
		}
		categoryIDs = append(categoryIDs, categoryID)
	}

	return domain.ReconstituteBook(
		id, c.Title, c.Author, c.ISBN, price,
		c.Description, c.CoverImage, categoryIDs,
		c.CreatedAt, c.UpdatedAt,
	), nil
}

var _ domain.BookRepository = (*CachedBookRepository)(nil)
