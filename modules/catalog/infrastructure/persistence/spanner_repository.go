package persistence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	platformspanner "github.com/Oleksandr-Tymoshenko/Online-Book-Store/internal/platform/spanner"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

var bookColumns = []string{
	"BookID", "Title", "Author", "ISBN", "Price", "Currency",
	"Description", "CoverImage", "CategoryIDs", "IsDeleted", "CreatedAt", "UpdatedAt",
}

// SpannerBookRepository implements BookRepository on Cloud Spanner.
// Prices are stored as exact decimal strings; soft deletion is an IsDeleted
// flag filtered out of every read.
type SpannerBookRepository struct {
	client *spanner.Client
}

func NewSpannerBookRepository(client *spanner.Client) *SpannerBookRepository {
	return &SpannerBookRepository{client: client}
}

// Save persists a book.
// It uses an existing transaction if available, otherwise creates a new one.
func (r *SpannerBookRepository) Save(ctx context.Context, book *domain.Book) error {
	mutation := spanner.InsertOrUpdate("Books", bookColumns, bookMutationValues(book))

	if tx, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return tx.BufferWrite([]*spanner.Mutation{mutation})
	}

	if _, err := r.client.Apply(ctx, []*spanner.Mutation{mutation}); err != nil {
		return fmt.Errorf("failed to save book: %w", err)
	}
	return nil
}

func bookMutationValues(book *domain.Book) []interface{} {
	categoryIDs := make([]string, len(book.CategoryIDs()))
	for i, id := range book.CategoryIDs() {
		categoryIDs[i] = id.String()
	}
	return []interface{}{
		book.ID().String(),
		book.Title(),
		book.Author(),
		book.ISBN(),
		book.Price().Amount().String(),
		book.Price().Currency(),
		book.Description(),
		book.CoverImage(),
		categoryIDs,
		false,
		book.CreatedAt(),
		book.UpdatedAt(),
	}
}

func (r *SpannerBookRepository) FindByID(ctx context.Context, id types.BookID) (*domain.Book, error) {
	reader, cleanup := r.reader(ctx)
	defer cleanup()

	row, err := reader.ReadRow(ctx, "Books", spanner.Key{id.String()}, bookColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to read book: %w", err)
	}

	book, deleted, err := scanBook(row)
	if err != nil {
		return nil, err
	}
	// A soft-deleted book is indistinguishable from a missing one.
	if deleted {
		return nil, domain.ErrBookNotFound
	}
	return book, nil
}

func (r *SpannerBookRepository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	reader, cleanup := r.reader(ctx)
	defer cleanup()

	stmt := spanner.Statement{
		SQL:    `SELECT COUNT(*) FROM Books WHERE ISBN = @isbn AND IsDeleted = FALSE`,
		Params: map[string]interface{}{"isbn": isbn},
	}

	count, err := queryCount(ctx, reader, stmt)
	if err != nil {
		return false, fmt.Errorf("failed to check isbn: %w", err)
	}
	return count > 0, nil
}

func (r *SpannerBookRepository) FindAll(ctx context.Context, offset, limit int) ([]*domain.Book, int, error) {
	return r.query(ctx, "TRUE", nil, offset, limit)
}

func (r *SpannerBookRepository) FindByCategory(ctx context.Context, categoryID types.CategoryID, offset, limit int) ([]*domain.Book, int, error) {
	return r.query(ctx, "@categoryID IN UNNEST(CategoryIDs)",
		map[string]interface{}{"categoryID": categoryID.String()}, offset, limit)
}

func (r *SpannerBookRepository) Search(ctx context.Context, criteria domain.SearchCriteria, offset, limit int) ([]*domain.Book, int, error) {
	conditions := []string{"TRUE"}
	params := map[string]interface{}{}

	// Criteria fields come from the closed set in the domain package,
	// so interpolating the column name is safe.
	for i, filter := range criteria.Filters() {
		param := fmt.Sprintf("filter%d", i)
		conditions = append(conditions, fmt.Sprintf("%s IN UNNEST(@%s)", filterColumn(filter.Field), param))
		params[param] = filter.Values
	}

	return r.query(ctx, strings.Join(conditions, " AND "), params, offset, limit)
}

func filterColumn(field string) string {
	switch field {
	case domain.FilterFieldTitle:
		return "Title"
	case domain.FilterFieldAuthor:
		return "Author"
	default:
		// BuildSearchCriteria rejects unknown fields before we get here.
		panic(fmt.Sprintf("unknown filter field %q", field))
	}
}

func (r *SpannerBookRepository) query(ctx context.Context, condition string, params map[string]interface{}, offset, limit int) ([]*domain.Book, int, error) {
	reader, cleanup := r.reader(ctx)
	defer cleanup()

	if params == nil {
		params = map[string]interface{}{}
	}

	countStmt := spanner.Statement{
		SQL:    `SELECT COUNT(*) FROM Books WHERE IsDeleted = FALSE AND ` + condition,
		Params: params,
	}
	total, err := queryCount(ctx, reader, countStmt)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	pageParams := make(map[string]interface{}, len(params)+2)
	for k, v := range params {
		pageParams[k] = v
	}
	pageParams["limit"] = int64(limit)
	pageParams["offset"] = int64(offset)

	stmt := spanner.Statement{
		SQL: `SELECT ` + strings.Join(bookColumns, ", ") + `
		      FROM Books
		      WHERE IsDeleted = FALSE AND ` + condition + `
		      ORDER BY BookID
		      LIMIT @limit OFFSET @offset`,
		Params: pageParams,
	}

	iter := reader.Query(ctx, stmt)
	defer iter.Stop()

	var books []*domain.Book
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to query books: %w", err)
		}

		book, _, err := scanBook(row)
		if err != nil {
			return nil, 0, err
		}
		books = append(books, book)
	}

	return books, int(total), nil
}

func (r *SpannerBookRepository) Delete(ctx context.Context, id types.BookID) error {
	// Soft delete: the row stays so existing order lines keep a valid reference.
	mutation := spanner.Update("Books",
		[]string{"BookID", "IsDeleted", "UpdatedAt"},
		[]interface{}{id.String(), true, time.Now().UTC()},
	)

	if tx, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return tx.BufferWrite([]*spanner.Mutation{mutation})
	}

	if _, err := r.client.Apply(ctx, []*spanner.Mutation{mutation}); err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	return nil
}

// reader returns the transaction from context or a fresh ReadOnlyTransaction.
// Multiple reads (COUNT + page) require a ReadOnlyTransaction for
// point-in-time consistency; Single() is only for one read.
func (r *SpannerBookRepository) reader(ctx context.Context) (platformspanner.ReadTransaction, func()) {
	if reader, ok := platformspanner.ReadTransactionFromContext(ctx); ok {
		return reader, func() {}
	}
	roTx := r.client.ReadOnlyTransaction()
	return roTx, roTx.Close
}

func scanBook(row *spanner.Row) (*domain.Book, bool, error) {
	var bookID, title, author, isbn, price, currency, description, coverImage string
	var categoryIDs []string
	var isDeleted bool
	var createdAt, updatedAt time.Time

	if err := row.Columns(&bookID, &title, &author, &isbn, &price, &currency,
		&description, &coverImage, &categoryIDs, &isDeleted, &createdAt, &updatedAt); err != nil {
		return nil, false, fmt.Errorf("failed to scan book: %w", err)
	}

	id, err := types.ParseBookID(bookID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to parse book id: %w", err)
	}

	parsedCategoryIDs := make([]types.CategoryID, 0, len(categoryIDs))
	for _, s := range categoryIDs {
		categoryID, err := types.ParseCategoryID(s)
		if err != nil {
			return nil, false, fmt.Errorf("failed to parse category id: %w", err)
		}
		parsedCategoryIDs = append(parsedCategoryIDs, categoryID)
	}

	book := domain.ReconstituteBook(
		id, title, author, isbn,
		types.MustNewMoneyFromString(price, currency),
		description, coverImage,
		parsedCategoryIDs,
		createdAt, updatedAt,
	)
	return book, isDeleted, nil
}

func queryCount(ctx context.Context, reader platformspanner.ReadTransaction, stmt spanner.Statement) (int64, error) {
	iter := reader.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil && err != iterator.Done {
		return 0, err
	}
	var count int64
	if row != nil {
		if err := row.Columns(&count); err != nil {
			return 0, err
		}
	}
	return count, nil
}

// SpannerCategoryRepository implements CategoryRepository on Cloud Spanner.
type SpannerCategoryRepository struct {
	client *spanner.Client
}

func NewSpannerCategoryRepository(client *spanner.Client) *SpannerCategoryRepository {
	return &SpannerCategoryRepository{client: client}
}

var categoryColumns = []string{"CategoryID", "Name", "Description", "CreatedAt", "UpdatedAt"}

func (r *SpannerCategoryRepository) Save(ctx context.Context, category *domain.Category) error {
	mutation := spanner.InsertOrUpdate("Categories", categoryColumns,
		[]interface{}{
			category.ID().String(),
			category.Name(),
			category.Description(),
			category.CreatedAt(),
			category.UpdatedAt(),
		},
	)

	if tx, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return tx.BufferWrite([]*spanner.Mutation{mutation})
	}

	if _, err := r.client.Apply(ctx, []*spanner.Mutation{mutation}); err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}
	return nil
}

func (r *SpannerCategoryRepository) FindByID(ctx context.Context, id types.CategoryID) (*domain.Category, error) {
	reader, cleanup := r.reader(ctx)
	defer cleanup()

	row, err := reader.ReadRow(ctx, "Categories", spanner.Key{id.String()}, categoryColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to read category: %w", err)
	}

	return scanCategory(row)
}

func (r *SpannerCategoryRepository) FindAll(ctx context.Context, offset, limit int) ([]*domain.Category, int, error) {
	reader, cleanup := r.reader(ctx)
	defer cleanup()

	total, err := queryCount(ctx, reader, spanner.Statement{SQL: `SELECT COUNT(*) FROM Categories`})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	stmt := spanner.Statement{
		SQL: `SELECT ` + strings.Join(categoryColumns, ", ") + `
		      FROM Categories
		      ORDER BY CategoryID
		      LIMIT @limit OFFSET @offset`,
		Params: map[string]interface{}{
			"limit":  int64(limit),
			"offset": int64(offset),
		},
	}

	iter := reader.Query(ctx, stmt)
	defer iter.Stop()

	var categories []*domain.Category
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to query categories: %w", err)
		}

		category, err := scanCategory(row)
		if err != nil {
			return nil, 0, err
		}
		categories = append(categories, category)
	}

	return categories, int(total), nil
}

func (r *SpannerCategoryRepository) Delete(ctx context.Context, id types.CategoryID) error {
	mutation := spanner.Delete("Categories", spanner.Key{id.String()})

	if tx, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return tx.BufferWrite([]*spanner.Mutation{mutation})
	}

	if _, err := r.client.Apply(ctx, []*spanner.Mutation{mutation}); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

func (r *SpannerCategoryRepository) reader(ctx context.Context) (platformspanner.ReadTransaction, func()) {
	if reader, ok := platformspanner.ReadTransactionFromContext(ctx); ok {
		return reader, func() {}
	}
	roTx := r.client.ReadOnlyTransaction()
	return roTx, roTx.Close
}

func scanCategory(row *spanner.Row) (*domain.Category, error) {
	var categoryID, name, description string
	var createdAt, updatedAt time.Time

	if err := row.Columns(&categoryID, &name, &description, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan category: %w", err)
	}

	id, err := types.ParseCategoryID(categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse category id: %w", err)
	}

	return domain.ReconstituteCategory(id, name, description, createdAt, updatedAt), nil
}

// Compile-time interface checks.
var (
	_ domain.BookRepository     = (*SpannerBookRepository)(nil)
	_ domain.CategoryRepository = (*SpannerCategoryRepository)(nil)
)
