// Package persistence provides storage implementations for the cart module.
package persistence

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	platformspanner "github.com/Oleksandr-Tymoshenko/Online-Book-Store/internal/platform/spanner"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/cart/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// SpannerCartRepository implements CartRepository on Cloud Spanner.
// Carts are keyed by user; lines live in a child table keyed by
// (UserID, LineID).
type SpannerCartRepository struct {
	client *spanner.Client
}

func NewSpannerCartRepository(client *spanner.Client) *SpannerCartRepository {
	return &SpannerCartRepository{client: client}
}

var cartColumns = []string{"UserID", "CreatedAt", "UpdatedAt"}
var cartLineColumns = []string{"UserID", "LineID", "BookID", "Quantity"}

func (r *SpannerCartRepository) FindByUser(ctx context.Context, userID types.UserID) (*domain.Cart, error) {
	reader, cleanup := r.reader(ctx)
	defer cleanup()

	row, err := reader.ReadRow(ctx, "Carts", spanner.Key{userID.String()}, cartColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	var uid string
	var createdAt, updatedAt time.Time
	if err := row.Columns(&uid, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan cart: %w", err)
	}

	lines, err := r.readLines(ctx, reader, userID)
	if err != nil {
		return nil, err
	}

	return domain.ReconstituteCart(userID, lines, createdAt, updatedAt), nil
}

func (r *SpannerCartRepository) readLines(ctx context.Context, reader platformspanner.ReadTransaction, userID types.UserID) ([]domain.Line, error) {
	stmt := spanner.Statement{
		SQL: `SELECT LineID, BookID, Quantity
		      FROM CartLines
		      WHERE UserID = @userID
		      ORDER BY LineID`,
		Params: map[string]interface{}{"userID": userID.String()},
	}

	iter := reader.Query(ctx, stmt)
	defer iter.Stop()

	var lines []domain.Line
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query cart lines: %w", err)
		}

		var lineID, bookID string
		var quantity int64
		if err := row.Columns(&lineID, &bookID, &quantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}

		id, err := domain.ParseLineID(lineID)
		if err != nil {
			return nil, fmt.Errorf("failed to parse line id: %w", err)
		}
		bid, err := types.ParseBookID(bookID)
		if err != nil {
			return nil, fmt.Errorf("failed to parse book id: %w", err)
		}

		lines = append(lines, domain.ReconstituteLine(id, bid, int(quantity)))
	}

	return lines, nil
}

// Save replaces the stored cart with the aggregate's current state.
// Lines are rewritten wholesale: a range delete followed by inserts in
// the same commit, so removed lines do not linger.
func (r *SpannerCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	mutations := []*spanner.Mutation{
		spanner.InsertOrUpdate("Carts", cartColumns, []interface{}{
			cart.UserID().String(),
			cart.CreatedAt(),
			cart.UpdatedAt(),
		}),
		spanner.Delete("CartLines", spanner.Key{cart.UserID().String()}.AsPrefix()),
	}
	for _, line := range cart.Lines() {
		mutations = append(mutations, spanner.Insert("CartLines", cartLineColumns, []interface{}{
			cart.UserID().String(),
			line.ID().String(),
			line.BookID().String(),
			int64(line.Quantity()),
		}))
	}

	if tx, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return tx.BufferWrite(mutations)
	}

	if _, err := r.client.Apply(ctx, mutations); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (r *SpannerCartRepository) DeleteByUser(ctx context.Context, userID types.UserID) error {
	mutations := []*spanner.Mutation{
		spanner.Delete("CartLines", spanner.Key{userID.String()}.AsPrefix()),
		spanner.Delete("Carts", spanner.Key{userID.String()}),
	}

	if tx, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return tx.BufferWrite(mutations)
	}

	if _, err := r.client.Apply(ctx, mutations); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

func (r *SpannerCartRepository) reader(ctx context.Context) (platformspanner.ReadTransaction, func()) {
	if reader, ok := platformspanner.ReadTransactionFromContext(ctx); ok {
		return reader, func() {}
	}
	roTx := r.client.ReadOnlyTransaction()
	return roTx, roTx.Close
}

var _ domain.CartRepository = (*SpannerCartRepository)(nil)
