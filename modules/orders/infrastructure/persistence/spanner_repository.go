// Package persistence implements repository interfaces for orders.
package persistence

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	platformspanner "github.com/Oleksandr-Tymoshenko/Online-Book-Store/internal/platform/spanner"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/orders/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

var orderColumns = []string{
	"OrderID", "UserID", "Status", "ShippingAddress",
	"TotalAmount", "TotalCurrency", "CreatedAt", "UpdatedAt",
}

// SpannerRepository implements OrderRepository on Cloud Spanner.
// Money amounts are stored as exact decimal strings.
type SpannerRepository struct {
	client *spanner.Client
}

func NewSpannerRepository(client *spanner.Client) *SpannerRepository {
	return &SpannerRepository{client: client}
}

// Save persists an order.
// It uses an existing transaction if available, otherwise creates a new one.
func (r *SpannerRepository) Save(ctx context.Context, order *domain.Order) error {
	if txn, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return r.saveWithTx(txn, order)
	}

	_, err := r.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		return r.saveWithTx(txn, order)
	})
	if err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func (r *SpannerRepository) saveWithTx(tx *spanner.ReadWriteTransaction, order *domain.Order) error {
	orderID := order.ID().String()

	mutations := []*spanner.Mutation{
		spanner.InsertOrUpdate("Orders", orderColumns, []interface{}{
			orderID,
			order.UserID().String(),
			order.Status().String(),
			order.ShippingAddress(),
			order.Total().Amount().String(),
			order.Total().Currency(),
			order.CreatedAt(),
			order.UpdatedAt(),
		}),
	}

	// Lines never change after placement, so InsertOrUpdate without a
	// prior delete is enough.
	for _, line := range order.Lines() {
		mutations = append(mutations, spanner.InsertOrUpdate("OrderLines",
			[]string{"OrderID", "LineID", "BookID", "Quantity", "UnitAmount", "Currency"},
			[]interface{}{
				orderID,
				line.ID().String(),
				line.BookID().String(),
				int64(line.Quantity()),
				line.UnitPrice().Amount().String(),
				line.UnitPrice().Currency(),
			},
		))
	}

	return tx.BufferWrite(mutations)
}

func (r *SpannerRepository) FindByID(ctx context.Context, id types.OrderID) (*domain.Order, error) {
	reader, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		// Reads from Orders + OrderLines require ReadOnlyTransaction
		// for point-in-time consistency. Single() is only for one read.
		roTx := r.client.ReadOnlyTransaction()
		defer roTx.Close()
		reader = roTx
	}

	row, err := reader.ReadRow(ctx, "Orders", spanner.Key{id.String()}, orderColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to read order: %w", err)
	}

	order, err := r.scanOrder(ctx, reader, row)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *SpannerRepository) FindByUserID(ctx context.Context, userID types.UserID, offset, limit int) ([]*domain.Order, int, error) {
	reader, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		// Multiple queries (COUNT + SELECT + lines) require ReadOnlyTransaction
		// for point-in-time consistency. Single() is only for one read.
		roTx := r.client.ReadOnlyTransaction()
		defer roTx.Close()
		reader = roTx
	}

	countStmt := spanner.Statement{
		SQL:    `SELECT COUNT(*) FROM Orders WHERE UserID = @userID`,
		Params: map[string]interface{}{"userID": userID.String()},
	}

	countIter := reader.Query(ctx, countStmt)
	defer countIter.Stop()

	var total int64
	countRow, err := countIter.Next()
	if err != nil && err != iterator.Done {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}
	if countRow != nil {
		if err := countRow.Columns(&total); err != nil {
			return nil, 0, fmt.Errorf("failed to scan count: %w", err)
		}
	}

	// OrderID tiebreak keeps pagination stable for orders created in
	// the same instant.
	stmt := spanner.Statement{
		SQL: `SELECT OrderID, UserID, Status, ShippingAddress, TotalAmount, TotalCurrency, CreatedAt, UpdatedAt
		      FROM Orders@{FORCE_INDEX=OrdersByUserID}
		      WHERE UserID = @userID
		      ORDER BY CreatedAt DESC, OrderID
		      LIMIT @limit OFFSET @offset`,
		Params: map[string]interface{}{
			"userID": userID.String(),
			"limit":  int64(limit),
			"offset": int64(offset),
		},
	}

	iter := reader.Query(ctx, stmt)
	defer iter.Stop()

	var orders []*domain.Order
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to query orders: %w", err)
		}

		order, err := r.scanOrder(ctx, reader, row)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, order)
	}

	return orders, int(total), nil
}

func (r *SpannerRepository) scanOrder(ctx context.Context, reader platformspanner.ReadTransaction, row *spanner.Row) (*domain.Order, error) {
	var orderID, userID, status, shippingAddress, totalAmount, totalCurrency string
	var createdAt, updatedAt time.Time

	if err := row.Columns(&orderID, &userID, &status, &shippingAddress,
		&totalAmount, &totalCurrency, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	lines, err := r.readOrderLines(ctx, reader, orderID)
	if err != nil {
		return nil, err
	}

	parsedOrderID, err := types.ParseOrderID(orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse order id: %w", err)
	}
	parsedUserID, err := types.ParseUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user id: %w", err)
	}

	return domain.Reconstitute(
		parsedOrderID,
		parsedUserID,
		lines,
		domain.Status(status),
		shippingAddress,
		types.MustNewMoneyFromString(totalAmount, totalCurrency),
		createdAt,
		updatedAt,
	), nil
}

func (r *SpannerRepository) readOrderLines(ctx context.Context, reader platformspanner.ReadTransaction, orderID string) ([]domain.OrderLine, error) {
	iter := reader.Read(ctx, "OrderLines",
		spanner.KeyRange{
			Start: spanner.Key{orderID},
			End:   spanner.Key{orderID},
			Kind:  spanner.ClosedClosed,
		},
		[]string{"LineID", "BookID", "Quantity", "UnitAmount", "Currency"},
	)
	defer iter.Stop()

	var lines []domain.OrderLine
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read order lines: %w", err)
		}

		var lineID, bookID, unitAmount, currency string
		var quantity int64

		if err := row.Columns(&lineID, &bookID, &quantity, &unitAmount, &currency); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}

		parsedLineID, err := domain.ParseLineID(lineID)
		if err != nil {
			return nil, fmt.Errorf("failed to parse line id: %w", err)
		}
		parsedBookID, err := types.ParseBookID(bookID)
		if err != nil {
			return nil, fmt.Errorf("failed to parse book id: %w", err)
		}

		lines = append(lines, domain.ReconstituteOrderLine(
			parsedLineID,
			parsedBookID,
			int(quantity),
			types.MustNewMoneyFromString(unitAmount, currency),
		))
	}

	return lines, nil
}

var _ domain.OrderRepository = (*SpannerRepository)(nil)
