package main

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/internal/platform/eventbus"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/cart"
	cartcommands "github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/cart/application/commands"
	cartdomain "github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/cart/domain"
	cartpersistence "github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/cart/infrastructure/persistence"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog"
	catalogdomain "github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog/domain"
	catalogpersistence "github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog/infrastructure/persistence"
	orderscommands "github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/orders/application/commands"
	orderspersistence "github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/orders/infrastructure/persistence"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

type passthroughScope struct{}

func (passthroughScope) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// checkoutFixture wires the real cart and catalog modules to the order
// placement handler through the same adapters main uses, over in-memory
// repositories.
type checkoutFixture struct {
	userID     types.UserID
	bookRepo   *catalogpersistence.InMemoryBookRepository
	cartModule cart.Module
	addItem    *cartcommands.AddItemHandler
	removeItem *cartcommands.RemoveItemHandler
	ordersRepo *orderspersistence.InMemoryRepository
	placeOrder *orderscommands.PlaceOrderHandler
}

func newCheckoutFixture() *checkoutFixture {
	scope := passthroughScope{}
	bookRepo := catalogpersistence.NewInMemoryBookRepository()

	catalogModule := catalog.New(catalog.Config{
		BookRepository:     bookRepo,
		CategoryRepository: catalogpersistence.NewInMemoryCategoryRepository(),
	})

	cartRepo := cartpersistence.NewInMemoryCartRepository()
	cartModule := cart.New(cart.Config{
		Repository:  cartRepo,
		BookCatalog: bookCatalogAdapter{catalog: catalogModule},
		TxScope:     scope,
	})

	ordersRepo := orderspersistence.NewInMemoryRepository()
	placeOrder := orderscommands.NewPlaceOrderHandler(
		ordersRepo,
		cartSourceAdapter{cart: cartModule},
		bookPricerAdapter{catalog: catalogModule},
		scope,
		eventbus.New(slog.Default()),
	)

	return &checkoutFixture{
		userID:     types.NewUserID(),
		bookRepo:   bookRepo,
		cartModule: cartModule,
		addItem:    cartcommands.NewAddItemHandler(cartRepo, bookCatalogAdapter{catalog: catalogModule}, scope),
		removeItem: cartcommands.NewRemoveItemHandler(cartRepo, scope),
		ordersRepo: ordersRepo,
		placeOrder: placeOrder,
	}
}

func (f *checkoutFixture) createBook(t *testing.T, title, isbn, price string) types.BookID {
	t.Helper()
	book, err := catalogdomain.NewBook(title, "Author", isbn, types.MustNewMoneyFromString(price, "USD"), "", "", nil)
	if err != nil {
		t.Fatalf("NewBook: %v", err)
	}
	if err := f.bookRepo.Save(context.Background(), book); err != nil {
		t.Fatalf("Save: %v", err)
	}
	return book.ID()
}

func (f *checkoutFixture) addToCart(t *testing.T, bookID types.BookID, qty int) string {
	t.Helper()
	dto, err := f.addItem.Handle(context.Background(), cartcommands.AddItemCommand{
		UserID:   f.userID.String(),
		BookID:   bookID.String(),
		Quantity: qty,
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	for _, line := range dto.Lines {
		if line.BookID == bookID.String() {
			return line.LineID
		}
	}
	t.Fatalf("no line for book %s in cart", bookID.String())
	return ""
}

func TestPlaceOrderConsumesCart(t *testing.T) {
	f := newCheckoutFixture()
	bookID := f.createBook(t, "Dune", "9780441013593", "12.99")
	f.addToCart(t, bookID, 2)

	if _, err := f.placeOrder.Handle(context.Background(), orderscommands.PlaceOrderCommand{
		UserID:          f.userID.String(),
		ShippingAddress: "1 Main St",
	}); err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	// The cart was deleted with the placement; the next read reports it
	// missing, and a fresh one would be created lazily on the next add.
	if _, err := f.cartModule.CartForUser(context.Background(), f.userID.String()); !errors.Is(err, cartdomain.ErrCartNotFound) {
		t.Errorf("CartForUser after placement err = %v, want ErrCartNotFound", err)
	}
}

func TestRemoveItemThenPlaceOrder(t *testing.T) {
	f := newCheckoutFixture()
	bookA := f.createBook(t, "Dune", "9780441013593", "7.50")
	bookB := f.createBook(t, "Hyperion", "9780553283686", "3.99")
	f.addToCart(t, bookA, 5)
	lineB := f.addToCart(t, bookB, 10)

	if _, err := f.removeItem.Handle(context.Background(), cartcommands.RemoveItemCommand{
		UserID: f.userID.String(),
		LineID: lineB,
	}); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}

	orderIDRaw, err := f.placeOrder.Handle(context.Background(), orderscommands.PlaceOrderCommand{
		UserID:          f.userID.String(),
		ShippingAddress: "1 Main St",
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	orderID, err := types.ParseOrderID(orderIDRaw)
	if err != nil {
		t.Fatalf("ParseOrderID(%q): %v", orderIDRaw, err)
	}
	order, err := f.ordersRepo.FindByID(context.Background(), orderID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}

	lines := order.Lines()
	if len(lines) != 1 {
		t.Fatalf("len(lines) = %d, want 1", len(lines))
	}
	if lines[0].BookID() != bookA {
		t.Errorf("line book = %s, want %s", lines[0].BookID().String(), bookA.String())
	}
	if lines[0].Quantity() != 5 {
		t.Errorf("line quantity = %d, want 5", lines[0].Quantity())
	}

	want := types.MustNewMoneyFromString("37.50", "USD")
	if !order.Total().Equals(want) {
		t.Errorf("total = %s, want 37.50", order.Total().Amount().String())
	}
}
