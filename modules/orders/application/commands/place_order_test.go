package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/orders/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/orders/infrastructure/persistence"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/events"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

type passthroughScope struct{}

func (passthroughScope) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeCart is a CartSource backed by a map of user carts.
type fakeCart struct {
	lines   map[string][]CartLine
	cleared map[string]bool
}

func newFakeCart() *fakeCart {
	return &fakeCart{
		lines:   make(map[string][]CartLine),
		cleared: make(map[string]bool),
	}
}

func (c *fakeCart) Lines(_ context.Context, userID types.UserID) ([]CartLine, error) {
	lines, ok := c.lines[userID.String()]
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	return lines, nil
}

func (c *fakeCart) Clear(_ context.Context, userID types.UserID) error {
	delete(c.lines, userID.String())
	c.cleared[userID.String()] = true
	return nil
}

// fakePricer resolves prices from a mutable map, so tests can change a
// price after placement.
type fakePricer struct {
	prices map[string]types.Money
}

func (p *fakePricer) PriceOf(_ context.Context, bookID types.BookID) (types.Money, error) {
	price, ok := p.prices[bookID.String()]
	if !ok {
		return types.Money{}, errors.New("price unavailable")
	}
	return price, nil
}

type capturePublisher struct {
	published []events.Event
}

func (p *capturePublisher) Publish(_ context.Context, evts ...events.Event) error {
	p.published = append(p.published, evts...)
	return nil
}

type placeOrderFixture struct {
	handler   *PlaceOrderHandler
	repo      *persistence.InMemoryRepository
	cart      *fakeCart
	pricer    *fakePricer
	publisher *capturePublisher
}

func newPlaceOrderFixture() *placeOrderFixture {
	repo := persistence.NewInMemoryRepository()
	cart := newFakeCart()
	pricer := &fakePricer{prices: make(map[string]types.Money)}
	publisher := &capturePublisher{}
	return &placeOrderFixture{
		handler:   NewPlaceOrderHandler(repo, cart, pricer, passthroughScope{}, publisher),
		repo:      repo,
		cart:      cart,
		pricer:    pricer,
		publisher: publisher,
	}
}

func usd(t *testing.T, amount string) types.Money {
	t.Helper()
	return types.MustNewMoneyFromString(amount, "USD")
}

func TestPlaceOrderSnapshotsCart(t *testing.T) {
	f := newPlaceOrderFixture()
	userID := types.NewUserID()
	bookA, bookB := types.NewBookID(), types.NewBookID()

	f.pricer.prices[bookA.String()] = usd(t, "12.99")
	f.pricer.prices[bookB.String()] = usd(t, "0.01")
	f.cart.lines[userID.String()] = []CartLine{
		{BookID: bookA, Quantity: 3},
		{BookID: bookB, Quantity: 5},
	}

	orderID, err := f.handler.Handle(context.Background(), PlaceOrderCommand{
		UserID:          userID.String(),
		ShippingAddress: "221B Baker Street",
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	parsedID, err := types.ParseOrderID(orderID)
	if err != nil {
		t.Fatalf("ParseOrderID: %v", err)
	}
	order, err := f.repo.FindByID(context.Background(), parsedID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}

	if len(order.Lines()) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(order.Lines()))
	}
	// 3 x 12.99 + 5 x 0.01 = 39.02 exactly.
	if !order.Total().Equals(usd(t, "39.02")) {
		t.Errorf("total = %s, want 39.02", order.Total().Amount().String())
	}
	if order.Status() != domain.StatusPending {
		t.Errorf("status = %s, want PENDING", order.Status())
	}
	if order.ShippingAddress() != "221B Baker Street" {
		t.Errorf("address = %q", order.ShippingAddress())
	}

	// The cart is consumed by placement.
	if !f.cart.cleared[userID.String()] {
		t.Error("cart should be cleared after placement")
	}
	if len(f.publisher.published) != 1 {
		t.Fatalf("len(published) = %d, want 1", len(f.publisher.published))
	}
	if f.publisher.published[0].AggregateID() != orderID {
		t.Errorf("event aggregate = %s, want %s", f.publisher.published[0].AggregateID(), orderID)
	}
}

func TestPlaceOrderAbsentCart(t *testing.T) {
	f := newPlaceOrderFixture()

	_, err := f.handler.Handle(context.Background(), PlaceOrderCommand{
		UserID:          types.NewUserID().String(),
		ShippingAddress: "somewhere",
	})
	if !errors.Is(err, domain.ErrCartNotFound) {
		t.Errorf("err = %v, want ErrCartNotFound", err)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	f := newPlaceOrderFixture()
	userID := types.NewUserID()
	f.cart.lines[userID.String()] = []CartLine{}

	_, err := f.handler.Handle(context.Background(), PlaceOrderCommand{
		UserID:          userID.String(),
		ShippingAddress: "somewhere",
	})
	// An empty cart is indistinguishable from a missing one.
	if !errors.Is(err, domain.ErrCartNotFound) {
		t.Errorf("err = %v, want ErrCartNotFound", err)
	}
	if len(f.publisher.published) != 0 {
		t.Error("no event should be published for a failed placement")
	}
}

func TestPlaceOrderBlankAddress(t *testing.T) {
	f := newPlaceOrderFixture()
	userID := types.NewUserID()
	bookID := types.NewBookID()
	f.pricer.prices[bookID.String()] = usd(t, "5.00")
	f.cart.lines[userID.String()] = []CartLine{{BookID: bookID, Quantity: 1}}

	_, err := f.handler.Handle(context.Background(), PlaceOrderCommand{
		UserID:          userID.String(),
		ShippingAddress: "  ",
	})
	if !errors.Is(err, domain.ErrBlankShippingAddress) {
		t.Errorf("err = %v, want ErrBlankShippingAddress", err)
	}
	if f.cart.cleared[userID.String()] {
		t.Error("cart must survive a failed placement")
	}
}

func TestPlaceOrderFreezesPrices(t *testing.T) {
	f := newPlaceOrderFixture()
	userID := types.NewUserID()
	bookID := types.NewBookID()

	f.pricer.prices[bookID.String()] = usd(t, "10.00")
	f.cart.lines[userID.String()] = []CartLine{{BookID: bookID, Quantity: 1}}

	firstID, err := f.handler.Handle(context.Background(), PlaceOrderCommand{
		UserID:          userID.String(),
		ShippingAddress: "addr",
	})
	if err != nil {
		t.Fatalf("first placement: %v", err)
	}

	// Catalog price changes after the first placement.
	f.pricer.prices[bookID.String()] = usd(t, "99.99")
	f.cart.lines[userID.String()] = []CartLine{{BookID: bookID, Quantity: 1}}

	secondID, err := f.handler.Handle(context.Background(), PlaceOrderCommand{
		UserID:          userID.String(),
		ShippingAddress: "addr",
	})
	if err != nil {
		t.Fatalf("second placement: %v", err)
	}

	firstOrder := mustFindOrder(t, f.repo, firstID)
	secondOrder := mustFindOrder(t, f.repo, secondID)

	if !firstOrder.Total().Equals(usd(t, "10.00")) {
		t.Errorf("first total = %s, want the price at its placement time", firstOrder.Total().Amount().String())
	}
	if !secondOrder.Total().Equals(usd(t, "99.99")) {
		t.Errorf("second total = %s, want 99.99", secondOrder.Total().Amount().String())
	}
}

func TestUpdateStatus(t *testing.T) {
	f := newPlaceOrderFixture()
	userID := types.NewUserID()
	bookID := types.NewBookID()
	f.pricer.prices[bookID.String()] = usd(t, "5.00")
	f.cart.lines[userID.String()] = []CartLine{{BookID: bookID, Quantity: 1}}

	orderID, err := f.handler.Handle(context.Background(), PlaceOrderCommand{
		UserID:          userID.String(),
		ShippingAddress: "addr",
	})
	if err != nil {
		t.Fatalf("placement: %v", err)
	}

	statusHandler := NewUpdateStatusHandler(f.repo, passthroughScope{}, f.publisher)

	if err := statusHandler.Handle(context.Background(), UpdateStatusCommand{
		OrderID: orderID,
		Status:  "DELIVERED",
	}); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if got := mustFindOrder(t, f.repo, orderID).Status(); got != domain.StatusDelivered {
		t.Errorf("status = %s, want DELIVERED", got)
	}

	if err := statusHandler.Handle(context.Background(), UpdateStatusCommand{
		OrderID: orderID,
		Status:  "SHIPPED",
	}); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("err = %v, want ErrInvalidStatus", err)
	}

	if err := statusHandler.Handle(context.Background(), UpdateStatusCommand{
		OrderID: types.NewOrderID().String(),
		Status:  "COMPLETED",
	}); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("err = %v, want ErrOrderNotFound", err)
	}
}

func mustFindOrder(t *testing.T, repo *persistence.InMemoryRepository, rawID string) *domain.Order {
	t.Helper()
	id, err := types.ParseOrderID(rawID)
	if err != nil {
		t.Fatalf("ParseOrderID: %v", err)
	}
	order, err := repo.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	return order
}
