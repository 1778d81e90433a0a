package commands

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/cart/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/cart/infrastructure/persistence"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// serializingScope runs each transaction under a mutex, giving the same
// one-writer-at-a-time guarantee the real store provides.
type serializingScope struct {
	mu sync.Mutex
}

func (s *serializingScope) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx)
}

type stubCatalog struct {
	exists map[string]bool
}

func (s stubCatalog) BookExists(_ context.Context, bookID types.BookID) (bool, error) {
	return s.exists[bookID.String()], nil
}

func newAddItemFixture(bookIDs ...types.BookID) (*AddItemHandler, *persistence.InMemoryCartRepository) {
	exists := make(map[string]bool)
	for _, id := range bookIDs {
		exists[id.String()] = true
	}
	repo := persistence.NewInMemoryCartRepository()
	handler := NewAddItemHandler(repo, stubCatalog{exists: exists}, &serializingScope{})
	return handler, repo
}

func TestAddItemCreatesCartLazily(t *testing.T) {
	bookID := types.NewBookID()
	handler, _ := newAddItemFixture(bookID)
	userID := types.NewUserID()

	cart, err := handler.Handle(context.Background(), AddItemCommand{
		UserID:   userID.String(),
		BookID:   bookID.String(),
		Quantity: 2,
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if cart.UserID != userID.String() {
		t.Errorf("user_id = %s, want %s", cart.UserID, userID.String())
	}
	if len(cart.Lines) != 1 || cart.Lines[0].Quantity != 2 {
		t.Fatalf("unexpected snapshot: %+v", cart.Lines)
	}
}

func TestAddItemUnknownBook(t *testing.T) {
	handler, _ := newAddItemFixture() // no books exist
	_, err := handler.Handle(context.Background(), AddItemCommand{
		UserID:   types.NewUserID().String(),
		BookID:   types.NewBookID().String(),
		Quantity: 1,
	})
	if !errors.Is(err, domain.ErrBookNotFound) {
		t.Errorf("err = %v, want ErrBookNotFound", err)
	}
}

func TestAddItemInvalidInput(t *testing.T) {
	bookID := types.NewBookID()
	handler, _ := newAddItemFixture(bookID)

	if _, err := handler.Handle(context.Background(), AddItemCommand{
		UserID: "garbage", BookID: bookID.String(), Quantity: 1,
	}); !errors.Is(err, types.ErrInvalidID) {
		t.Errorf("bad user id: err = %v, want ErrInvalidID", err)
	}

	if _, err := handler.Handle(context.Background(), AddItemCommand{
		UserID: types.NewUserID().String(), BookID: bookID.String(), Quantity: 0,
	}); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Errorf("zero quantity: err = %v, want ErrInvalidQuantity", err)
	}
}

func TestAddItemConcurrentMerge(t *testing.T) {
	bookID := types.NewBookID()
	handler, repo := newAddItemFixture(bookID)
	userID := types.NewUserID()

	const workers = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := handler.Handle(context.Background(), AddItemCommand{
				UserID:   userID.String(),
				BookID:   bookID.String(),
				Quantity: 1,
			})
			if err != nil {
				t.Errorf("Handle: %v", err)
			}
		}()
	}
	wg.Wait()

	cart, err := repo.FindByUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("FindByUser: %v", err)
	}
	lines := cart.Lines()
	if len(lines) != 1 {
		t.Fatalf("len(lines) = %d, want 1", len(lines))
	}
	// No add may be lost: all increments land on the single line.
	if lines[0].Quantity() != workers {
		t.Errorf("quantity = %d, want %d", lines[0].Quantity(), workers)
	}
}

func TestUpdateAndRemoveRoundTrip(t *testing.T) {
	bookID := types.NewBookID()
	addHandler, repo := newAddItemFixture(bookID)
	scope := &serializingScope{}
	updateHandler := NewUpdateItemHandler(repo, scope)
	removeHandler := NewRemoveItemHandler(repo, scope)
	userID := types.NewUserID()

	added, err := addHandler.Handle(context.Background(), AddItemCommand{
		UserID: userID.String(), BookID: bookID.String(), Quantity: 2,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	lineID := added.Lines[0].LineID

	updated, err := updateHandler.Handle(context.Background(), UpdateItemCommand{
		UserID: userID.String(), LineID: lineID, Quantity: 9,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Lines[0].Quantity != 9 {
		t.Errorf("quantity = %d, want 9", updated.Lines[0].Quantity)
	}

	removed, err := removeHandler.Handle(context.Background(), RemoveItemCommand{
		UserID: userID.String(), LineID: lineID,
	})
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(removed.Lines) != 0 {
		t.Errorf("len(lines) = %d, want 0", len(removed.Lines))
	}

	// The empty cart still exists for its user.
	if _, err := repo.FindByUser(context.Background(), userID); err != nil {
		t.Errorf("FindByUser after remove: %v", err)
	}
}

func TestUpdateItemCartNotFound(t *testing.T) {
	repo := persistence.NewInMemoryCartRepository()
	handler := NewUpdateItemHandler(repo, &serializingScope{})

	_, err := handler.Handle(context.Background(), UpdateItemCommand{
		UserID:   types.NewUserID().String(),
		LineID:   domain.NewLineID().String(),
		Quantity: 1,
	})
	if !errors.Is(err, domain.ErrCartNotFound) {
		t.Errorf("err = %v, want ErrCartNotFound", err)
	}
}
