package domain

import (
	"errors"
	"testing"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

func TestNewBookValidation(t *testing.T) {
	price := types.MustNewMoneyFromString("9.99", "USD")

	tests := []struct {
		name    string
		title   string
		author  string
		isbn    string
		price   types.Money
		wantErr error
	}{
		{"missing title", "", "A", "isbn", price, ErrTitleRequired},
		{"missing author", "T", "", "isbn", price, ErrAuthorRequired},
		{"missing isbn", "T", "A", "", price, ErrISBNRequired},
		{"negative price", "T", "A", "isbn", types.MustNewMoneyFromString("-1.00", "USD"), ErrNegativePrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBook(tt.title, tt.author, tt.isbn, tt.price, "", "", nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewBookZeroPriceAllowed(t *testing.T) {
	if _, err := NewBook("Free Book", "A", "isbn", types.MustNewMoneyFromString("0", "USD"), "", "", nil); err != nil {
		t.Errorf("zero price should be valid, got %v", err)
	}
}

func TestBookUpdate(t *testing.T) {
	book, err := NewBook("Old", "A", "isbn-1", types.MustNewMoneyFromString("9.99", "USD"), "", "", nil)
	if err != nil {
		t.Fatalf("NewBook: %v", err)
	}

	categoryID := types.NewCategoryID()
	newPrice := types.MustNewMoneyFromString("14.50", "USD")
	if err := book.Update("New", "B", "isbn-2", newPrice, "desc", "cover.png", []types.CategoryID{categoryID}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if book.Title() != "New" || book.Author() != "B" || book.ISBN() != "isbn-2" {
		t.Errorf("unexpected fields after update: %s/%s/%s", book.Title(), book.Author(), book.ISBN())
	}
	if !book.Price().Equals(newPrice) {
		t.Errorf("price = %s, want 14.50", book.Price().Amount().String())
	}
	if !book.HasCategory(categoryID) {
		t.Error("book should have the assigned category")
	}
}

func TestBookUpdateValidates(t *testing.T) {
	book, err := NewBook("Title", "A", "isbn", types.MustNewMoneyFromString("9.99", "USD"), "", "", nil)
	if err != nil {
		t.Fatalf("NewBook: %v", err)
	}

	if err := book.Update("", "A", "isbn", book.Price(), "", "", nil); !errors.Is(err, ErrTitleRequired) {
		t.Errorf("err = %v, want ErrTitleRequired", err)
	}
	// Failed update leaves the book untouched.
	if book.Title() != "Title" {
		t.Errorf("title = %s, want Title", book.Title())
	}
}
