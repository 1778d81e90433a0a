package domain

import (
	"errors"
	"testing"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

func testBook(t *testing.T, title, author string) *Book {
	t.Helper()
	book, err := NewBook(title, author, "978-0000000000", types.MustNewMoneyFromString("9.99", "USD"), "", "", nil)
	if err != nil {
		t.Fatalf("NewBook: %v", err)
	}
	return book
}

func TestBuildSearchCriteriaEmpty(t *testing.T) {
	criteria, err := BuildSearchCriteria(nil)
	if err != nil {
		t.Fatalf("BuildSearchCriteria: %v", err)
	}
	if !criteria.IsEmpty() {
		t.Error("criteria built from nothing should be empty")
	}

	// An empty criteria matches everything.
	if !criteria.Matches(testBook(t, "Dune", "Frank Herbert")) {
		t.Error("empty criteria should match any book")
	}
}

func TestBuildSearchCriteriaIgnoresEmptyValueLists(t *testing.T) {
	criteria, err := BuildSearchCriteria(map[string][]string{"title": {}})
	if err != nil {
		t.Fatalf("BuildSearchCriteria: %v", err)
	}
	if !criteria.IsEmpty() {
		t.Error("a filter with no values should impose no constraint")
	}
}

func TestBuildSearchCriteriaUnknownField(t *testing.T) {
	_, err := BuildSearchCriteria(map[string][]string{
		"title": {"Dune"},
		"isbn":  {"978-0441013593"},
	})
	if !errors.Is(err, ErrUnknownFilterField) {
		t.Errorf("err = %v, want ErrUnknownFilterField", err)
	}
}

func TestBuildSearchCriteriaDeterministicOrder(t *testing.T) {
	criteria, err := BuildSearchCriteria(map[string][]string{
		"author": {"Frank Herbert"},
		"title":  {"Dune"},
	})
	if err != nil {
		t.Fatalf("BuildSearchCriteria: %v", err)
	}

	filters := criteria.Filters()
	if len(filters) != 2 {
		t.Fatalf("len(filters) = %d, want 2", len(filters))
	}
	// Field order is fixed regardless of map iteration order.
	if filters[0].Field != FilterFieldTitle || filters[1].Field != FilterFieldAuthor {
		t.Errorf("filter order = [%s %s], want [title author]", filters[0].Field, filters[1].Field)
	}
}

func TestSearchCriteriaMatchesAndSemantics(t *testing.T) {
	criteria, err := BuildSearchCriteria(map[string][]string{
		"title":  {"Dune", "Hyperion"},
		"author": {"Frank Herbert"},
	})
	if err != nil {
		t.Fatalf("BuildSearchCriteria: %v", err)
	}

	tests := []struct {
		name   string
		title  string
		author string
		want   bool
	}{
		{"both filters satisfied", "Dune", "Frank Herbert", true},
		{"alternate title value", "Hyperion", "Frank Herbert", true},
		{"author mismatch", "Dune", "Dan Simmons", false},
		{"title mismatch", "Foundation", "Frank Herbert", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := criteria.Matches(testBook(t, tt.title, tt.author))
			if got != tt.want {
				t.Errorf("Matches(%s/%s) = %v, want %v", tt.title, tt.author, got, tt.want)
			}
		})
	}
}

func TestSearchCriteriaCopiesValues(t *testing.T) {
	values := []string{"Dune"}
	criteria, err := BuildSearchCriteria(map[string][]string{"title": values})
	if err != nil {
		t.Fatalf("BuildSearchCriteria: %v", err)
	}

	values[0] = "mutated"
	if !criteria.Matches(testBook(t, "Dune", "Frank Herbert")) {
		t.Error("criteria should not observe caller mutations of the input slice")
	}
}
