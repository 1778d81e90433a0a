package domain

import "fmt"

// Search filter fields form a closed set. An unknown field name is a
// configuration error, not a no-op: silently ignoring a typo would make a
// search return unfiltered results.
const (
	FilterFieldTitle  = "title"
	FilterFieldAuthor = "author"
)

// filterFields fixes the order in which active filters appear in a
// criteria, keeping composed queries deterministic.
var filterFields = []string{FilterFieldTitle, FilterFieldAuthor}

// FieldFilter is one active sub-predicate: the field's value must equal
// one of Values (case-sensitive, exact match).
type FieldFilter struct {
	Field  string
	Values []string
}

// SearchCriteria is a composed search predicate over the catalog.
// Active field filters are combined with logical AND; an empty criteria
// matches every (non-deleted) book.
type SearchCriteria struct {
	filters []FieldFilter
}

// BuildSearchCriteria composes a criteria from a field-to-values mapping.
// An empty or absent value list imposes no constraint for that field.
// Returns ErrUnknownFilterField for any field outside the closed set,
// producing no partial criteria.
func BuildSearchCriteria(params map[string][]string) (SearchCriteria, error) {
	for field := range params {
		if !isFilterField(field) {
			return SearchCriteria{}, fmt.Errorf("%w: %q", ErrUnknownFilterField, field)
		}
	}

	var filters []FieldFilter
	for _, field := range filterFields {
		values := params[field]
		if len(values) == 0 {
			continue
		}
		filters = append(filters, FieldFilter{
			Field:  field,
			Values: append([]string(nil), values...),
		})
	}
	return SearchCriteria{filters: filters}, nil
}

// Filters returns the active field filters in deterministic order.
func (c SearchCriteria) Filters() []FieldFilter { return c.filters }

// IsEmpty reports whether the criteria imposes no constraint.
func (c SearchCriteria) IsEmpty() bool { return len(c.filters) == 0 }

// Matches evaluates the criteria against a book in-process.
// Repositories that can push the predicate down (SQL IN lists) should do
// so instead; this is the reference semantics both must agree on.
func (c SearchCriteria) Matches(book *Book) bool {
	for _, f := range c.filters {
		if !containsString(f.Values, fieldValue(book, f.Field)) {
			return false
		}
	}
	return true
}

func fieldValue(book *Book, field string) string {
	switch field {
	case FilterFieldTitle:
		return book.Title()
	case FilterFieldAuthor:
		return book.Author()
	default:
		return ""
	}
}

func isFilterField(field string) bool {
	for _, f := range filterFields {
		if f == field {
			return true
		}
	}
	return false
}

func containsString(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
