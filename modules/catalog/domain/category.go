package domain

import (
	"time"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// Category groups catalog books for browsing.
type Category struct {
	id          types.CategoryID
	name        string
	description string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewCategory creates a new category with validated inputs.
func NewCategory(name, description string) (*Category, error) {
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	return &Category{
		id:          types.NewCategoryID(),
		name:        name,
		description: description,
		createdAt:   time.Now().UTC(),
		updatedAt:   time.Now().UTC(),
	}, nil
}

// ReconstituteCategory rebuilds a category from persistence.
func ReconstituteCategory(id types.CategoryID, name, description string, createdAt, updatedAt time.Time) *Category {
	return &Category{
		id:          id,
		name:        name,
		description: description,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (c *Category) ID() types.CategoryID { return c.id }
func (c *Category) Name() string         { return c.name }
func (c *Category) Description() string  { return c.description }
func (c *Category) CreatedAt() time.Time { return c.createdAt }
func (c *Category) UpdatedAt() time.Time { return c.updatedAt }

// Update replaces the category's attributes with validated inputs.
func (c *Category) Update(name, description string) error {
	if name == "" {
		return ErrCategoryNameRequired
	}
	c.name = name
	c.description = description
	c.updatedAt = time.Now().UTC()
	return nil
}
