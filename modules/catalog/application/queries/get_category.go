package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// CategoryDTO is a read model for category data.
type CategoryDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GetCategoryQuery retrieves a category by ID.
type GetCategoryQuery struct {
	CategoryID string
}

type GetCategoryHandler struct {
	repo domain.CategoryRepository
}

func NewGetCategoryHandler(repo domain.CategoryRepository) *GetCategoryHandler {
	return &GetCategoryHandler{repo: repo}
}

func (h *GetCategoryHandler) Handle(ctx context.Context, query GetCategoryQuery) (*CategoryDTO, error) {
	categoryID, err := types.ParseCategoryID(query.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid category ID: %w", err)
	}

	category, err := h.repo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	return toCategoryDTO(category), nil
}

func toCategoryDTO(category *domain.Category) *CategoryDTO {
	return &CategoryDTO{
		ID:          category.ID().String(),
		Name:        category.Name(),
		Description: category.Description(),
		CreatedAt:   category.CreatedAt(),
		UpdatedAt:   category.UpdatedAt(),
	}
}
