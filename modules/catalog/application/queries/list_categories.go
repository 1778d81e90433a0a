package queries

import (
	"context"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog/domain"
)

// CategoryListDTO contains a paginated list of categories.
type CategoryListDTO struct {
	Categories []*CategoryDTO `json:"categories"`
	TotalCount int            `json:"total_count"`
	Offset     int            `json:"offset"`
	Limit      int            `json:"limit"`
}

// ListCategoriesQuery retrieves a page of categories.
type ListCategoriesQuery struct {
	Offset int
	Limit  int
}

type ListCategoriesHandler struct {
	repo domain.CategoryRepository
}

func NewListCategoriesHandler(repo domain.CategoryRepository) *ListCategoriesHandler {
	return &ListCategoriesHandler{repo: repo}
}

func (h *ListCategoriesHandler) Handle(ctx context.Context, query ListCategoriesQuery) (*CategoryListDTO, error) {
	limit := clampLimit(query.Limit)
	offset := clampOffset(query.Offset)

	categories, total, err := h.repo.FindAll(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]*CategoryDTO, len(categories))
	for i, category := range categories {
		dtos[i] = toCategoryDTO(category)
	}

	return &CategoryListDTO{
		Categories: dtos,
		TotalCount: total,
		Offset:     offset,
		Limit:      limit,
	}, nil
}
