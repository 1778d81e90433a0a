package commands

import (
	"context"
	"fmt"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog/domain"
)

// CreateCategoryCommand adds a category to the catalog.
type CreateCategoryCommand struct {
	Name        string
	Description string
}

type CreateCategoryHandler struct {
	repo domain.CategoryRepository
}

func NewCreateCategoryHandler(repo domain.CategoryRepository) *CreateCategoryHandler {
	return &CreateCategoryHandler{repo: repo}
}

func (h *CreateCategoryHandler) Handle(ctx context.Context, cmd CreateCategoryCommand) (string, error) {
	category, err := domain.NewCategory(cmd.Name, cmd.Description)
	if err != nil {
		return "", err
	}

	if err := h.repo.Save(ctx, category); err != nil {
		return "", fmt.Errorf("saving category: %w", err)
	}

	return category.ID().String(), nil
}
