package commands

import (
	"context"
	"fmt"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// UpdateCategoryCommand replaces a category's attributes.
type UpdateCategoryCommand struct {
	CategoryID  string
	Name        string
	Description string
}

type UpdateCategoryHandler struct {
	repo domain.CategoryRepository
}

func NewUpdateCategoryHandler(repo domain.CategoryRepository) *UpdateCategoryHandler {
	return &UpdateCategoryHandler{repo: repo}
}

func (h *UpdateCategoryHandler) Handle(ctx context.Context, cmd UpdateCategoryCommand) error {
	categoryID, err := types.ParseCategoryID(cmd.CategoryID)
	if err != nil {
		return fmt.Errorf("invalid category ID: %w", err)
	}

	category, err := h.repo.FindByID(ctx, categoryID)
	if err != nil {
		return err
	}

	if err := category.Update(cmd.Name, cmd.Description); err != nil {
		return err
	}

	if err := h.repo.Save(ctx, category); err != nil {
		return fmt.Errorf("saving category: %w", err)
	}

	return nil
}
