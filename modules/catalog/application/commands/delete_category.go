package commands

import (
	"context"
	"fmt"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// DeleteCategoryCommand removes a category. Books keep their tag set;
// a dangling category id on a book is simply never resolved again.
type DeleteCategoryCommand struct {
	CategoryID string
}

type DeleteCategoryHandler struct {
	repo domain.CategoryRepository
}

func NewDeleteCategoryHandler(repo domain.CategoryRepository) *DeleteCategoryHandler {
	return &DeleteCategoryHandler{repo: repo}
}

func (h *DeleteCategoryHandler) Handle(ctx context.Context, cmd DeleteCategoryCommand) error {
	categoryID, err := types.ParseCategoryID(cmd.CategoryID)
	if err != nil {
		return fmt.Errorf("invalid category ID: %w", err)
	}

	if _, err := h.repo.FindByID(ctx, categoryID); err != nil {
		return err
	}

	if err := h.repo.Delete(ctx, categoryID); err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	return nil
}
