package commands

import (
	"context"
	"fmt"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// DeleteBookCommand soft-deletes a book: it disappears from every read
// but the row survives for order history.
type DeleteBookCommand struct {
	BookID string
}

type DeleteBookHandler struct {
	repo domain.BookRepository
}

func NewDeleteBookHandler(repo domain.BookRepository) *DeleteBookHandler {
	return &DeleteBookHandler{repo: repo}
}

func (h *DeleteBookHandler) Handle(ctx context.Context, cmd DeleteBookCommand) error {
	bookID, err := types.ParseBookID(cmd.BookID)
	if err != nil {
		return fmt.Errorf("invalid book ID: %w", err)
	}

	// FindByID first so deleting an unknown (or already deleted) book
	// reports ErrBookNotFound instead of succeeding silently.
	if _, err := h.repo.FindByID(ctx, bookID); err != nil {
		return err
	}

	if err := h.repo.Delete(ctx, bookID); err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}

	return nil
}
