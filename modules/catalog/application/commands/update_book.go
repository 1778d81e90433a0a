package commands

import (
	"context"
	"fmt"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// UpdateBookCommand replaces a book's attributes.
type UpdateBookCommand struct {
	BookID      string
	Title       string
	Author      string
	ISBN        string
	Price       string
	Currency    string
	Description string
	CoverImage  string
	CategoryIDs []string
}

type UpdateBookHandler struct {
	repo domain.BookRepository
}

func NewUpdateBookHandler(repo domain.BookRepository) *UpdateBookHandler {
	return &UpdateBookHandler{repo: repo}
}

func (h *UpdateBookHandler) Handle(ctx context.Context, cmd UpdateBookCommand) error {
	bookID, err := types.ParseBookID(cmd.BookID)
	if err != nil {
		return fmt.Errorf("invalid book ID: %w", err)
	}

	price, err := types.NewMoneyFromString(cmd.Price, cmd.Currency)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidPrice, err)
	}

	categoryIDs, err := parseCategoryIDs(cmd.CategoryIDs)
	if err != nil {
		return err
	}

	book, err := h.repo.FindByID(ctx, bookID)
	if err != nil {
		return err
	}

	if book.ISBN() != cmd.ISBN {
		exists, err := h.repo.ExistsByISBN(ctx, cmd.ISBN)
		if err != nil {
			return fmt.Errorf("checking isbn: %w", err)
		}
		if exists {
			return domain.ErrDuplicateISBN
		}
	}

	if err := book.Update(cmd.Title, cmd.Author, cmd.ISBN, price, cmd.Description, cmd.CoverImage, categoryIDs); err != nil {
		return err
	}

	if err := h.repo.Save(ctx, book); err != nil {
		return fmt.Errorf("saving book: %w", err)
	}

	return nil
}
