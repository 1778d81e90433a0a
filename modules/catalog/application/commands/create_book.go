// Package commands contains write use cases for the catalog module.
package commands

import (
	"context"
	"fmt"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// CreateBookCommand adds a book to the catalog.
// Price is the exact decimal amount as a string, e.g. "12.99".
type CreateBookCommand struct {
	Title       string
	Author      string
	ISBN        string
	Price       string
	Currency    string
	Description string
	CoverImage  string
	CategoryIDs []string
}

type CreateBookHandler struct {
	repo domain.BookRepository
}

func NewCreateBookHandler(repo domain.BookRepository) *CreateBookHandler {
	return &CreateBookHandler{repo: repo}
}

func (h *CreateBookHandler) Handle(ctx context.Context, cmd CreateBookCommand) (string, error) {
	price, err := types.NewMoneyFromString(cmd.Price, cmd.Currency)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidPrice, err)
	}

	categoryIDs, err := parseCategoryIDs(cmd.CategoryIDs)
	if err != nil {
		return "", err
	}

	exists, err := h.repo.ExistsByISBN(ctx, cmd.ISBN)
	if err != nil {
		return "", fmt.Errorf("checking isbn: %w", err)
	}
	if exists {
		return "", domain.ErrDuplicateISBN
	}

	book, err := domain.NewBook(cmd.Title, cmd.Author, cmd.ISBN, price, cmd.Description, cmd.CoverImage, categoryIDs)
	if err != nil {
		return "", err
	}

	if err := h.repo.Save(ctx, book); err != nil {
		return "", fmt.Errorf("saving book: %w", err)
	}

	return book.ID().String(), nil
}

func parseCategoryIDs(raw []string) ([]types.CategoryID, error) {
	ids := make([]types.CategoryID, 0, len(raw))
	for _, s := range raw {
		id, err := types.ParseCategoryID(s)
		if err != nil {
			return nil, fmt.Errorf("invalid category ID %q: %w", s, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
