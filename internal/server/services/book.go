package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bookcatalog/internal/apperr"
	"bookcatalog/internal/dbx"
	"bookcatalog/internal/server/models"
	"bookcatalog/internal/server/repositories/repomanager"
)

// BookInput is the write payload for a book. AuthorID wins over
// AuthorName when both are present and the id exists.
type BookInput struct {
	Title      string
	Year       int
	Status     models.BookStatus
	AuthorID   int64
	AuthorName string
}

// BookService manages the catalog. Writes resolve the author reference
// through AuthorService inside the same transaction as the book row.
type BookService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	authors     *AuthorService
}

func NewBookService(db *sql.DB, m repomanager.RepositoryManager, authors *AuthorService) *BookService {
	return &BookService{db: db, repomanager: m, authors: authors}
}

// List returns catalog entries, optionally filtered by author.
func (s *BookService) List(ctx context.Context, authorID int64) ([]models.Book, error) {
	result, err := s.repomanager.Books(s.db).List(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("error listing books: %w", err)
	}
	return result, nil
}

// Get returns a single book with its author.
func (s *BookService) Get(ctx context.Context, id int64) (*models.Book, error) {
	book, err := s.repomanager.Books(s.db).Get(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.NotFound("Book not found")
		}
		return nil, fmt.Errorf("error fetching book: %w", err)
	}
	return book, nil
}

// Add creates a book, creating its author on the fly if needed.
func (s *BookService) Add(ctx context.Context, input BookInput) (*models.Book, error) {
	if err := validateBookInput(&input); err != nil {
		return nil, err
	}

	var created *models.Book
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		author, err := s.authors.GetOrAdd(ctx, tx, input.AuthorID, input.AuthorName)
		if err != nil {
			return err
		}
		book := &models.Book{
			Title:    input.Title,
			Year:     input.Year,
			Status:   input.Status,
			AuthorID: author.ID,
			Author:   author,
		}
		created, err = s.repomanager.Books(tx).Create(ctx, book)
		if err != nil {
			return fmt.Errorf("error creating book: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update replaces the book's fields, resolving the author the same way
// Add does.
func (s *BookService) Update(ctx context.Context, id int64, input BookInput) (*models.Book, error) {
	if err := validateBookInput(&input); err != nil {
		return nil, err
	}

	var updated *models.Book
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		author, err := s.authors.GetOrAdd(ctx, tx, input.AuthorID, input.AuthorName)
		if err != nil {
			return err
		}
		book := &models.Book{
			ID:       id,
			Title:    input.Title,
			Year:     input.Year,
			Status:   input.Status,
			AuthorID: author.ID,
			Author:   author,
		}
		updated, err = s.repomanager.Books(tx).Update(ctx, book)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return apperr.NotFound("Book not found")
			}
			return fmt.Errorf("error updating book: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a book from the catalog.
func (s *BookService) Delete(ctx context.Context, id int64) error {
	if err := s.repomanager.Books(s.db).Delete(ctx, id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.NotFound("Book not found")
		}
		return fmt.Errorf("error deleting book: %w", err)
	}
	return nil
}

func validateBookInput(input *BookInput) error {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return apperr.InvalidInput("title must not be empty")
	}
	if !input.Status.Valid() {
		return apperr.InvalidInput("status must be one of: published, draft")
	}
	if input.AuthorID <= 0 && strings.TrimSpace(input.AuthorName) == "" {
		return apperr.InvalidInput("author_name is required")
	}
	return nil
}
