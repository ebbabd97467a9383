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

// AuthorService lists authors and resolves the author reference of a book.
type AuthorService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAuthorService(db *sql.DB, m repomanager.RepositoryManager) *AuthorService {
	return &AuthorService{db: db, repomanager: m}
}

// List returns all authors ordered by id.
func (s *AuthorService) List(ctx context.Context) ([]models.Author, error) {
	authors, err := s.repomanager.Authors(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing authors: %w", err)
	}
	return authors, nil
}

// GetOrAdd resolves an author reference: by id when given, otherwise by
// name, creating the author when the name is new. It runs on the caller's
// DBTX so a book write and its author share one transaction.
func (s *AuthorService) GetOrAdd(ctx context.Context, tx dbx.DBTX, authorID int64, name string) (*models.Author, error) {
	repo := s.repomanager.Authors(tx)

	if authorID > 0 {
		author, err := repo.Get(ctx, authorID)
		if err == nil {
			return author, nil
		}
		if !errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("error fetching author: %w", err)
		}
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.InvalidInput("author_name is required")
	}

	author, err := repo.GetByName(ctx, name)
	if err == nil {
		return author, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("error fetching author: %w", err)
	}

	author, err = repo.Create(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("error creating author: %w", err)
	}
	return author, nil
}
