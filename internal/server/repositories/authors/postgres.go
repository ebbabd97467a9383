// Package authors provides the PostgreSQL-backed author store.
package authors

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bookcatalog/internal/apperr"
	"bookcatalog/internal/dbx"
	"bookcatalog/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Author, error) {
	query := `SELECT id, name FROM authors ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	authors := []models.Author{}
	for rows.Next() {
		var a models.Author
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return authors, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Author, error) {
	query := `SELECT id, name FROM authors WHERE id = $1`

	author := &models.Author{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&author.ID, &author.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return author, nil
}

func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*models.Author, error) {
	query := `SELECT id, name FROM authors WHERE name = $1 ORDER BY id LIMIT 1`

	author := &models.Author{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&author.ID, &author.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return author, nil
}

func (r *PostgresRepository) Create(ctx context.Context, name string) (*models.Author, error) {
	query := `INSERT INTO authors (name) VALUES ($1) RETURNING id`

	author := &models.Author{Name: name}
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&author.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return author, nil
}
