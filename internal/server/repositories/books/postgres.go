// Package books provides the PostgreSQL-backed book store.
package books

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

const bookColumns = `b.id, b.title, b.year, b.status, b.author_id, a.id, a.name`

func scanBook(row interface{ Scan(...any) error }) (*models.Book, error) {
	book := &models.Book{Author: &models.Author{}}
	err := row.Scan(&book.ID, &book.Title, &book.Year, &book.Status,
		&book.AuthorID, &book.Author.ID, &book.Author.Name)
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (r *PostgresRepository) List(ctx context.Context, authorID int64) ([]models.Book, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books b
		JOIN authors a ON a.id = b.author_id
		WHERE ($1 = 0 OR b.author_id = $1)
		ORDER BY b.id`

	rows, err := r.db.QueryContext(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Book, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books b
		JOIN authors a ON a.id = b.author_id
		WHERE b.id = $1`

	book, err := scanBook(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return book, nil
}

func (r *PostgresRepository) Create(ctx context.Context, book *models.Book) (*models.Book, error) {
	query := `
		INSERT INTO books (title, year, status, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		book.Title, book.Year, book.Status, book.AuthorID).Scan(&book.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return book, nil
}

func (r *PostgresRepository) Update(ctx context.Context, book *models.Book) (*models.Book, error) {
	query := `
		UPDATE books
		SET title = $1, year = $2, status = $3, author_id = $4
		WHERE id = $5`

	res, err := r.db.ExecContext(ctx, query,
		book.Title, book.Year, book.Status, book.AuthorID, book.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, apperr.ErrNotFound
	}
	return book, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
