package books

import (
	"context"

	"bookcatalog/internal/server/models"
)

type Repository interface {
	// List returns catalog entries with their authors, ordered by id.
	// authorID > 0 filters by author.
	List(ctx context.Context, authorID int64) ([]models.Book, error)
	Get(ctx context.Context, id int64) (*models.Book, error)
	Create(ctx context.Context, book *models.Book) (*models.Book, error)
	Update(ctx context.Context, book *models.Book) (*models.Book, error)
	Delete(ctx context.Context, id int64) error
}
