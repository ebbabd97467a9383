package authors

import (
	"context"

	"bookcatalog/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Author, error)
	Get(ctx context.Context, id int64) (*models.Author, error)
	GetByName(ctx context.Context, name string) (*models.Author, error)
	Create(ctx context.Context, name string) (*models.Author, error)
}
