package book

import (
	"context"

	"bookstore-storefront/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Book, error)
	GetByID(ctx context.Context, id string) (*domain.Book, error)
	Upsert(ctx context.Context, b domain.Book) (*domain.Book, error)
}
