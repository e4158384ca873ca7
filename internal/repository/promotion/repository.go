package promotion

import (
	"context"

	"bookstore-storefront/internal/domain"
)

type Repository interface {
	ListActive(ctx context.Context) ([]domain.Promotion, error)
	IncrementUsage(ctx context.Context, id string) error
}
