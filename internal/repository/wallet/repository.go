package wallet

import (
	"context"

	"bookstore-storefront/internal/domain"
)

type Repository interface {
	Insert(ctx context.Context, tx domain.CoinTransaction) (*domain.CoinTransaction, error)
	ListByUser(ctx context.Context, userID string) ([]domain.CoinTransaction, error)
}
