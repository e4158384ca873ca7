package cart

import (
	"context"

	"bookstore-storefront/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, userID string) (*domain.Cart, error)
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	AddLine(ctx context.Context, cartID string, book domain.Book, quantity int) error
	ChangeLineQuantity(ctx context.Context, cartID, lineID string, quantity int) (*domain.CartLine, error)
	RemoveLine(ctx context.Context, cartID, lineID string) error
	Empty(ctx context.Context, cartID string) error
}
