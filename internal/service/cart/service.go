package cart

import (
	"context"
	"errors"
	"strings"

	"bookstore-storefront/internal/domain"
)

type Service struct {
	repo     cartRepo
	bookRepo bookRepo
}

type cartRepo interface {
	Create(ctx context.Context, userID string) (*domain.Cart, error)
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	AddLine(ctx context.Context, cartID string, book domain.Book, quantity int) error
	ChangeLineQuantity(ctx context.Context, cartID, lineID string, quantity int) (*domain.CartLine, error)
	RemoveLine(ctx context.Context, cartID, lineID string) error
}

type bookRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Book, error)
}

func New(repo cartRepo, bookRepo bookRepo) *Service {
	return &Service{repo: repo, bookRepo: bookRepo}
}

// Get returns the user's cart, creating an empty one on first use.
func (s *Service) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.GetByUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return s.repo.Create(ctx, userID)
	}
	return cart, err
}

func (s *Service) AddItem(ctx context.Context, userID, bookID string, quantity int) (*domain.Cart, error) {
	if strings.TrimSpace(bookID) == "" {
		return nil, errors.New("bookId required")
	}
	if quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}

	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errors.New("book not found")
		}
		return nil, err
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddLine(ctx, cart.ID, *book, quantity); err != nil {
		return nil, err
	}
	return s.repo.GetByUser(ctx, userID)
}

// ChangeQuantity sets a line's quantity and returns the authoritative line
// plus the refreshed cart. Quantity below one is rejected here; removal is
// a separate operation.
func (s *Service) ChangeQuantity(ctx context.Context, userID, lineID string, quantity int) (*domain.CartLine, *domain.Cart, error) {
	if strings.TrimSpace(lineID) == "" {
		return nil, nil, errors.New("lineId required")
	}
	if quantity < 1 {
		return nil, nil, errors.New("quantity must be at least 1")
	}

	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	line, err := s.repo.ChangeLineQuantity(ctx, cart.ID, lineID, quantity)
	if err != nil {
		return nil, nil, err
	}
	updated, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return line, updated, nil
}

func (s *Service) RemoveItem(ctx context.Context, userID, lineID string) (*domain.Cart, error) {
	if strings.TrimSpace(lineID) == "" {
		return nil, errors.New("lineId required")
	}
	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.RemoveLine(ctx, cart.ID, lineID); err != nil {
		return nil, err
	}
	return s.repo.GetByUser(ctx, userID)
}
