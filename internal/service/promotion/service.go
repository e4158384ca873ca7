package promotion

import (
	"context"
	"time"

	"bookstore-storefront/internal/domain"
	promoeval "bookstore-storefront/internal/promotion"
)

type Service struct {
	repo promoRepo
	now  func() time.Time
}

type promoRepo interface {
	ListActive(ctx context.Context) ([]domain.Promotion, error)
	IncrementUsage(ctx context.Context, id string) error
}

func New(repo promoRepo) *Service {
	return &Service{repo: repo, now: time.Now}
}

// List returns the promotions currently available to shoppers.
func (s *Service) List(ctx context.Context) ([]domain.Promotion, error) {
	return s.repo.ListActive(ctx)
}

// Validate checks a code against the available promotions and computes the
// discount it yields for subtotal. The result is authoritative: callers
// must not keep a discount the validation did not confirm.
func (s *Service) Validate(ctx context.Context, code string, subtotal int64) (promoeval.Result, error) {
	available, err := s.repo.ListActive(ctx)
	if err != nil {
		return promoeval.Result{}, err
	}
	return promoeval.Evaluate(code, subtotal, available, s.now()), nil
}

// Redeem records one usage of an accepted promotion.
func (s *Service) Redeem(ctx context.Context, promotionID string) error {
	return s.repo.IncrementUsage(ctx, promotionID)
}
