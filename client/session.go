package client

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// sessionGateway is the slice of the API the checkout session needs.
type sessionGateway interface {
	ValidatePromotion(ctx context.Context, code string, subtotal int64) (*ValidationResult, error)
	Checkout(ctx context.Context, req CheckoutRequest) (*Order, error)
}

// CheckoutSession carries the promotion applied to the next order and
// guards against double submission. The applied discount is only ever
// the result of the latest successful validation; any failure resets it
// to zero.
type CheckoutSession struct {
	api sessionGateway

	mu          sync.Mutex
	inFlight    bool
	appliedCode string
	discount    int64
	promotion   *Promotion
}

func NewCheckoutSession(api sessionGateway) *CheckoutSession {
	return &CheckoutSession{api: api}
}

// ApplyPromotion validates the code against the current subtotal and, on
// acceptance, records it for the next Submit. A blank code is rejected
// locally without touching the applied state. A rejected or failed
// validation clears whatever was applied before.
func (s *CheckoutSession) ApplyPromotion(ctx context.Context, code string, subtotal int64) (int64, error) {
	canonical := strings.ToUpper(strings.TrimSpace(code))
	if canonical == "" {
		return 0, ErrEmptyCode
	}

	res, err := s.api.ValidatePromotion(ctx, canonical, subtotal)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.clearLocked()
		return 0, err
	}
	if !res.Accepted || res.DiscountAmount <= 0 {
		s.clearLocked()
		return 0, fmt.Errorf("%w: %s", ErrPromotionRejected, res.Reason)
	}

	s.appliedCode = canonical
	s.discount = res.DiscountAmount
	s.promotion = res.Promotion
	return res.DiscountAmount, nil
}

// ClearPromotion drops the applied code and discount.
func (s *CheckoutSession) ClearPromotion() {
	s.mu.Lock()
	s.clearLocked()
	s.mu.Unlock()
}

// AppliedCode returns the promotion code that will ride on the next
// Submit, or "" when none is applied.
func (s *CheckoutSession) AppliedCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appliedCode
}

// Discount returns the discount amount from the latest accepted
// validation.
func (s *CheckoutSession) Discount() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.discount
}

// Submit places the order. While one submission is outstanding any
// further call returns ErrCheckoutInFlight without hitting the server.
// On success the applied promotion is consumed.
func (s *CheckoutSession) Submit(ctx context.Context, paymentMethod string) (*Order, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, ErrCheckoutInFlight
	}
	s.inFlight = true
	code := s.appliedCode
	s.mu.Unlock()

	order, err := s.api.Checkout(ctx, CheckoutRequest{
		PaymentMethod: paymentMethod,
		PromotionCode: code,
	})

	s.mu.Lock()
	s.inFlight = false
	if err == nil {
		s.clearLocked()
	}
	s.mu.Unlock()
	return order, err
}

func (s *CheckoutSession) clearLocked() {
	s.appliedCode = ""
	s.discount = 0
	s.promotion = nil
}
