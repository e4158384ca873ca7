package promotion

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"bookstore-storefront/internal/domain"
)

// Rejection reasons surfaced to the caller.
const (
	ReasonEmpty       = "empty"
	ReasonNotFound    = "not found"
	ReasonNotStarted  = "not started"
	ReasonExpired     = "expired"
	ReasonExhausted   = "usage limit reached"
	ReasonMinPurchase = "minimum purchase not met"
	ReasonNoDiscount  = "no discount"
)

// Result is the outcome of evaluating a code against a subtotal. Accepted
// implies DiscountAmount > 0 and a non-nil normalized Promotion.
type Result struct {
	Accepted       bool              `json:"accepted"`
	DiscountAmount int64             `json:"discountAmount"`
	Promotion      *domain.Promotion `json:"promotion,omitempty"`
	Reason         string            `json:"reason,omitempty"`
}

// Canonical returns the comparison form of a promotion code.
func Canonical(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Evaluate validates code against the known promotions and computes the
// derived discount for subtotal. It never invents validity: the available
// list is the authority on which codes exist and what their bounds are.
func Evaluate(code string, subtotal int64, available []domain.Promotion, now time.Time) Result {
	canonical := Canonical(code)
	if canonical == "" {
		return Result{Reason: ReasonEmpty}
	}

	var promo *domain.Promotion
	for i := range available {
		if Canonical(available[i].Code) == canonical {
			promo = &available[i]
			break
		}
	}
	if promo == nil {
		return Result{Reason: ReasonNotFound}
	}

	normalized := *promo
	normalized.Code = canonical

	if !normalized.StartsAt.IsZero() && now.Before(normalized.StartsAt) {
		return Result{Promotion: &normalized, Reason: ReasonNotStarted}
	}
	if !normalized.EndsAt.IsZero() && now.After(normalized.EndsAt) {
		return Result{Promotion: &normalized, Reason: ReasonExpired}
	}
	if normalized.MaxUsage > 0 && normalized.UsedCount >= normalized.MaxUsage {
		return Result{Promotion: &normalized, Reason: ReasonExhausted}
	}
	if subtotal < normalized.MinimumPurchase {
		return Result{Promotion: &normalized, Reason: ReasonMinPurchase}
	}

	amount := Discount(normalized, subtotal)
	if amount <= 0 {
		// A valid code that yields nothing is still a rejection; the caller
		// must not keep an applied state around a zero discount.
		return Result{Promotion: &normalized, Reason: ReasonNoDiscount}
	}

	return Result{Accepted: true, DiscountAmount: amount, Promotion: &normalized}
}

// Discount computes the discount amount a confirmed-usable promotion
// yields for subtotal, clamped to [0, subtotal].
func Discount(p domain.Promotion, subtotal int64) int64 {
	if subtotal <= 0 {
		return 0
	}

	var amount int64
	switch p.DiscountType {
	case domain.DiscountPercentage:
		amount = decimal.NewFromInt(subtotal).
			Mul(decimal.NewFromFloat(p.DiscountValue)).
			Div(decimal.NewFromInt(100)).
			IntPart()
	case domain.DiscountFixed:
		amount = decimal.NewFromFloat(p.DiscountValue).IntPart()
	default:
		return 0
	}

	if amount < 0 {
		return 0
	}
	if amount > subtotal {
		return subtotal
	}
	return amount
}
