package promotion

import (
	"testing"
	"time"

	"bookstore-storefront/internal/domain"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func activePromo(code, discountType string, value float64, minPurchase int64) domain.Promotion {
	return domain.Promotion{
		ID:              "p-" + code,
		Code:            code,
		DiscountType:    discountType,
		DiscountValue:   value,
		MinimumPurchase: minPurchase,
		StartsAt:        testNow.AddDate(0, -1, 0),
		EndsAt:          testNow.AddDate(0, 1, 0),
	}
}

func TestEvaluateEmptyCode(t *testing.T) {
	res := Evaluate("   ", 100_000, nil, testNow)
	if res.Accepted || res.Reason != ReasonEmpty {
		t.Fatalf("expected empty rejection, got %+v", res)
	}
}

func TestEvaluateUnknownCode(t *testing.T) {
	res := Evaluate("NOPE", 100_000, []domain.Promotion{activePromo("WELCOME10", domain.DiscountPercentage, 10, 0)}, testNow)
	if res.Accepted || res.Reason != ReasonNotFound {
		t.Fatalf("expected not found, got %+v", res)
	}
}

func TestEvaluateCanonicalizesCode(t *testing.T) {
	promos := []domain.Promotion{activePromo("WELCOME10", domain.DiscountPercentage, 10, 0)}
	res := Evaluate("  welcome10 ", 300_000, promos, testNow)
	if !res.Accepted {
		t.Fatalf("expected acceptance, got %+v", res)
	}
	if res.Promotion.Code != "WELCOME10" {
		t.Fatalf("normalized code = %q, want WELCOME10", res.Promotion.Code)
	}
}

func TestEvaluatePercentageDiscount(t *testing.T) {
	promos := []domain.Promotion{activePromo("WELCOME10", domain.DiscountPercentage, 10, 0)}
	res := Evaluate("WELCOME10", 300_000, promos, testNow)
	if !res.Accepted || res.DiscountAmount != 30_000 {
		t.Fatalf("expected 30000 discount, got %+v", res)
	}
}

func TestEvaluatePercentageClampedToSubtotal(t *testing.T) {
	promos := []domain.Promotion{activePromo("BIG", domain.DiscountPercentage, 150, 0)}
	res := Evaluate("BIG", 80_000, promos, testNow)
	if !res.Accepted || res.DiscountAmount != 80_000 {
		t.Fatalf("expected clamp to subtotal, got %+v", res)
	}
}

func TestEvaluateFixedDiscountClampedToSubtotal(t *testing.T) {
	promos := []domain.Promotion{activePromo("SAVE50K", domain.DiscountFixed, 50_000, 0)}
	res := Evaluate("SAVE50K", 20_000, promos, testNow)
	if !res.Accepted || res.DiscountAmount != 20_000 {
		t.Fatalf("expected clamp to 20000, got %+v", res)
	}
}

func TestEvaluateMinimumPurchase(t *testing.T) {
	promos := []domain.Promotion{activePromo("SAVE50K", domain.DiscountFixed, 50_000, 300_000)}
	res := Evaluate("SAVE50K", 299_999, promos, testNow)
	if res.Accepted || res.Reason != ReasonMinPurchase {
		t.Fatalf("expected minimum purchase rejection, got %+v", res)
	}
}

func TestEvaluateDateWindow(t *testing.T) {
	early := activePromo("SOON", domain.DiscountFixed, 10_000, 0)
	early.StartsAt = testNow.AddDate(0, 0, 1)
	res := Evaluate("SOON", 100_000, []domain.Promotion{early}, testNow)
	if res.Accepted || res.Reason != ReasonNotStarted {
		t.Fatalf("expected not started, got %+v", res)
	}

	late := activePromo("GONE", domain.DiscountFixed, 10_000, 0)
	late.EndsAt = testNow.AddDate(0, 0, -1)
	res = Evaluate("GONE", 100_000, []domain.Promotion{late}, testNow)
	if res.Accepted || res.Reason != ReasonExpired {
		t.Fatalf("expected expired, got %+v", res)
	}
}

func TestEvaluateUsageExhausted(t *testing.T) {
	p := activePromo("LIMITED", domain.DiscountFixed, 10_000, 0)
	p.MaxUsage = 5
	p.UsedCount = 5
	res := Evaluate("LIMITED", 100_000, []domain.Promotion{p}, testNow)
	if res.Accepted || res.Reason != ReasonExhausted {
		t.Fatalf("expected exhausted, got %+v", res)
	}
}

func TestEvaluateZeroDiscountIsRejection(t *testing.T) {
	promos := []domain.Promotion{activePromo("ZERO", domain.DiscountPercentage, 0, 0)}
	res := Evaluate("ZERO", 100_000, promos, testNow)
	if res.Accepted || res.Reason != ReasonNoDiscount {
		t.Fatalf("expected no-discount rejection, got %+v", res)
	}
	if res.DiscountAmount != 0 {
		t.Fatalf("discount = %d, want 0", res.DiscountAmount)
	}
}

func TestDiscountFractionalPercentage(t *testing.T) {
	p := domain.Promotion{DiscountType: domain.DiscountPercentage, DiscountValue: 12.5}
	if got := Discount(p, 200_000); got != 25_000 {
		t.Fatalf("12.5%% of 200000 = %d, want 25000", got)
	}
}
