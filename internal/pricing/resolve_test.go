package pricing

import "testing"

func TestResolveAllFieldsPresent(t *testing.T) {
	got := Resolve(PartialTotals{
		Subtotal:       300_000,
		ShippingFee:    30_000,
		DiscountAmount: 20_000,
		FinalAmount:    310_000,
	}, nil)
	want := Totals{Subtotal: 300_000, ShippingFee: 30_000, DiscountAmount: 20_000, FinalAmount: 310_000}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestResolveDerivesFinalAmount(t *testing.T) {
	got := Resolve(PartialTotals{Subtotal: 300_000, ShippingFee: 30_000, DiscountAmount: 20_000}, nil)
	if got.FinalAmount != 310_000 {
		t.Fatalf("final = %d, want 310000", got.FinalAmount)
	}
}

func TestResolveFinalAmountNeverNegative(t *testing.T) {
	got := Resolve(PartialTotals{Subtotal: 10_000, ShippingFee: 50_000, DiscountAmount: 200_000}, nil)
	if got.FinalAmount != 0 {
		t.Fatalf("final = %d, want 0", got.FinalAmount)
	}
}

func TestResolveLegacyTotalAmountFeedsSubtotal(t *testing.T) {
	got := Resolve(PartialTotals{TotalAmount: 250_000}, nil)
	if got.Subtotal != 250_000 {
		t.Fatalf("subtotal = %d, want 250000", got.Subtotal)
	}
	if got.ShippingFee != 30_000 {
		t.Fatalf("fee = %d, want 30000 from policy fallback", got.ShippingFee)
	}
	if got.FinalAmount != 280_000 {
		t.Fatalf("final = %d, want 280000", got.FinalAmount)
	}
}

func TestResolveSubtotalFromLines(t *testing.T) {
	lines := []Line{
		{UnitPrice: 120_000, Quantity: 2, Subtotal: 240_000},
		{UnitPrice: 90_000, Quantity: 1}, // stored subtotal absent, derived from unit price
	}
	got := Resolve(PartialTotals{}, lines)
	if got.Subtotal != 330_000 {
		t.Fatalf("subtotal = %d, want 330000", got.Subtotal)
	}
}

func TestResolveExplicitSubtotalBeatsLinesAndTotalAmount(t *testing.T) {
	lines := []Line{{UnitPrice: 10_000, Quantity: 1}}
	got := Resolve(PartialTotals{Subtotal: 500_000, TotalAmount: 999_999}, lines)
	if got.Subtotal != 500_000 {
		t.Fatalf("subtotal = %d, want explicit 500000", got.Subtotal)
	}
	if got.ShippingFee != 0 {
		t.Fatalf("fee = %d, want 0 for subtotal >= 500000", got.ShippingFee)
	}
}

func TestResolveBackSolvesSubtotalFromFinalAmount(t *testing.T) {
	got := Resolve(PartialTotals{
		FinalAmount:    420_000,
		DiscountAmount: 20_000,
		ShippingFee:    30_000,
	}, nil)
	if got.Subtotal != 410_000 {
		t.Fatalf("subtotal = %d, want back-solved 410000", got.Subtotal)
	}
	if got.FinalAmount != 420_000 {
		t.Fatalf("final = %d, want explicit 420000 kept", got.FinalAmount)
	}
}

func TestResolveExplicitFinalAmountWins(t *testing.T) {
	// Server-stored final is authoritative even when it disagrees with the
	// recomputed sum.
	got := Resolve(PartialTotals{Subtotal: 100_000, ShippingFee: 50_000, FinalAmount: 140_000}, nil)
	if got.FinalAmount != 140_000 {
		t.Fatalf("final = %d, want 140000", got.FinalAmount)
	}
	if got.Subtotal != 100_000 {
		t.Fatalf("subtotal = %d, want 100000 (no back-solve when independently resolved)", got.Subtotal)
	}
}

func TestResolveEmptyInput(t *testing.T) {
	got := Resolve(PartialTotals{}, nil)
	want := Totals{Subtotal: 0, ShippingFee: 50_000, DiscountAmount: 0, FinalAmount: 50_000}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestResolveInvariantHolds(t *testing.T) {
	for _, in := range []PartialTotals{
		{Subtotal: 300_000, ShippingFee: 30_000, DiscountAmount: 20_000},
		{Subtotal: 50_000, ShippingFee: 50_000, DiscountAmount: 500_000},
		{TotalAmount: 700_000, DiscountAmount: 100_000},
		{Subtotal: 1, ShippingFee: 1, DiscountAmount: 3},
	} {
		got := Resolve(in, nil)
		want := clampZero(got.Subtotal + got.ShippingFee - got.DiscountAmount)
		if got.FinalAmount != want {
			t.Fatalf("invariant broken for %+v: final=%d want %d", in, got.FinalAmount, want)
		}
	}
}
