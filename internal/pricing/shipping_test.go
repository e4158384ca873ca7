package pricing

import "testing"

func TestShippingFeeTierBoundaries(t *testing.T) {
	cases := []struct {
		subtotal int64
		want     int64
	}{
		{0, 50_000},
		{199_999, 50_000},
		{200_000, 30_000},
		{499_999, 30_000},
		{500_000, 0},
		{1_200_000, 0},
	}
	for _, tc := range cases {
		if got := ShippingFee(tc.subtotal); got != tc.want {
			t.Fatalf("ShippingFee(%d) = %d, want %d", tc.subtotal, got, tc.want)
		}
	}
}

func TestShippingFeeNegativeSubtotalTreatedAsZero(t *testing.T) {
	if got := ShippingFee(-1); got != 50_000 {
		t.Fatalf("ShippingFee(-1) = %d, want 50000", got)
	}
}

func TestShippingFeeMonotonicNonIncreasing(t *testing.T) {
	prev := ShippingFee(0)
	for s := int64(0); s <= 600_000; s += 1_000 {
		fee := ShippingFee(s)
		if fee > prev {
			t.Fatalf("fee increased from %d to %d at subtotal %d", prev, fee, s)
		}
		prev = fee
	}
}
