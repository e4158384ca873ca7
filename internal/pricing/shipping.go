package pricing

import "log"

// shippingTier maps a minimum subtotal to a flat shipping fee.
type shippingTier struct {
	minSubtotal int64
	fee         int64
}

// Evaluated high to low; the first threshold the subtotal reaches wins.
var shippingTiers = []shippingTier{
	{minSubtotal: 500_000, fee: 0},
	{minSubtotal: 200_000, fee: 30_000},
	{minSubtotal: 0, fee: 50_000},
}

// ShippingFee returns the flat shipping fee for a subtotal in đồng.
// A negative subtotal is a caller bug; it is treated as 0.
func ShippingFee(subtotal int64) int64 {
	if subtotal < 0 {
		log.Printf("pricing: negative subtotal %d passed to ShippingFee, treating as 0", subtotal)
		subtotal = 0
	}
	for _, tier := range shippingTiers {
		if subtotal >= tier.minSubtotal {
			return tier.fee
		}
	}
	return 0
}
