package domain

import "time"

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Promotion is immutable once fetched; Code is stored in its canonical
// upper-case form.
type Promotion struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	Description     string    `json:"description,omitempty"`
	DiscountType    string    `json:"discountType"`
	DiscountValue   float64   `json:"discountValue"`
	MinimumPurchase int64     `json:"minimumPurchase"`
	MaxUsage        int       `json:"maxUsage"`
	UsedCount       int       `json:"usedCount"`
	StartsAt        time.Time `json:"startsAt"`
	EndsAt          time.Time `json:"endsAt"`
	CreatedAt       time.Time `json:"createdAt"`
}
