package domain

import "time"

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusCompleted = "completed"
	OrderStatusCanceled  = "canceled"
)

// OrderTotals is the fully resolved set of monetary figures shown for an
// order. Once resolved, finalAmount = max(0, subtotal+shippingFee-discountAmount).
type OrderTotals struct {
	Subtotal       int64 `json:"subtotal"`
	ShippingFee    int64 `json:"shippingFee"`
	DiscountAmount int64 `json:"discountAmount"`
	FinalAmount    int64 `json:"finalAmount"`
}

// Order rows written by older API versions may carry any subset of the
// totals columns; zero means the column was absent. Totals are resolved
// before an order is returned to a caller, never rewritten in place.
type Order struct {
	ID            string      `json:"id"`
	Code          string      `json:"code"`
	UserID        string      `json:"-"`
	Lines         []OrderLine `json:"lines,omitempty"`
	Totals        OrderTotals `json:"totals"`
	TotalAmount   int64       `json:"totalAmount,omitempty"`
	PaymentMethod string      `json:"paymentMethod"`
	Status        string      `json:"status"`
	PromotionCode string      `json:"promotionCode,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
}

type OrderLine struct {
	ID           string `json:"id"`
	OrderID      string `json:"orderId"`
	BookID       string `json:"bookId"`
	Title        string `json:"title"`
	UnitPrice    int64  `json:"unitPrice"`
	Quantity     int    `json:"quantity"`
	LineSubtotal int64  `json:"lineSubtotal"`
}
