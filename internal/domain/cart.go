package domain

import "time"

type Cart struct {
	ID          string     `json:"id"`
	UserID      string     `json:"-"`
	TotalAmount int64      `json:"totalAmount"`
	CreatedAt   time.Time  `json:"createdAt"`
	Lines       []CartLine `json:"lineItems,omitempty"`
}

type CartLine struct {
	ID           string    `json:"id"`
	CartID       string    `json:"cartId"`
	BookID       string    `json:"bookId"`
	Title        string    `json:"title"`
	CoverURL     string    `json:"coverUrl,omitempty"`
	UnitPrice    int64     `json:"unitPrice"`
	Quantity     int       `json:"quantity"`
	LineSubtotal int64     `json:"lineSubtotal"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Subtotal returns the line's server-reported subtotal, deriving it from
// the unit price when the stored value is absent.
func (l CartLine) Subtotal() int64 {
	if l.LineSubtotal > 0 {
		return l.LineSubtotal
	}
	return l.UnitPrice * int64(l.Quantity)
}
