package domain

import "time"

// CoinTransaction is append-only; Amount is an absolute value, the
// credit/debit direction is derived from Type by the wallet classifier.
type CoinTransaction struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Type      string    `json:"type"`
	Amount    int64     `json:"amount"`
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
