package wallet

import (
	"strings"

	"bookstore-storefront/internal/domain"
)

// Sign says whether a transaction adds to or subtracts from the balance.
type Sign string

const (
	SignCredit Sign = "credit"
	SignDebit  Sign = "debit"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Classification is the display normalization of a raw transaction.
type Classification struct {
	Sign        Sign   `json:"sign"`
	Category    string `json:"category"`
	StatusLabel string `json:"statusLabel"`
}

var creditCategories = map[string]string{
	"deposit":     "Deposit",
	"bonus":       "Bonus",
	"admin_bonus": "Bonus",
	"refund":      "Refund",
}

var debitCategories = map[string]string{
	"purchase": "Purchase",
	"spend":    "Purchase",
	"withdraw": "Withdrawal",
}

// Classify normalizes a transaction's direction, display category and
// status label. Unknown types count as debits so a balance is never
// overstated; unknown statuses pass through verbatim because coercing a
// terminal state to pending is worse than showing a raw label.
func Classify(tx domain.CoinTransaction) Classification {
	out := Classification{Sign: SignDebit, Category: tx.Type}

	kind := strings.ToLower(strings.TrimSpace(tx.Type))
	if category, ok := creditCategories[kind]; ok {
		out.Sign = SignCredit
		out.Category = category
	} else if category, ok := debitCategories[kind]; ok {
		out.Category = category
	}

	switch strings.ToLower(strings.TrimSpace(tx.Status)) {
	case "pending":
		out.StatusLabel = StatusPending
	case "completed", "success":
		out.StatusLabel = StatusCompleted
	case "failed", "canceled":
		out.StatusLabel = StatusFailed
	default:
		out.StatusLabel = tx.Status
	}

	return out
}
