package wallet

import (
	"context"

	"bookstore-storefront/internal/domain"
	walletcore "bookstore-storefront/internal/wallet"
)

type Service struct {
	repo walletRepo
}

type walletRepo interface {
	ListByUser(ctx context.Context, userID string) ([]domain.CoinTransaction, error)
}

func New(repo walletRepo) *Service {
	return &Service{repo: repo}
}

// Entry is a transaction paired with its display classification.
type Entry struct {
	domain.CoinTransaction
	walletcore.Classification
}

// History returns the user's transactions, newest first, each classified
// for display.
func (s *Service) History(ctx context.Context, userID string) ([]Entry, error) {
	txs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(txs))
	for _, tx := range txs {
		entries = append(entries, Entry{CoinTransaction: tx, Classification: walletcore.Classify(tx)})
	}
	return entries, nil
}

// Balance sums completed transactions, credits positive and debits
// negative. Pending and failed transactions never move the balance.
func (s *Service) Balance(ctx context.Context, userID string) (int64, error) {
	txs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	var balance int64
	for _, tx := range txs {
		c := walletcore.Classify(tx)
		if c.StatusLabel != walletcore.StatusCompleted {
			continue
		}
		if c.Sign == walletcore.SignCredit {
			balance += tx.Amount
		} else {
			balance -= tx.Amount
		}
	}
	return balance, nil
}
