package wallet

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"bookstore-storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Insert(ctx context.Context, tx domain.CoinTransaction) (*domain.CoinTransaction, error) {
	const q = `
INSERT INTO coin_transactions (user_id, type, amount, status, note)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text, user_id, type, amount, status, COALESCE(note, ''), created_at
`
	var out domain.CoinTransaction
	if err := r.pool.QueryRow(ctx, q, tx.UserID, tx.Type, tx.Amount, tx.Status, tx.Note).Scan(
		&out.ID, &out.UserID, &out.Type, &out.Amount, &out.Status, &out.Note, &out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.CoinTransaction, error) {
	const q = `
SELECT id::text, user_id, type, amount, status, COALESCE(note, ''), created_at
FROM coin_transactions
WHERE user_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CoinTransaction
	for rows.Next() {
		var tx domain.CoinTransaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Type, &tx.Amount, &tx.Status, &tx.Note, &tx.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
