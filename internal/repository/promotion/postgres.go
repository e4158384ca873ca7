package promotion

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookstore-storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const promotionColumns = `id::text, code, COALESCE(description, ''), discount_type, discount_value, minimum_purchase, max_usage, used_count, starts_at, ends_at, created_at`

func (r *postgresRepo) ListActive(ctx context.Context) ([]domain.Promotion, error) {
	const q = `
SELECT ` + promotionColumns + `
FROM promotions
WHERE starts_at <= now() AND ends_at >= now()
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Promotion
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) IncrementUsage(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE promotions
SET used_count = used_count + 1
WHERE id = $1
`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPromotion(row pgx.Row) (*domain.Promotion, error) {
	var p domain.Promotion
	if err := row.Scan(
		&p.ID,
		&p.Code,
		&p.Description,
		&p.DiscountType,
		&p.DiscountValue,
		&p.MinimumPurchase,
		&p.MaxUsage,
		&p.UsedCount,
		&p.StartsAt,
		&p.EndsAt,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
