package order

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookstore-storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO orders (code, user_id, subtotal, total_amount, shipping_fee, discount_amount, final_amount, payment_method, status, promotion_code)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id::text, created_at
`
	out := o
	if err := tx.QueryRow(ctx, q,
		o.Code,
		o.UserID,
		o.Totals.Subtotal,
		o.TotalAmount,
		o.Totals.ShippingFee,
		o.Totals.DiscountAmount,
		o.Totals.FinalAmount,
		o.PaymentMethod,
		o.Status,
		o.PromotionCode,
	).Scan(&out.ID, &out.CreatedAt); err != nil {
		r.logger.Printf("order repo: create user_id=%s error=%v", o.UserID, err)
		return nil, err
	}

	out.Lines = make([]domain.OrderLine, 0, len(o.Lines))
	for _, line := range o.Lines {
		var saved domain.OrderLine
		if err := tx.QueryRow(ctx, `
INSERT INTO order_lines (order_id, book_id, title, unit_price, quantity, line_subtotal)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id::text, order_id::text, book_id::text, title, unit_price, quantity, line_subtotal
`, out.ID, line.BookID, line.Title, line.UnitPrice, line.Quantity, line.LineSubtotal).Scan(
			&saved.ID, &saved.OrderID, &saved.BookID, &saved.Title, &saved.UnitPrice, &saved.Quantity, &saved.LineSubtotal,
		); err != nil {
			return nil, err
		}
		out.Lines = append(out.Lines, saved)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

const orderColumns = `id::text, code, user_id, COALESCE(subtotal, 0), COALESCE(total_amount, 0), COALESCE(shipping_fee, 0), COALESCE(discount_amount, 0), COALESCE(final_amount, 0), payment_method, status, COALESCE(promotion_code, ''), created_at`

func (r *postgresRepo) GetByID(ctx context.Context, userID, id string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1 AND id = $2
`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	lines, err := r.fetchLines(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return o, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		r.logger.Printf("order repo: list user_id=%s error=%v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		lines, err := r.fetchLines(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Lines = lines
	}
	return result, nil
}

func (r *postgresRepo) fetchLines(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	const q = `
SELECT id::text, order_id::text, book_id::text, title, unit_price, quantity, line_subtotal
FROM order_lines
WHERE order_id = $1
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.BookID, &line.Title, &line.UnitPrice, &line.Quantity, &line.LineSubtotal); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	if err := row.Scan(
		&o.ID,
		&o.Code,
		&o.UserID,
		&o.Totals.Subtotal,
		&o.TotalAmount,
		&o.Totals.ShippingFee,
		&o.Totals.DiscountAmount,
		&o.Totals.FinalAmount,
		&o.PaymentMethod,
		&o.Status,
		&o.PromotionCode,
		&o.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}
