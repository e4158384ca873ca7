package cart

import (
	"context"
	"errors"

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

func (r *postgresRepo) Create(ctx context.Context, userID string) (*domain.Cart, error) {
	const q = `
INSERT INTO carts (user_id, total_amount)
VALUES ($1, 0)
ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
RETURNING id::text, user_id, total_amount, created_at
`
	var cart domain.Cart
	if err := r.pool.QueryRow(ctx, q, userID).Scan(
		&cart.ID,
		&cart.UserID,
		&cart.TotalAmount,
		&cart.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *postgresRepo) GetByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	const q = `
SELECT id::text, user_id, total_amount, created_at
FROM carts
WHERE user_id = $1
`
	var cart domain.Cart
	err := r.pool.QueryRow(ctx, q, userID).Scan(
		&cart.ID,
		&cart.UserID,
		&cart.TotalAmount,
		&cart.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	const linesQuery = `
SELECT id::text, cart_id::text, book_id::text, title, COALESCE(cover_url, ''), unit_price, quantity, line_subtotal, created_at
FROM cart_lines
WHERE cart_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, linesQuery, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(
			&line.ID,
			&line.CartID,
			&line.BookID,
			&line.Title,
			&line.CoverURL,
			&line.UnitPrice,
			&line.Quantity,
			&line.LineSubtotal,
			&line.CreatedAt,
		); err != nil {
			return nil, err
		}
		cart.Lines = append(cart.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &cart, nil
}

func (r *postgresRepo) AddLine(ctx context.Context, cartID string, book domain.Book, quantity int) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var lineID string
	var existingQty int
	var unitPrice int64
	err = tx.QueryRow(ctx, `
SELECT id::text, quantity, unit_price
FROM cart_lines
WHERE cart_id = $1 AND book_id = $2
`, cartID, book.ID).Scan(&lineID, &existingQty, &unitPrice)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	if err == nil {
		newQty := existingQty + quantity
		newSubtotal := unitPrice * int64(newQty)
		if _, err := tx.Exec(ctx, `
UPDATE cart_lines
SET quantity = $1, line_subtotal = $2
WHERE id = $3
`, newQty, newSubtotal, lineID); err != nil {
			return err
		}
	} else {
		unitPrice = book.PriceAmount
		subtotal := unitPrice * int64(quantity)
		if _, err := tx.Exec(ctx, `
INSERT INTO cart_lines (cart_id, book_id, title, cover_url, unit_price, quantity, line_subtotal)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, cartID, book.ID, book.Title, book.CoverURL, unitPrice, quantity, subtotal); err != nil {
			return err
		}
	}

	if err := replaceCartTotal(ctx, tx, cartID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) ChangeLineQuantity(ctx context.Context, cartID, lineID string, quantity int) (*domain.CartLine, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var unitPrice int64
	err = tx.QueryRow(ctx, `
SELECT unit_price
FROM cart_lines
WHERE id = $1 AND cart_id = $2
`, lineID, cartID).Scan(&unitPrice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	subtotal := unitPrice * int64(quantity)
	var line domain.CartLine
	if err := tx.QueryRow(ctx, `
UPDATE cart_lines
SET quantity = $1, line_subtotal = $2
WHERE id = $3 AND cart_id = $4
RETURNING id::text, cart_id::text, book_id::text, title, COALESCE(cover_url, ''), unit_price, quantity, line_subtotal, created_at
`, quantity, subtotal, lineID, cartID).Scan(
		&line.ID,
		&line.CartID,
		&line.BookID,
		&line.Title,
		&line.CoverURL,
		&line.UnitPrice,
		&line.Quantity,
		&line.LineSubtotal,
		&line.CreatedAt,
	); err != nil {
		return nil, err
	}

	if err := replaceCartTotal(ctx, tx, cartID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *postgresRepo) RemoveLine(ctx context.Context, cartID, lineID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
DELETE FROM cart_lines
WHERE id = $1 AND cart_id = $2
`, lineID, cartID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if err := replaceCartTotal(ctx, tx, cartID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) Empty(ctx context.Context, cartID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE cart_id = $1`, cartID); err != nil {
		return err
	}
	if err := replaceCartTotal(ctx, tx, cartID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// replaceCartTotal overwrites the cart's total with the sum of its lines.
// The total is always replaced wholesale, never adjusted incrementally.
func replaceCartTotal(ctx context.Context, tx pgx.Tx, cartID string) error {
	_, err := tx.Exec(ctx, `
UPDATE carts
SET total_amount = COALESCE((
	SELECT SUM(line_subtotal)
	FROM cart_lines
	WHERE cart_id = $1
), 0)
WHERE id = $1
`, cartID)
	return err
}
