package book

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

func (r *postgresRepo) List(ctx context.Context) ([]domain.Book, error) {
	const q = `
SELECT id::text, title, COALESCE(author, ''), COALESCE(description, ''), price_amount, COALESCE(cover_url, ''), created_at
FROM books
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("book repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Book
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.PriceAmount, &b.CoverURL, &b.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("book repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	const q = `
SELECT id::text, title, COALESCE(author, ''), COALESCE(description, ''), price_amount, COALESCE(cover_url, ''), created_at
FROM books
WHERE id = $1
`
	var b domain.Book
	err := r.pool.QueryRow(ctx, q, id).Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.PriceAmount, &b.CoverURL, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, b domain.Book) (*domain.Book, error) {
	const q = `
INSERT INTO books (title, author, description, price_amount, cover_url)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (title, author) DO UPDATE
SET description = EXCLUDED.description,
    price_amount = EXCLUDED.price_amount,
    cover_url = EXCLUDED.cover_url
RETURNING id::text, title, COALESCE(author, ''), COALESCE(description, ''), price_amount, COALESCE(cover_url, ''), created_at
`
	var out domain.Book
	err := r.pool.QueryRow(ctx, q, b.Title, b.Author, b.Description, b.PriceAmount, b.CoverURL).Scan(
		&out.ID, &out.Title, &out.Author, &out.Description, &out.PriceAmount, &out.CoverURL, &out.CreatedAt,
	)
	if err != nil {
		r.logger.Printf("book repo: upsert title=%q error=%v", b.Title, err)
		return nil, err
	}
	return &out, nil
}
