package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type bookSeed struct {
	Title       string
	Author      string
	Description string
	PriceAmount int64
	CoverURL    string
}

type promotionSeed struct {
	Code            string
	Description     string
	DiscountType    string
	DiscountValue   float64
	MinimumPurchase int64
	MaxUsage        int
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	books := []bookSeed{
		{
			Title:       "Nhà Giả Kim",
			Author:      "Paulo Coelho",
			Description: "Tiểu thuyết về hành trình theo đuổi giấc mơ",
			PriceAmount: 79_000,
			CoverURL:    "https://covers.example.com/nha-gia-kim.jpg",
		},
		{
			Title:       "Đắc Nhân Tâm",
			Author:      "Dale Carnegie",
			Description: "Nghệ thuật thu phục lòng người",
			PriceAmount: 86_000,
			CoverURL:    "https://covers.example.com/dac-nhan-tam.jpg",
		},
		{
			Title:       "The Go Programming Language",
			Author:      "Alan Donovan",
			Description: "The authoritative resource for Go programmers",
			PriceAmount: 450_000,
			CoverURL:    "https://covers.example.com/gopl.jpg",
		},
	}

	for _, b := range books {
		if err := upsertBook(ctx, pool, b); err != nil {
			return fmt.Errorf("upsert book %s: %w", b.Title, err)
		}
	}

	promotions := []promotionSeed{
		{
			Code:            "WELCOME10",
			Description:     "10% off your first order",
			DiscountType:    "percentage",
			DiscountValue:   10,
			MinimumPurchase: 100_000,
			MaxUsage:        0,
		},
		{
			Code:            "SACHHAY50K",
			Description:     "50,000đ off orders from 300,000đ",
			DiscountType:    "fixed",
			DiscountValue:   50_000,
			MinimumPurchase: 300_000,
			MaxUsage:        1000,
		},
	}

	for _, p := range promotions {
		if err := upsertPromotion(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert promotion %s: %w", p.Code, err)
		}
	}

	return nil
}

func upsertBook(ctx context.Context, pool *pgxpool.Pool, b bookSeed) error {
	const q = `
INSERT INTO books (title, author, description, price_amount, cover_url)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (title, author) DO UPDATE
SET description = EXCLUDED.description,
    price_amount = EXCLUDED.price_amount,
    cover_url = EXCLUDED.cover_url
`
	_, err := pool.Exec(ctx, q, b.Title, b.Author, b.Description, b.PriceAmount, b.CoverURL)
	return err
}

func upsertPromotion(ctx context.Context, pool *pgxpool.Pool, p promotionSeed) error {
	const q = `
INSERT INTO promotions (code, description, discount_type, discount_value, minimum_purchase, max_usage)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (code) DO UPDATE
SET description = EXCLUDED.description,
    discount_type = EXCLUDED.discount_type,
    discount_value = EXCLUDED.discount_value,
    minimum_purchase = EXCLUDED.minimum_purchase,
    max_usage = EXCLUDED.max_usage
`
	_, err := pool.Exec(ctx, q, p.Code, p.Description, p.DiscountType, p.DiscountValue, p.MinimumPurchase, p.MaxUsage)
	return err
}
