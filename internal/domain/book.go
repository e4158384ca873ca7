package domain

import "time"

type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description,omitempty"`
	PriceAmount int64     `json:"priceAmount"`
	CoverURL    string    `json:"coverUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
