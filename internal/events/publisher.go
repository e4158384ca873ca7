package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"bookstore-storefront/internal/domain"
)

// Routing keys published by the storefront.
const (
	RKOrderPlaced  = "order.placed"
	RKCoinsAwarded = "coins.awarded"
)

type OrderPlacedPayload struct {
	EventID       string    `json:"eventId"`
	OrderID       string    `json:"orderId"`
	OrderCode     string    `json:"orderCode"`
	UserID        string    `json:"userId"`
	Subtotal      int64     `json:"subtotal"`
	ShippingFee   int64     `json:"shippingFee"`
	Discount      int64     `json:"discountAmount"`
	FinalAmount   int64     `json:"finalAmount"`
	PaymentMethod string    `json:"paymentMethod"`
	PlacedAt      time.Time `json:"placedAt"`
}

type CoinsAwardedPayload struct {
	EventID string `json:"eventId"`
	UserID  string `json:"userId"`
	OrderID string `json:"orderId"`
	Amount  int64  `json:"amount"`
}

// Publisher emits storefront events. Rabbit is the real implementation,
// Noop stands in when AMQP is not configured.
type Publisher interface {
	OrderPlaced(ctx context.Context, o domain.Order) error
	CoinsAwarded(ctx context.Context, userID, orderID string, amount int64) error
}

var (
	_ Publisher = (*Rabbit)(nil)
	_ Publisher = Noop{}
)

// Rabbit publishes storefront events to a topic exchange.
type Rabbit struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewRabbit(url, exchange string) (*Rabbit, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &Rabbit{conn: conn, ch: ch, exchange: exchange}, nil
}

func (r *Rabbit) Close() {
	if r.ch != nil {
		_ = r.ch.Close()
	}
	if r.conn != nil {
		_ = r.conn.Close()
	}
}

func (r *Rabbit) OrderPlaced(ctx context.Context, o domain.Order) error {
	return r.publishJSON(ctx, RKOrderPlaced, OrderPlacedPayload{
		EventID:       uuid.NewString(),
		OrderID:       o.ID,
		OrderCode:     o.Code,
		UserID:        o.UserID,
		Subtotal:      o.Totals.Subtotal,
		ShippingFee:   o.Totals.ShippingFee,
		Discount:      o.Totals.DiscountAmount,
		FinalAmount:   o.Totals.FinalAmount,
		PaymentMethod: o.PaymentMethod,
		PlacedAt:      o.CreatedAt,
	})
}

func (r *Rabbit) CoinsAwarded(ctx context.Context, userID, orderID string, amount int64) error {
	return r.publishJSON(ctx, RKCoinsAwarded, CoinsAwardedPayload{
		EventID: uuid.NewString(),
		UserID:  userID,
		OrderID: orderID,
		Amount:  amount,
	})
}

func (r *Rabbit) publishJSON(ctx context.Context, routingKey string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.ch.PublishWithContext(ctx, r.exchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

// Noop satisfies the order service's publisher when AMQP is not configured.
type Noop struct{}

func (Noop) OrderPlaced(context.Context, domain.Order) error { return nil }

func (Noop) CoinsAwarded(context.Context, string, string, int64) error { return nil }
