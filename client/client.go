// Package client is the Go SDK the mobile gateway uses against the
// storefront API. It owns the client-side pricing state: the optimistic
// cart view and the checkout session with its applied promotion.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the storefront API. It is constructed explicitly with
// the http.Client it should use; there is no process-wide instance.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userID     string
}

func New(baseURL, userID string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		userID:     userID,
	}
}

type Cart struct {
	ID          string     `json:"id"`
	TotalAmount int64      `json:"totalAmount"`
	Lines       []CartLine `json:"lineItems"`
}

type CartLine struct {
	ID           string `json:"id"`
	BookID       string `json:"bookId"`
	Title        string `json:"title"`
	CoverURL     string `json:"coverUrl"`
	UnitPrice    int64  `json:"unitPrice"`
	Quantity     int    `json:"quantity"`
	LineSubtotal int64  `json:"lineSubtotal"`
}

type Promotion struct {
	ID              string  `json:"id"`
	Code            string  `json:"code"`
	Description     string  `json:"description"`
	DiscountType    string  `json:"discountType"`
	DiscountValue   float64 `json:"discountValue"`
	MinimumPurchase int64   `json:"minimumPurchase"`
}

type ValidationResult struct {
	Accepted       bool       `json:"accepted"`
	DiscountAmount int64      `json:"discountAmount"`
	Promotion      *Promotion `json:"promotion"`
	Reason         string     `json:"reason"`
}

type Totals struct {
	Subtotal       int64 `json:"subtotal"`
	ShippingFee    int64 `json:"shippingFee"`
	DiscountAmount int64 `json:"discountAmount"`
	FinalAmount    int64 `json:"finalAmount"`
}

type Order struct {
	ID            string `json:"id"`
	Code          string `json:"code"`
	Totals        Totals `json:"totals"`
	PaymentMethod string `json:"paymentMethod"`
	Status        string `json:"status"`
	PromotionCode string `json:"promotionCode"`
}

type CheckoutRequest struct {
	PaymentMethod string `json:"paymentMethod"`
	PromotionCode string `json:"promotionCode,omitempty"`
}

func (c *Client) Cart(ctx context.Context) (*Cart, error) {
	var cart Cart
	if err := c.do(ctx, http.MethodGet, "/v1/cart", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

type changeLineResponse struct {
	LineItem *CartLine `json:"lineItem"`
	Cart     *Cart     `json:"cart"`
}

func (c *Client) ChangeQuantity(ctx context.Context, lineID string, quantity int) (*CartLine, *Cart, error) {
	body := map[string]int{"quantity": quantity}
	var resp changeLineResponse
	if err := c.do(ctx, http.MethodPatch, "/v1/cart/items/"+lineID, body, &resp); err != nil {
		return nil, nil, err
	}
	return resp.LineItem, resp.Cart, nil
}

func (c *Client) RemoveItem(ctx context.Context, lineID string) (*Cart, error) {
	var cart Cart
	if err := c.do(ctx, http.MethodDelete, "/v1/cart/items/"+lineID, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) Promotions(ctx context.Context) ([]Promotion, error) {
	var resp struct {
		Promotions []Promotion `json:"promotions"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/promotions", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Promotions, nil
}

func (c *Client) ValidatePromotion(ctx context.Context, code string, subtotal int64) (*ValidationResult, error) {
	body := map[string]any{"code": code, "subtotal": subtotal}
	var res ValidationResult
	if err := c.do(ctx, http.MethodPost, "/v1/promotions/validate", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Checkout(ctx context.Context, req CheckoutRequest) (*Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodPost, "/v1/checkout", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var resp struct {
		Orders []Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/orders", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

func (c *Client) Order(ctx context.Context, orderID string) (*Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodGet, "/v1/orders/"+orderID, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("X-User-ID", c.userID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("store unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Message = payload.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
