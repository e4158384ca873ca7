package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClient_SendsUserHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-User-ID"); got != "u1" {
			t.Fatalf("expected user header u1, got %q", got)
		}
		if r.URL.Path != "/v1/cart" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Cart{ID: "c1", TotalAmount: 240_000})
	}))
	defer srv.Close()

	c := New(srv.URL, "u1", srv.Client())
	cart, err := c.Cart(context.Background())
	if err != nil {
		t.Fatalf("cart: %v", err)
	}
	if cart.ID != "c1" || cart.TotalAmount != 240_000 {
		t.Fatalf("unexpected cart %+v", cart)
	}
}

func TestClient_DecodesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "resource not found"})
	}))
	defer srv.Close()

	c := New(srv.URL, "u1", srv.Client())
	_, err := c.Order(context.Background(), "missing")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Message != "resource not found" {
		t.Fatalf("unexpected api error %+v", apiErr)
	}
}

func TestClient_APIErrorFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, "u1", srv.Client())
	_, err := c.Cart(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if !strings.Contains(apiErr.Error(), "something went wrong") {
		t.Fatalf("expected the generic fallback, got %q", apiErr.Error())
	}
}

func TestClient_TransportErrorIsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL, "u1", nil)
	_, err := c.Cart(context.Background())
	if err == nil {
		t.Fatal("expected an error from a closed server")
	}
	if !strings.Contains(err.Error(), "store unreachable") {
		t.Fatalf("expected the transport wrap, got %v", err)
	}
}

func TestClient_ChangeQuantityRequestShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/v1/cart/items/l1" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			Quantity int `json:"quantity"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Quantity != 3 {
			t.Fatalf("unexpected body (%v): %+v", err, body)
		}
		json.NewEncoder(w).Encode(changeLineResponse{
			LineItem: &CartLine{ID: "l1", Quantity: 3, LineSubtotal: 360_000},
			Cart:     &Cart{ID: "c1", TotalAmount: 410_000},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "u1", srv.Client())
	line, cart, err := c.ChangeQuantity(context.Background(), "l1", 3)
	if err != nil {
		t.Fatalf("change quantity: %v", err)
	}
	if line.LineSubtotal != 360_000 || cart.TotalAmount != 410_000 {
		t.Fatalf("unexpected response line=%+v cart=%+v", line, cart)
	}
}
