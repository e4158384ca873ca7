package order

import (
	"context"
	"errors"
	"strings"
	"testing"

	"bookstore-storefront/internal/domain"
	promoeval "bookstore-storefront/internal/promotion"
)

type stubOrderRepo struct {
	created   *domain.Order
	createErr error
	lastInput domain.Order
	byID      *domain.Order
	byIDErr   error
	list      []domain.Order
	listErr   error
}

func (s *stubOrderRepo) Create(_ context.Context, o domain.Order) (*domain.Order, error) {
	s.lastInput = o
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.created != nil {
		return s.created, nil
	}
	out := o
	out.ID = "o1"
	return &out, nil
}

func (s *stubOrderRepo) GetByID(_ context.Context, _, _ string) (*domain.Order, error) {
	return s.byID, s.byIDErr
}

func (s *stubOrderRepo) ListByUser(_ context.Context, _ string) ([]domain.Order, error) {
	return s.list, s.listErr
}

type stubCartRepo struct {
	cart      *domain.Cart
	err       error
	emptiedID string
	emptyErr  error
}

func (s *stubCartRepo) GetByUser(_ context.Context, _ string) (*domain.Cart, error) {
	return s.cart, s.err
}

func (s *stubCartRepo) Empty(_ context.Context, cartID string) error {
	s.emptiedID = cartID
	return s.emptyErr
}

type stubPromoSvc struct {
	result     promoeval.Result
	err        error
	redeemedID string
}

func (s *stubPromoSvc) Validate(_ context.Context, _ string, _ int64) (promoeval.Result, error) {
	return s.result, s.err
}

func (s *stubPromoSvc) Redeem(_ context.Context, id string) error {
	s.redeemedID = id
	return nil
}

type stubWalletRepo struct {
	inserted []domain.CoinTransaction
	err      error
}

func (s *stubWalletRepo) Insert(_ context.Context, tx domain.CoinTransaction) (*domain.CoinTransaction, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.inserted = append(s.inserted, tx)
	return &tx, nil
}

type stubPublisher struct {
	placed  []string
	awarded []int64
}

func (s *stubPublisher) OrderPlaced(_ context.Context, o domain.Order) error {
	s.placed = append(s.placed, o.ID)
	return nil
}

func (s *stubPublisher) CoinsAwarded(_ context.Context, _, _ string, amount int64) error {
	s.awarded = append(s.awarded, amount)
	return nil
}

func testCart() *domain.Cart {
	return &domain.Cart{
		ID:     "c1",
		UserID: "u1",
		Lines: []domain.CartLine{
			{ID: "l1", BookID: "b1", Title: "Tắt Đèn", UnitPrice: 150_000, Quantity: 2, LineSubtotal: 300_000},
		},
		TotalAmount: 300_000,
	}
}

func newTestService(orders *stubOrderRepo, carts *stubCartRepo, promos *stubPromoSvc, wallet *stubWalletRepo, pub *stubPublisher) *Service {
	return New(orders, carts, promos, wallet, pub, nil)
}

func TestCheckoutRequiresPaymentMethod(t *testing.T) {
	svc := newTestService(&stubOrderRepo{}, &stubCartRepo{}, &stubPromoSvc{}, &stubWalletRepo{}, &stubPublisher{})
	_, err := svc.Checkout(context.Background(), "u1", CheckoutInput{})
	if err == nil || err.Error() != "paymentMethod required" {
		t.Fatalf("expected payment method error, got %v", err)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc := newTestService(&stubOrderRepo{}, &stubCartRepo{cart: &domain.Cart{ID: "c1"}}, &stubPromoSvc{}, &stubWalletRepo{}, &stubPublisher{})
	_, err := svc.Checkout(context.Background(), "u1", CheckoutInput{PaymentMethod: "cod"})
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected empty cart error, got %v", err)
	}
}

func TestCheckoutComputesTotals(t *testing.T) {
	orders := &stubOrderRepo{}
	carts := &stubCartRepo{cart: testCart()}
	svc := newTestService(orders, carts, &stubPromoSvc{}, &stubWalletRepo{}, &stubPublisher{})

	got, err := svc.Checkout(context.Background(), "u1", CheckoutInput{PaymentMethod: "cod"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 300000 subtotal lands in the 200k-500k shipping tier.
	want := domain.OrderTotals{Subtotal: 300_000, ShippingFee: 30_000, DiscountAmount: 0, FinalAmount: 330_000}
	if got.Totals != want {
		t.Fatalf("totals = %+v, want %+v", got.Totals, want)
	}
	if got.Status != domain.OrderStatusPending {
		t.Fatalf("status = %q, want pending", got.Status)
	}
	if carts.emptiedID != "c1" {
		t.Fatalf("cart not emptied")
	}
}

func TestCheckoutAppliesPromotion(t *testing.T) {
	orders := &stubOrderRepo{}
	promos := &stubPromoSvc{result: promoeval.Result{
		Accepted:       true,
		DiscountAmount: 30_000,
		Promotion:      &domain.Promotion{ID: "p1", Code: "WELCOME10"},
	}}
	svc := newTestService(orders, &stubCartRepo{cart: testCart()}, promos, &stubWalletRepo{}, &stubPublisher{})

	got, err := svc.Checkout(context.Background(), "u1", CheckoutInput{PaymentMethod: "cod", PromotionCode: "welcome10"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Totals.DiscountAmount != 30_000 || got.Totals.FinalAmount != 300_000 {
		t.Fatalf("unexpected totals: %+v", got.Totals)
	}
	if got.PromotionCode != "WELCOME10" {
		t.Fatalf("promotion code = %q, want WELCOME10", got.PromotionCode)
	}
	if promos.redeemedID != "p1" {
		t.Fatalf("promotion usage not redeemed")
	}
}

func TestCheckoutRejectedPromotionFailsCheckout(t *testing.T) {
	promos := &stubPromoSvc{result: promoeval.Result{Reason: promoeval.ReasonExpired}}
	carts := &stubCartRepo{cart: testCart()}
	svc := newTestService(&stubOrderRepo{}, carts, promos, &stubWalletRepo{}, &stubPublisher{})

	_, err := svc.Checkout(context.Background(), "u1", CheckoutInput{PaymentMethod: "cod", PromotionCode: "OLD"})
	if err == nil || !strings.Contains(err.Error(), promoeval.ReasonExpired) {
		t.Fatalf("expected rejection error, got %v", err)
	}
	if carts.emptiedID != "" {
		t.Fatalf("cart emptied despite failed checkout")
	}
}

func TestCheckoutAwardsCoins(t *testing.T) {
	wallet := &stubWalletRepo{}
	pub := &stubPublisher{}
	svc := newTestService(&stubOrderRepo{}, &stubCartRepo{cart: testCart()}, &stubPromoSvc{}, wallet, pub)

	_, err := svc.Checkout(context.Background(), "u1", CheckoutInput{PaymentMethod: "cod"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(wallet.inserted) != 1 {
		t.Fatalf("expected 1 coin transaction, got %d", len(wallet.inserted))
	}
	// final 330000 / 1000 = 330 coins
	if wallet.inserted[0].Amount != 330 || wallet.inserted[0].Type != "bonus" {
		t.Fatalf("unexpected coin transaction: %+v", wallet.inserted[0])
	}
	if len(pub.placed) != 1 || len(pub.awarded) != 1 {
		t.Fatalf("expected events published, got %+v %+v", pub.placed, pub.awarded)
	}
}

func TestGetResolvesLegacyTotals(t *testing.T) {
	// Row written by an old API version: only total_amount populated.
	repo := &stubOrderRepo{byID: &domain.Order{
		ID:          "o1",
		TotalAmount: 250_000,
		Status:      domain.OrderStatusCompleted,
	}}
	svc := newTestService(repo, &stubCartRepo{}, &stubPromoSvc{}, &stubWalletRepo{}, &stubPublisher{})

	got, err := svc.Get(context.Background(), "u1", "o1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := domain.OrderTotals{Subtotal: 250_000, ShippingFee: 30_000, DiscountAmount: 0, FinalAmount: 280_000}
	if got.Totals != want {
		t.Fatalf("totals = %+v, want %+v", got.Totals, want)
	}
}

func TestGetBackSolvesSubtotal(t *testing.T) {
	repo := &stubOrderRepo{byID: &domain.Order{
		ID: "o1",
		Totals: domain.OrderTotals{
			FinalAmount:    420_000,
			DiscountAmount: 20_000,
			ShippingFee:    30_000,
		},
	}}
	svc := newTestService(repo, &stubCartRepo{}, &stubPromoSvc{}, &stubWalletRepo{}, &stubPublisher{})

	got, err := svc.Get(context.Background(), "u1", "o1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Totals.Subtotal != 410_000 {
		t.Fatalf("subtotal = %d, want back-solved 410000", got.Totals.Subtotal)
	}
}

func TestListResolvesEachOrder(t *testing.T) {
	repo := &stubOrderRepo{list: []domain.Order{
		{ID: "o1", Totals: domain.OrderTotals{Subtotal: 600_000}},
		{ID: "o2", Lines: []domain.OrderLine{{UnitPrice: 100_000, Quantity: 1}}},
	}}
	svc := newTestService(repo, &stubCartRepo{}, &stubPromoSvc{}, &stubWalletRepo{}, &stubPublisher{})

	got, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Totals.FinalAmount != 600_000 {
		t.Fatalf("o1 final = %d, want 600000 (free shipping tier)", got[0].Totals.FinalAmount)
	}
	if got[1].Totals.Subtotal != 100_000 || got[1].Totals.FinalAmount != 150_000 {
		t.Fatalf("o2 totals = %+v, want line-derived subtotal", got[1].Totals)
	}
}
