package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"

	"bookstore-storefront/internal/domain"
	"bookstore-storefront/internal/pricing"
	promoeval "bookstore-storefront/internal/promotion"
)

// Coins are awarded at checkout: one coin per this many đồng of the final
// amount.
const coinAwardUnit = 1_000

type Service struct {
	repo       orderRepo
	cartRepo   cartRepo
	promoSvc   promotionService
	walletRepo walletRepo
	publisher  eventPublisher
	logger     *log.Logger
}

type orderRepo interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, userID, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

type cartRepo interface {
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	Empty(ctx context.Context, cartID string) error
}

type promotionService interface {
	Validate(ctx context.Context, code string, subtotal int64) (promoeval.Result, error)
	Redeem(ctx context.Context, promotionID string) error
}

type walletRepo interface {
	Insert(ctx context.Context, tx domain.CoinTransaction) (*domain.CoinTransaction, error)
}

type eventPublisher interface {
	OrderPlaced(ctx context.Context, o domain.Order) error
	CoinsAwarded(ctx context.Context, userID, orderID string, amount int64) error
}

func New(repo orderRepo, cartRepo cartRepo, promoSvc promotionService, walletRepo walletRepo, publisher eventPublisher, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		repo:       repo,
		cartRepo:   cartRepo,
		promoSvc:   promoSvc,
		walletRepo: walletRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

type CheckoutInput struct {
	PaymentMethod string `json:"paymentMethod"`
	PromotionCode string `json:"promotionCode,omitempty"`
}

// Checkout turns the user's cart into an order. The totals are computed
// once here and stored fully populated; the resolver on the read path
// exists for rows older code wrote with fewer columns.
func (s *Service) Checkout(ctx context.Context, userID string, in CheckoutInput) (*domain.Order, error) {
	if strings.TrimSpace(in.PaymentMethod) == "" {
		return nil, errors.New("paymentMethod required")
	}

	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEmptyCart
		}
		return nil, err
	}
	if len(cart.Lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	var subtotal int64
	lines := make([]domain.OrderLine, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lineSubtotal := l.Subtotal()
		subtotal += lineSubtotal
		lines = append(lines, domain.OrderLine{
			BookID:       l.BookID,
			Title:        l.Title,
			UnitPrice:    l.UnitPrice,
			Quantity:     l.Quantity,
			LineSubtotal: lineSubtotal,
		})
	}

	fee := pricing.ShippingFee(subtotal)

	var discount int64
	var promoCode string
	var promoID string
	if code := promoeval.Canonical(in.PromotionCode); code != "" {
		res, err := s.promoSvc.Validate(ctx, code, subtotal)
		if err != nil {
			return nil, err
		}
		if !res.Accepted {
			return nil, fmt.Errorf("promotion rejected: %s", res.Reason)
		}
		discount = res.DiscountAmount
		promoCode = res.Promotion.Code
		promoID = res.Promotion.ID
	}

	totals := pricing.Resolve(pricing.PartialTotals{
		Subtotal:       subtotal,
		ShippingFee:    fee,
		DiscountAmount: discount,
	}, nil)

	created, err := s.repo.Create(ctx, domain.Order{
		Code:          uuid.NewString(),
		UserID:        userID,
		Lines:         lines,
		Totals:        domain.OrderTotals(totals),
		TotalAmount:   totals.Subtotal,
		PaymentMethod: in.PaymentMethod,
		Status:        domain.OrderStatusPending,
		PromotionCode: promoCode,
	})
	if err != nil {
		return nil, err
	}

	if promoID != "" {
		if err := s.promoSvc.Redeem(ctx, promoID); err != nil {
			s.logger.Printf("order service: redeem promotion %s: %v", promoID, err)
		}
	}
	if err := s.cartRepo.Empty(ctx, cart.ID); err != nil {
		s.logger.Printf("order service: empty cart %s: %v", cart.ID, err)
	}

	s.awardCoins(ctx, created)

	if err := s.publisher.OrderPlaced(ctx, *created); err != nil {
		s.logger.Printf("order service: publish order.placed for %s: %v", created.ID, err)
	}

	return created, nil
}

func (s *Service) awardCoins(ctx context.Context, o *domain.Order) {
	coins := o.Totals.FinalAmount / coinAwardUnit
	if coins <= 0 {
		return
	}
	_, err := s.walletRepo.Insert(ctx, domain.CoinTransaction{
		UserID: o.UserID,
		Type:   "bonus",
		Amount: coins,
		Status: "completed",
		Note:   "order " + o.Code,
	})
	if err != nil {
		s.logger.Printf("order service: award coins for %s: %v", o.ID, err)
		return
	}
	if err := s.publisher.CoinsAwarded(ctx, o.UserID, o.ID, coins); err != nil {
		s.logger.Printf("order service: publish coins.awarded for %s: %v", o.ID, err)
	}
}

// Get returns one order with its totals reconciled. Stored rows may carry
// any subset of the totals columns depending on which API version wrote
// them.
func (s *Service) Get(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	o, err := s.repo.GetByID(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	resolveTotals(o)
	return o, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		resolveTotals(&orders[i])
	}
	return orders, nil
}

func resolveTotals(o *domain.Order) {
	lines := make([]pricing.Line, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, pricing.Line{UnitPrice: l.UnitPrice, Quantity: l.Quantity, Subtotal: l.LineSubtotal})
	}
	resolved := pricing.Resolve(pricing.PartialTotals{
		Subtotal:       o.Totals.Subtotal,
		TotalAmount:    o.TotalAmount,
		ShippingFee:    o.Totals.ShippingFee,
		DiscountAmount: o.Totals.DiscountAmount,
		FinalAmount:    o.Totals.FinalAmount,
	}, lines)
	o.Totals = domain.OrderTotals(resolved)
}
