package httpserver

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookstore-storefront/internal/domain"
	promoeval "bookstore-storefront/internal/promotion"
	cartsvc "bookstore-storefront/internal/service/cart"
	ordersvc "bookstore-storefront/internal/service/order"
	walletsvc "bookstore-storefront/internal/service/wallet"
)

// Deps carries the services the router needs.
type Deps struct {
	BookSvc   BookService
	CartSvc   CartService
	PromoSvc  PromotionService
	OrderSvc  OrderService
	WalletSvc WalletService
}

type BookService interface {
	List(ctx context.Context) ([]domain.Book, error)
	GetByID(ctx context.Context, id string) (*domain.Book, error)
}

type CartService interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, userID, bookID string, quantity int) (*domain.Cart, error)
	ChangeQuantity(ctx context.Context, userID, lineID string, quantity int) (*domain.CartLine, *domain.Cart, error)
	RemoveItem(ctx context.Context, userID, lineID string) (*domain.Cart, error)
}

type PromotionService interface {
	List(ctx context.Context) ([]domain.Promotion, error)
	Validate(ctx context.Context, code string, subtotal int64) (promoeval.Result, error)
}

type OrderService interface {
	Checkout(ctx context.Context, userID string, in ordersvc.CheckoutInput) (*domain.Order, error)
	Get(ctx context.Context, userID, orderID string) (*domain.Order, error)
	List(ctx context.Context, userID string) ([]domain.Order, error)
}

type WalletService interface {
	Balance(ctx context.Context, userID string) (int64, error)
	History(ctx context.Context, userID string) ([]walletsvc.Entry, error)
}

var _ CartService = (*cartsvc.Service)(nil)
var _ OrderService = (*ordersvc.Service)(nil)

// buildRouter wires the storefront routes.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, userHeader)
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	v1 := router.Group("/v1")
	v1.GET("/books", listBooksHandler(deps.BookSvc))
	v1.GET("/books/:bookID", getBookHandler(deps.BookSvc))
	v1.GET("/promotions", listPromotionsHandler(deps.PromoSvc))

	authed := v1.Group("", userMiddleware())
	authed.GET("/cart", getCartHandler(deps.CartSvc))
	authed.POST("/cart/items", addCartItemHandler(deps.CartSvc))
	authed.PATCH("/cart/items/:lineID", changeCartItemHandler(deps.CartSvc))
	authed.DELETE("/cart/items/:lineID", removeCartItemHandler(deps.CartSvc))
	authed.POST("/promotions/validate", validatePromotionHandler(deps.PromoSvc))
	authed.POST("/checkout", checkoutHandler(deps.OrderSvc))
	authed.GET("/orders", listOrdersHandler(deps.OrderSvc))
	authed.GET("/orders/:orderID", getOrderHandler(deps.OrderSvc))
	authed.GET("/wallet", walletHandler(deps.WalletSvc))
	authed.GET("/wallet/transactions", walletHistoryHandler(deps.WalletSvc))

	return router
}
