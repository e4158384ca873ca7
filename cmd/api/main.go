package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"bookstore-storefront/internal/config"
	"bookstore-storefront/internal/db"
	"bookstore-storefront/internal/events"
	"bookstore-storefront/internal/httpserver"
	bookrepo "bookstore-storefront/internal/repository/book"
	cartrepo "bookstore-storefront/internal/repository/cart"
	orderrepo "bookstore-storefront/internal/repository/order"
	promorepo "bookstore-storefront/internal/repository/promotion"
	walletrepo "bookstore-storefront/internal/repository/wallet"
	cartsvc "bookstore-storefront/internal/service/cart"
	ordersvc "bookstore-storefront/internal/service/order"
	promosvc "bookstore-storefront/internal/service/promotion"
	walletsvc "bookstore-storefront/internal/service/wallet"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	var publisher events.Publisher = events.Noop{}
	if cfg.AMQPURL != "" {
		rabbit, err := events.NewRabbit(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Fatalf("connect to amqp: %v", err)
		}
		defer rabbit.Close()
		publisher = rabbit
	}

	bookRepo := bookrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool)
	promoRepo := promorepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	walletRepo := walletrepo.NewPostgres(dbpool)

	cartService := cartsvc.New(cartRepo, bookRepo)
	promoService := promosvc.New(promoRepo)
	walletService := walletsvc.New(walletRepo)
	orderService := ordersvc.New(orderRepo, cartRepo, promoService, walletRepo, publisher, logger)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		BookSvc:   bookRepo,
		CartSvc:   cartService,
		PromoSvc:  promoService,
		OrderSvc:  orderService,
		WalletSvc: walletService,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
