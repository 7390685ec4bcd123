package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aleamz/salespoint/internal/app"
	"github.com/aleamz/salespoint/internal/catalog/products"
	"github.com/aleamz/salespoint/internal/platform/cache"
	"github.com/aleamz/salespoint/internal/platform/db"
	"github.com/aleamz/salespoint/internal/reports"
	"github.com/aleamz/salespoint/internal/sales/checkout"
	"github.com/aleamz/salespoint/internal/sales/customers"
	"github.com/aleamz/salespoint/internal/sales/orders"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	productsRepo := products.NewRepository(dbpool)
	productsService := products.NewService(productsRepo)
	productsHandler := products.NewHandler(logger, productsService)

	customersRepo := customers.NewRepository(dbpool)
	customersService := customers.NewService(customersRepo)
	customersHandler := customers.NewHandler(logger, customersService)

	reportsCache := reports.NewCache(redisClient, cfg.RevenueCacheTTL)
	if err := reportsCache.ListenForInvalidation(ctx, ""); err != nil {
		logger.Warn("reports cache subscribe", slog.Any("error", err))
	}

	ordersRepo := orders.NewRepository(dbpool)
	ordersService := orders.NewService(logger, ordersRepo, reportsCache)
	ordersHandler := orders.NewHandler(logger, ordersService)

	reportsService := reports.NewService(logger, ordersRepo, reportsCache)
	reportsHandler := reports.NewHandler(logger, reportsService)

	billStore := checkout.NewRedisStore(redisClient, cfg.BillTTL)
	checkoutService := checkout.NewService(logger, billStore, productsService, customersService, ordersService)
	checkoutHandler := checkout.NewHandler(logger, checkoutService)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		ProductsHandler:  productsHandler,
		CustomersHandler: customersHandler,
		CheckoutHandler:  checkoutHandler,
		OrdersHandler:    ordersHandler,
		ReportsHandler:   reportsHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
