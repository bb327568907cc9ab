package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ruchulu/storefront-backend/api/routes"
	"github.com/ruchulu/storefront-backend/internal/autofill"
	"github.com/ruchulu/storefront-backend/internal/cart"
	"github.com/ruchulu/storefront-backend/internal/catalog"
	"github.com/ruchulu/storefront-backend/internal/checkout"
	"github.com/ruchulu/storefront-backend/internal/customers"
	"github.com/ruchulu/storefront-backend/internal/delivery"
	"github.com/ruchulu/storefront-backend/internal/orders"
	"github.com/ruchulu/storefront-backend/pkg/config"
	"github.com/ruchulu/storefront-backend/pkg/db"
	"github.com/ruchulu/storefront-backend/pkg/geocode"
	"github.com/ruchulu/storefront-backend/pkg/logger"
	"github.com/ruchulu/storefront-backend/pkg/metrics"
	"github.com/ruchulu/storefront-backend/pkg/migrate"
	"github.com/ruchulu/storefront-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	storefrontMetrics := metrics.NewStorefrontMetrics(prometheus.DefaultRegisterer)

	geocodeClient, err := geocode.NewClient(
		cfg.Geocode.UserAgent,
		geocode.WithBaseURL(cfg.Geocode.BaseURL),
		geocode.WithHTTPClient(&http.Client{Timeout: cfg.Geocode.Timeout}),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create geocode client", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(redisClient, cfg.Cart.TTL, storefrontMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	deliveryService, err := delivery.NewService(delivery.NewRepository(dbClient.DB()), cfg.Delivery)
	if err != nil {
		logg.Error(context.Background(), "failed to create delivery service", err)
		os.Exit(1)
	}

	customCityQuoter, err := delivery.NewCustomCityQuoter(geocodeClient, cfg.Delivery, storefrontMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create custom city quoter", err)
		os.Exit(1)
	}

	autofillService, err := autofill.NewService(geocodeClient, deliveryService, storefrontMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create autofill service", err)
		os.Exit(1)
	}

	customersRepo := customers.NewRepository(dbClient.DB())
	customersService, err := customers.NewService(customersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create customers service", err)
		os.Exit(1)
	}

	checkoutValidator, err := checkout.NewValidator(cfg.Delivery.EnabledStates)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout validator", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(
		orders.NewRepository(dbClient.DB()),
		dbClient,
		cartService,
		catalogService,
		deliveryService,
		checkoutValidator,
		customersRepo,
		storefrontMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			cartService,
			catalogService,
			deliveryService,
			customCityQuoter,
			autofillService,
			customersService,
			ordersService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
