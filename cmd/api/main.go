package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/dannysckt/storefront-backend/api/routes"
	"github.com/dannysckt/storefront-backend/internal/bookings"
	"github.com/dannysckt/storefront-backend/internal/bulkorder"
	"github.com/dannysckt/storefront-backend/internal/cart"
	"github.com/dannysckt/storefront-backend/internal/catalog"
	"github.com/dannysckt/storefront-backend/internal/checkout"
	"github.com/dannysckt/storefront-backend/internal/distributors"
	"github.com/dannysckt/storefront-backend/internal/orders"
	"github.com/dannysckt/storefront-backend/pkg/config"
	"github.com/dannysckt/storefront-backend/pkg/db"
	"github.com/dannysckt/storefront-backend/pkg/enums"
	"github.com/dannysckt/storefront-backend/pkg/logger"
	"github.com/dannysckt/storefront-backend/pkg/metrics"
	"github.com/dannysckt/storefront-backend/pkg/migrate"
	"github.com/dannysckt/storefront-backend/pkg/redis"
	"github.com/dannysckt/storefront-backend/pkg/stripe"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	stripeClient, err := stripe.NewClient(context.Background(), cfg.Stripe, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap stripe", err)
		os.Exit(1)
	}

	catalogRepo := catalog.NewRepository(dbClient.DB())
	catalogService, err := catalog.NewService(catalogRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartStore, err := cart.NewStore(redisClient, cfg.Cart.SessionTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}
	cartService, err := cart.NewService(cartStore, catalogRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	ordersRepo := orders.NewRepository(dbClient.DB())
	ordersService, err := orders.NewService(ordersRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	distributorsService, err := distributors.NewService(distributors.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create distributors service", err)
		os.Exit(1)
	}

	bulkService, err := bulkorder.NewService(distributorsService, catalogRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create bulk order service", err)
		os.Exit(1)
	}

	bookingsService, err := bookings.NewService(dbClient, bookings.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create bookings service", err)
		os.Exit(1)
	}

	currency, err := enums.ParseCurrency(cfg.Checkout.Currency)
	if err != nil {
		logg.Error(context.Background(), "invalid checkout currency", err)
		os.Exit(1)
	}
	checkoutService, err := checkout.NewService(
		dbClient,
		redisClient,
		ordersRepo,
		cartStore,
		bulkService,
		stripeClient,
		catalogRepo,
		checkout.Config{
			Currency:       currency,
			SubmitGuardTTL: cfg.Checkout.SubmitGuardTTL,
		},
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			metrics.NewHTTPMetrics(),
			dbClient,
			redisClient,
			catalogService,
			cartService,
			checkoutService,
			ordersService,
			bulkService,
			bookingsService,
			distributorsService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
