package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dannysckt/storefront-backend/api/controllers"
	"github.com/dannysckt/storefront-backend/api/middleware"
	bookingsvc "github.com/dannysckt/storefront-backend/internal/bookings"
	bulksvc "github.com/dannysckt/storefront-backend/internal/bulkorder"
	cartsvc "github.com/dannysckt/storefront-backend/internal/cart"
	"github.com/dannysckt/storefront-backend/internal/catalog"
	checkoutsvc "github.com/dannysckt/storefront-backend/internal/checkout"
	distributorsvc "github.com/dannysckt/storefront-backend/internal/distributors"
	ordersvc "github.com/dannysckt/storefront-backend/internal/orders"
	"github.com/dannysckt/storefront-backend/pkg/config"
	"github.com/dannysckt/storefront-backend/pkg/db"
	"github.com/dannysckt/storefront-backend/pkg/enums"
	"github.com/dannysckt/storefront-backend/pkg/logger"
	"github.com/dannysckt/storefront-backend/pkg/metrics"
	"github.com/dannysckt/storefront-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	httpMetrics *metrics.HTTPMetrics,
	dbP db.Pinger,
	redisClient *redis.Client,
	catalogService catalog.Service,
	cartService cartsvc.Service,
	checkoutService checkoutsvc.Service,
	ordersService ordersvc.Service,
	bulkService bulksvc.Service,
	bookingsService bookingsvc.Service,
	distributorsService distributorsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
	)

	var redisP redis.Pinger
	if redisClient != nil {
		redisP = redisClient
	}
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if httpMetrics != nil {
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		// public storefront reads
		r.Get("/products", controllers.ListProducts(catalogService, logg))
		r.Get("/products/{productId}", controllers.GetProduct(catalogService, logg))
		r.Get("/events", controllers.EventsList(bookingsService, logg))
		r.Get("/events/{eventId}", controllers.EventDetail(bookingsService, logg))
		r.Get("/distributor/packages", controllers.DistributorPackages(distributorsService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			if redisClient != nil {
				r.Use(middleware.RateLimit(redisClient, cfg.Checkout.RateLimitMax, cfg.Checkout.RateLimitWindow, logg))
				r.Use(middleware.Idempotency(redisClient, logg))
			}

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(cartService, logg))
				r.Post("/items", controllers.CartAddItem(cartService, logg))
				r.Patch("/items/{productId}", controllers.CartUpdateItem(cartService, logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(cartService, logg))
				r.Delete("/", controllers.CartClear(cartService, logg))
			})

			r.Post("/checkout", controllers.CheckoutSubmit(checkoutService, logg))
			r.Post("/checkout/{orderId}/confirm", controllers.CheckoutConfirm(checkoutService, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrdersList(ordersService, logg))
				r.Get("/{orderId}", controllers.OrderDetail(ordersService, logg))
			})

			r.Post("/events/{eventId}/bookings", controllers.EventBook(bookingsService, logg))
			r.Route("/bookings", func(r chi.Router) {
				r.Get("/", controllers.BookingsList(bookingsService, logg))
				r.Post("/{bookingId}/cancel", controllers.BookingCancel(bookingsService, logg))
			})

			r.Route("/distributor", func(r chi.Router) {
				r.Post("/register", controllers.DistributorRegister(distributorsService, logg))
				r.Get("/subscription", controllers.DistributorSubscription(distributorsService, logg))

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(string(enums.RoleDistributor), logg))
					r.Get("/order-form", controllers.BulkOrderForm(bulkService, logg))
					r.Post("/orders", controllers.BulkOrderSubmit(checkoutService, logg))
				})
			})

			r.Route("/vendor", func(r chi.Router) {
				r.Use(middleware.RequireRole(string(enums.RoleVendor), logg))
				r.Get("/events/{eventId}/bookings", controllers.VendorEventBookings(bookingsService, logg))
			})
		})
	})

	return r
}
