package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ruchulu/storefront-backend/api/controllers"
	"github.com/ruchulu/storefront-backend/api/middleware"
	autofillsvc "github.com/ruchulu/storefront-backend/internal/autofill"
	cartsvc "github.com/ruchulu/storefront-backend/internal/cart"
	catalogsvc "github.com/ruchulu/storefront-backend/internal/catalog"
	customerssvc "github.com/ruchulu/storefront-backend/internal/customers"
	deliverysvc "github.com/ruchulu/storefront-backend/internal/delivery"
	orderssvc "github.com/ruchulu/storefront-backend/internal/orders"
	"github.com/ruchulu/storefront-backend/pkg/config"
	"github.com/ruchulu/storefront-backend/pkg/db"
	"github.com/ruchulu/storefront-backend/pkg/logger"
	"github.com/ruchulu/storefront-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	cartService cartsvc.Service,
	catalogService catalogsvc.Service,
	deliveryService deliverysvc.Service,
	customCityQuoter *deliverysvc.CustomCityQuoter,
	autofillService autofillsvc.Service,
	customersService customerssvc.Service,
	ordersService orderssvc.Service,
) http.Handler {
	r := chi.NewRouter()

	var redisP controllers.Pinger
	if redisClient != nil {
		redisP = redisClient
	}

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Session(logg))

		r.Get("/locations", controllers.Locations(deliveryService, logg))
		r.Get("/products", controllers.Products(catalogService, logg))
		r.Get("/products/{productId}", controllers.ProductByID(catalogService, logg))
		r.Get("/settings/free-delivery", controllers.FreeDeliverySetting(deliveryService, logg))
		r.Get("/user-details/{identifier}", controllers.UserDetails(customersService, logg))

		r.Post("/session/token", controllers.SessionToken(cfg.JWT, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(cartService, logg))
			r.Post("/items", controllers.CartAdd(cartService, logg))
			r.Put("/items", controllers.CartUpdateQuantity(cartService, logg))
			r.Delete("/items", controllers.CartRemove(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
		})

		r.Post("/delivery/quote", controllers.DeliveryQuote(deliveryService, logg))
		r.Post("/calculate-custom-city-delivery", controllers.CustomCityDelivery(customCityQuoter, logg))

		r.Post("/address/autofill", controllers.AddressAutofill(autofillService, logg))
		r.Post("/address/geolocation-failure", controllers.GeolocationFailure(logg))

		r.Get("/orders/{trackingCode}", controllers.OrderByTrackingCode(ordersService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Post("/orders", controllers.OrderPlace(ordersService, logg))
		})
	})

	return r
}
