package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mirafzalswe/foodsave/api/controllers"
	"github.com/mirafzalswe/foodsave/api/middleware"
	"github.com/mirafzalswe/foodsave/internal/catalog"
	"github.com/mirafzalswe/foodsave/internal/discovery"
	"github.com/mirafzalswe/foodsave/internal/notifications"
	"github.com/mirafzalswe/foodsave/internal/offers"
	"github.com/mirafzalswe/foodsave/internal/orders"
	"github.com/mirafzalswe/foodsave/internal/vendors"
	"github.com/mirafzalswe/foodsave/pkg/config"
	"github.com/mirafzalswe/foodsave/pkg/db"
	"github.com/mirafzalswe/foodsave/pkg/logger"
	"github.com/mirafzalswe/foodsave/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	catalogService catalog.Service,
	vendorsService vendors.Service,
	offersService offers.Service,
	discoveryService discovery.Service,
	ordersService orders.Service,
	notificationsService notifications.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Identity(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/categories", controllers.ListCategories(catalogService, logg))
			r.Get("/items", controllers.ListItems(catalogService, logg))
			r.Get("/items/{itemId}", controllers.GetItem(catalogService, logg))
		})

		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", controllers.ListVendors(vendorsService, logg))
			r.Get("/{vendorId}", controllers.GetVendor(vendorsService, logg))
			r.Post("/{vendorId}/branches", controllers.CreateBranch(vendorsService, logg))
		})

		r.Route("/offers", func(r chi.Router) {
			r.Post("/", controllers.CreateOffer(offersService, logg))
			r.Get("/{offerId}", controllers.GetOffer(offersService, logg))
			r.Patch("/{offerId}/status", controllers.ChangeOfferStatus(offersService, logg))
		})

		r.Get("/map/nearby", controllers.MapNearby(discoveryService, logg))
		r.Get("/recommendations", controllers.Recommendations(discoveryService, logg))

		r.Route("/quick-sets", func(r chi.Router) {
			r.Get("/", controllers.QuickSets(discoveryService, logg))
			r.Get("/custom", controllers.ListCustomSets(discoveryService, logg))
			r.Post("/custom", controllers.SaveCustomSet(discoveryService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.Checkout(ordersService, logg))
			r.Get("/", controllers.ListOrders(ordersService, logg))
			r.Get("/{orderId}", controllers.GetOrder(ordersService, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(notificationsService, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(notificationsService, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(notificationsService, logg))
		})
	})

	return r
}
