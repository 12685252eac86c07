package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marisolvega/vendorhub-backend/api/controllers"
	"github.com/marisolvega/vendorhub-backend/api/middleware"
	"github.com/marisolvega/vendorhub-backend/internal/analytics"
	"github.com/marisolvega/vendorhub-backend/internal/cart"
	"github.com/marisolvega/vendorhub-backend/internal/drafts"
	"github.com/marisolvega/vendorhub-backend/internal/ledger"
	"github.com/marisolvega/vendorhub-backend/internal/orders"
	"github.com/marisolvega/vendorhub-backend/pkg/config"
	"github.com/marisolvega/vendorhub-backend/pkg/enums"
	"github.com/marisolvega/vendorhub-backend/pkg/logger"
	"github.com/marisolvega/vendorhub-backend/pkg/metrics"
	pkgredis "github.com/marisolvega/vendorhub-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Probes      map[string]controllers.Probe
	Idempotency pkgredis.IdempotencyStore
	HTTPMetrics *metrics.HTTPMetrics
	Registry    *prometheus.Registry

	Cart      cart.Service
	Orders    orders.Service
	Ledger    ledger.Service
	Drafts    drafts.Service
	Analytics analytics.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg, logg := deps.Config, deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Probes))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(
			middleware.Auth(cfg.JWT, logg),
			middleware.Idempotency(deps.Idempotency, logg),
		)

		vendorOnly := middleware.RequireRole(logg, string(enums.MemberRoleVendor), string(enums.MemberRoleAdmin))
		distributorOnly := middleware.RequireRole(logg, string(enums.MemberRoleDistributor), string(enums.MemberRoleAdmin))

		r.Group(func(r chi.Router) {
			r.Use(vendorOnly)

			r.Route("/carts/{distributorID}", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(deps.Cart, logg))
				r.Post("/items", controllers.CartAddItem(deps.Cart, logg))
				r.Post("/items/decrement", controllers.CartDecrementItem(deps.Cart, logg))
			})

			r.Route("/drafts", func(r chi.Router) {
				r.Get("/", controllers.DraftList(deps.Drafts, logg))
				r.Post("/", controllers.DraftSave(deps.Drafts, logg))
				r.Get("/{draftID}", controllers.DraftFetch(deps.Drafts, logg))
				r.Delete("/{draftID}", controllers.DraftDelete(deps.Drafts, logg))
				r.Post("/{draftID}/resume", controllers.DraftResume(deps.Drafts, logg))
			})

			r.Route("/credit/{distributorID}", func(r chi.Router) {
				r.Get("/balance", controllers.CreditBalance(deps.Ledger, logg))
				r.Get("/entries", controllers.CreditEntries(deps.Ledger, logg))
			})

			r.Post("/orders", controllers.OrderPlace(deps.Orders, logg))
			r.Get("/orders", controllers.OrderList(deps.Orders, logg))
			r.Get("/orders/{orderID}", controllers.OrderFetch(deps.Orders, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(distributorOnly)

			r.Post("/orders/{orderID}/payments", controllers.OrderRecordPayment(deps.Orders, logg))
			r.Post("/credit/grants", controllers.CreditGrant(deps.Ledger, logg))
			r.Get("/analytics/profit", controllers.AnalyticsProfit(deps.Analytics, logg))
			r.Post("/analytics/resets", controllers.AnalyticsReset(deps.Analytics, logg))
		})
	})

	return r
}
