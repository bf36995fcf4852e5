package api

import (
	"net/http"

	"cocomanthra_server/api/admin"
	"cocomanthra_server/api/collections"
	"cocomanthra_server/api/debug"
	"cocomanthra_server/api/health"
	"cocomanthra_server/api/inquiries"
	"cocomanthra_server/api/middleware"
	"cocomanthra_server/api/products"
	"cocomanthra_server/api/settings"
	"cocomanthra_server/config"
	"cocomanthra_server/services"
	"cocomanthra_server/store"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	chiware "github.com/go-chi/chi/v5/middleware"
)

func App(catalog *store.CatalogStore, sm *services.ServiceManager) chi.Router {
	r := chi.NewRouter()

	// create loggers
	logLevel := gecho.ParseLogLevel(config.GetLogLevel())
	mwLogger := gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(false), gecho.WithLogLevel(logLevel)))
	standardLogger := gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(true), gecho.WithLogLevel(logLevel)))

	// config
	cfg := config.GetConfig()

	// Initialize middleware
	mw := middleware.NewMiddleware(cfg, mwLogger, sm.CacheService)

	// Core infra
	r.Use(chiware.RequestID)
	r.Use(chiware.RealIP)
	r.Use(chiware.Recoverer)

	// Limits & security
	r.Use(mw.BodyLimit(1 * 1024 * 1024))
	r.Use(mw.SecurityHeaders())

	// Observability
	r.Use(mw.SetupLoggerMiddleware())
	r.Use(middleware.MetricsMiddleware)

	// CORS
	r.Use(mw.SetupCORS().Handler)

	// Rate limiting
	r.Use(mw.RateLimitMiddleware())

	// Register all routes
	NewRouterManager(
		products.NewProductRoutesManager(standardLogger, catalog, sm.InquiryService),
		collections.NewCollectionRoutesManager(standardLogger, catalog),
		settings.NewSettingsRoutesManager(standardLogger, catalog),
		inquiries.NewInquiryRoutesManager(standardLogger, catalog, sm.InquiryService),
		admin.NewAdminRoutesManager(standardLogger, catalog),
		health.NewHealthRoutesManager(sm.HealthService, catalog),
		debug.NewDebugRoutesManager(sm.CacheService, catalog),
	).RegisterRoutes(r)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		gecho.Success(w,
			gecho.WithMessage("Welcome to the CocoManthra API"),
			gecho.Send(),
		)
	})

	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		gecho.NotFound(w,
			gecho.Send(),
		)
	})

	return r
}
