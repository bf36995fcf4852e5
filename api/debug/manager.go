package debug

import (
	"cocomanthra_server/config"
	"cocomanthra_server/services"
	"cocomanthra_server/store"

	"github.com/go-chi/chi/v5"
)

type DebugRoutesManager struct {
	cacheService *services.CacheService
	catalog      *store.CatalogStore
}

func NewDebugRoutesManager(cacheService *services.CacheService, catalog *store.CatalogStore) *DebugRoutesManager {
	return &DebugRoutesManager{
		cacheService: cacheService,
		catalog:      catalog,
	}
}

func (drm *DebugRoutesManager) RegisterRoutes(r chi.Router) {
	// Debug routes - only in non-production environments
	if !config.IsProduction() {
		r.Route("/debug", func(r chi.Router) {
			r.Get("/store", drm.StoreState)
			r.Get("/cache/stats", drm.CacheStats)
			r.Get("/ratelimit", drm.RateLimitStatus)
			r.Post("/store/refresh", drm.RefreshStore)
		})
	}
}
