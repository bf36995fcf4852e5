package debug

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (drm *DebugRoutesManager) StoreState(w http.ResponseWriter, r *http.Request) {
	gecho.Success(w,
		gecho.WithData(map[string]any{
			"loading":     drm.catalog.Loading(),
			"load_error":  drm.catalog.LoadError(),
			"last_load":   drm.catalog.LastLoad(),
			"products":    len(drm.catalog.Products()),
			"collections": len(drm.catalog.Collections()),
			"settings":    drm.catalog.SiteSettings(),
		}),
		gecho.Send(),
	)
}

// RefreshStore forces a snapshot reload, bypassing the change listener.
func (drm *DebugRoutesManager) RefreshStore(w http.ResponseWriter, r *http.Request) {
	if err := drm.catalog.Refresh(r.Context()); err != nil {
		gecho.InternalServerError(w,
			gecho.WithMessage("error.store.refreshFailed"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.store.refreshed"),
		gecho.Send(),
	)
}

func (drm *DebugRoutesManager) CacheStats(w http.ResponseWriter, r *http.Request) {
	stats := drm.cacheService.GetConnectionStats()

	stats["reachable"] = true
	if err := drm.cacheService.Ping(); err != nil {
		stats["reachable"] = false
		stats["ping_error"] = err.Error()
	}

	gecho.Success(w,
		gecho.WithData(stats),
		gecho.Send(),
	)
}

// RateLimitStatus reports the current counter for an ip/endpoint pair.
func (drm *DebugRoutesManager) RateLimitStatus(w http.ResponseWriter, r *http.Request) {
	ip := r.URL.Query().Get("ip")
	endpoint := r.URL.Query().Get("endpoint")
	if ip == "" || endpoint == "" {
		gecho.BadRequest(w,
			gecho.WithMessage("Both 'ip' and 'endpoint' query parameters are required"),
			gecho.Send(),
		)
		return
	}

	status, err := drm.cacheService.GetRateLimitStatus(ip, endpoint)
	if err != nil {
		gecho.InternalServerError(w,
			gecho.WithMessage("error.cache.rateLimitStatusFailed"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(status),
		gecho.Send(),
	)
}
