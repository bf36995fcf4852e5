package health

import (
	"cocomanthra_server/services"
	"cocomanthra_server/store"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HealthRoutesManager struct {
	healthService *services.HealthService
	catalog       *store.CatalogStore
}

func NewHealthRoutesManager(healthService *services.HealthService, catalog *store.CatalogStore) *HealthRoutesManager {
	return &HealthRoutesManager{
		healthService: healthService,
		catalog:       catalog,
	}
}

func (hrm *HealthRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/health/server", hrm.GetServerHealth)
	r.Get("/health/database", hrm.GetDatabaseHealth)
	r.Get("/health/catalog", hrm.GetCatalogHealth)

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	// Register Prometheus metrics
	prometheus.MustRegister(HttpDuration, HttpRequests)
	prometheus.MustRegister(hrm.catalogGauges()...)
}

// catalogGauges exposes snapshot freshness so a stale or failing store is
// visible without scraping the health endpoint.
func (hrm *HealthRoutesManager) catalogGauges() []prometheus.Collector {
	return []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "catalog", Subsystem: "store", Name: "products",
			Help: "Products in the current snapshot",
		}, func() float64 { return float64(len(hrm.catalog.Products())) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "catalog", Subsystem: "store", Name: "collections",
			Help: "Collections in the current snapshot",
		}, func() float64 { return float64(len(hrm.catalog.Collections())) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "catalog", Subsystem: "store", Name: "load_error",
			Help: "1 when the last reload failed and stale data is served",
		}, func() float64 {
			if hrm.catalog.LoadError() != "" {
				return 1
			}
			return 0
		}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "catalog", Subsystem: "store", Name: "last_load_timestamp_seconds",
			Help: "Unix time of the last successful snapshot load",
		}, func() float64 {
			last := hrm.catalog.LastLoad()
			if last.IsZero() {
				return 0
			}
			return float64(last.Unix())
		}),
	}
}
