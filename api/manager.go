package api

import (
	"cocomanthra_server/api/admin"
	"cocomanthra_server/api/collections"
	"cocomanthra_server/api/debug"
	"cocomanthra_server/api/health"
	"cocomanthra_server/api/inquiries"
	"cocomanthra_server/api/products"
	"cocomanthra_server/api/settings"

	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	productRoutes    *products.ProductRoutesManager
	collectionRoutes *collections.CollectionRoutesManager
	settingsRoutes   *settings.SettingsRoutesManager
	inquiryRoutes    *inquiries.InquiryRoutesManager
	adminRoutes      *admin.AdminRoutesManager
	healthRoutes     *health.HealthRoutesManager
	debugRoutes      *debug.DebugRoutesManager
}

func NewRouterManager(
	productRoutes *products.ProductRoutesManager,
	collectionRoutes *collections.CollectionRoutesManager,
	settingsRoutes *settings.SettingsRoutesManager,
	inquiryRoutes *inquiries.InquiryRoutesManager,
	adminRoutes *admin.AdminRoutesManager,
	healthRoutes *health.HealthRoutesManager,
	debugRoutes *debug.DebugRoutesManager,
) *routerManager {
	return &routerManager{
		productRoutes:    productRoutes,
		collectionRoutes: collectionRoutes,
		settingsRoutes:   settingsRoutes,
		inquiryRoutes:    inquiryRoutes,
		adminRoutes:      adminRoutes,
		healthRoutes:     healthRoutes,
		debugRoutes:      debugRoutes,
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.productRoutes.RegisterRoutes(r)
	rm.collectionRoutes.RegisterRoutes(r)
	rm.settingsRoutes.RegisterRoutes(r)
	rm.inquiryRoutes.RegisterRoutes(r)
	rm.adminRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
	rm.debugRoutes.RegisterRoutes(r)
}
