package products

import (
	"cocomanthra_server/services"
	"cocomanthra_server/store"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ProductRoutesManager struct {
	logger         *gecho.Logger
	catalog        *store.CatalogStore
	inquiryService *services.InquiryService
}

func NewProductRoutesManager(
	logger *gecho.Logger,
	catalog *store.CatalogStore,
	inquiryService *services.InquiryService,
) *ProductRoutesManager {
	return &ProductRoutesManager{
		logger:         logger,
		catalog:        catalog,
		inquiryService: inquiryService,
	}
}

func (prm *ProductRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/products", prm.FetchAllProducts)
	r.Get("/products/featured", prm.FetchFeaturedProducts)
	r.Get("/products/{id}", prm.FetchProductByID)
}
