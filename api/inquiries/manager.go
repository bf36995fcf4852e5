package inquiries

import (
	"cocomanthra_server/services"
	"cocomanthra_server/store"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type InquiryRoutesManager struct {
	logger         *gecho.Logger
	catalog        *store.CatalogStore
	inquiryService *services.InquiryService
}

func NewInquiryRoutesManager(
	logger *gecho.Logger,
	catalog *store.CatalogStore,
	inquiryService *services.InquiryService,
) *InquiryRoutesManager {
	return &InquiryRoutesManager{
		logger:         logger,
		catalog:        catalog,
		inquiryService: inquiryService,
	}
}

func (irm *InquiryRoutesManager) RegisterRoutes(r chi.Router) {
	r.Post("/inquiries", irm.CreateInquiry)
}
