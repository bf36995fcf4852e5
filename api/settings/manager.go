package settings

import (
	"cocomanthra_server/store"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type SettingsRoutesManager struct {
	logger  *gecho.Logger
	catalog *store.CatalogStore
}

func NewSettingsRoutesManager(logger *gecho.Logger, catalog *store.CatalogStore) *SettingsRoutesManager {
	return &SettingsRoutesManager{
		logger:  logger,
		catalog: catalog,
	}
}

func (srm *SettingsRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/settings", srm.FetchSiteSettings)
}
