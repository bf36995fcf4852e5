package collections

import (
	"cocomanthra_server/store"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type CollectionRoutesManager struct {
	logger  *gecho.Logger
	catalog *store.CatalogStore
}

func NewCollectionRoutesManager(logger *gecho.Logger, catalog *store.CatalogStore) *CollectionRoutesManager {
	return &CollectionRoutesManager{
		logger:  logger,
		catalog: catalog,
	}
}

func (crm *CollectionRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/collections", crm.FetchAllCollections)
	r.Get("/collections/{id}", crm.FetchCollectionByID)
	r.Get("/collections/name/{name}", crm.FetchCollectionByName)
}
