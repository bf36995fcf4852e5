package admin

import (
	"errors"
	"net/http"

	"cocomanthra_server/handling"
	"cocomanthra_server/lib"
	"cocomanthra_server/store"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AdminRoutesManager struct {
	logger  *gecho.Logger
	catalog *store.CatalogStore
}

func NewAdminRoutesManager(logger *gecho.Logger, catalog *store.CatalogStore) *AdminRoutesManager {
	return &AdminRoutesManager{
		logger:  logger,
		catalog: catalog,
	}
}

func (ar *AdminRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Post("/products", ar.CreateProduct)
		r.Put("/products/{id}", ar.UpdateProduct)
		r.Delete("/products/{id}", ar.DeleteProduct)

		r.Post("/collections", ar.CreateCollection)
		r.Put("/collections/{id}", ar.UpdateCollection)
		r.Delete("/collections/{id}", ar.DeleteCollection)

		r.Put("/settings/hero", ar.UpdateHeroProduct)
		r.Patch("/settings/brand", ar.UpdateBrandSettings)
	})
}

// respondWriteError maps the catalog write sentinels onto status codes.
func (ar *AdminRoutesManager) respondWriteError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, lib.ErrCollectionNotFound):
		gecho.BadRequest(w,
			gecho.WithMessage("Unknown collection"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
	case errors.Is(err, lib.ErrNotFound):
		gecho.NotFound(w, gecho.Send())
	case errors.Is(err, lib.ErrConflict):
		gecho.Conflict(w,
			gecho.WithMessage("A record with these values already exists"),
			gecho.Send(),
		)
	default:
		handling.HandleError(err, msg, ar.logger, w)
	}
}
