package admin

import (
	"net/http"

	"cocomanthra_server/lib"
	"cocomanthra_server/store"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (ar *AdminRoutesManager) CreateCollection(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[store.CollectionInput](r)
	if err != nil {
		ar.logger.Debug("Failed to extract and validate body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the collection information and try again"), gecho.Send())
		return
	}

	if err := ar.catalog.AddCollection(r.Context(), *body); err != nil {
		ar.respondWriteError(w, err, "Unable to create collection. Please try again")
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Collection created successfully"),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) UpdateCollection(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.collections.invalidCollectionId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[store.CollectionPatch](r)
	if err != nil {
		ar.logger.Debug("Failed to extract and validate body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the collection information and try again"), gecho.Send())
		return
	}

	if err := ar.catalog.UpdateCollection(r.Context(), id, *body); err != nil {
		ar.respondWriteError(w, err, "Unable to update collection. Please try again")
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Collection updated successfully"),
		gecho.Send(),
	)
}

// DeleteCollection also removes the collection's products through the
// cascading schema; callers should treat it as destructive.
func (ar *AdminRoutesManager) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.collections.invalidCollectionId"), gecho.Send())
		return
	}

	if err := ar.catalog.DeleteCollection(r.Context(), id); err != nil {
		ar.respondWriteError(w, err, "Unable to delete collection. Please try again")
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Collection deleted successfully"),
		gecho.Send(),
	)
}
