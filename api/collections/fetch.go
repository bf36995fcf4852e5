package collections

import (
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// FetchAllCollections handles GET /collections.
func (crm *CollectionRoutesManager) FetchAllCollections(w http.ResponseWriter, r *http.Request) {
	collections := crm.catalog.Collections()

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"collections": collections,
			"meta": map[string]any{
				"count": len(collections),
			},
		}),
		gecho.Send(),
	)
}

// FetchCollectionByID handles GET /collections/{id}.
func (crm *CollectionRoutesManager) FetchCollectionByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	collection, ok := crm.catalog.GetCollectionByID(id)
	if !ok {
		gecho.NotFound(w,
			gecho.WithMessage("error.collections.notFound"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"collection": collection,
		}),
		gecho.Send(),
	)
}

// FetchCollectionByName handles GET /collections/name/{name}. The lookup is
// exact; the product list under it follows the browse semantics, so the
// collection's own products ride along.
func (crm *CollectionRoutesManager) FetchCollectionByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	collection, ok := crm.catalog.GetCollectionByName(name)
	if !ok {
		gecho.NotFound(w,
			gecho.WithMessage("error.collections.notFound"),
			gecho.Send(),
		)
		return
	}

	products := crm.catalog.GetProductsByCollection(collection.Name)

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"collection": collection,
			"products":   products,
			"meta": map[string]any{
				"count": len(products),
			},
		}),
		gecho.Send(),
	)
}
