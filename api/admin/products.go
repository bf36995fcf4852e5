package admin

import (
	"net/http"

	"cocomanthra_server/lib"
	"cocomanthra_server/store"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (ar *AdminRoutesManager) CreateProduct(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[store.ProductInput](r)
	if err != nil {
		ar.logger.Debug("Failed to extract and validate body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the product information and try again"), gecho.Send())
		return
	}

	if err := ar.catalog.AddProduct(r.Context(), *body); err != nil {
		ar.respondWriteError(w, err, "Unable to create product. Please try again")
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product created successfully"),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.products.invalidProductId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[store.ProductPatch](r)
	if err != nil {
		ar.logger.Debug("Failed to extract and validate body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the product information and try again"), gecho.Send())
		return
	}

	if err := ar.catalog.UpdateProduct(r.Context(), id, *body); err != nil {
		ar.respondWriteError(w, err, "Unable to update product. Please try again")
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product updated successfully"),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.products.invalidProductId"), gecho.Send())
		return
	}

	if err := ar.catalog.DeleteProduct(r.Context(), id); err != nil {
		ar.respondWriteError(w, err, "Unable to delete product. Please try again")
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product deleted successfully"),
		gecho.Send(),
	)
}
