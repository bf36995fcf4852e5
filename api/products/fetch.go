package products

import (
	"net/http"
	"strings"

	"cocomanthra_server/handling"
	"cocomanthra_server/store"
	"cocomanthra_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

const maxRelatedProducts = 4

// FetchAllProducts handles GET /products with search, collection and
// featured filters. Everything is answered from the in-memory snapshot.
func (prm *ProductRoutesManager) FetchAllProducts(w http.ResponseWriter, r *http.Request) {
	opts, err := handling.ParseProductListOptions(r)
	if err != nil {
		prm.logger.Warn("Invalid query parameters", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("error.invalidQueryParameters"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	products := prm.filterProducts(opts)

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products": products,
			"filters":  opts,
			"meta": map[string]any{
				"count":      len(products),
				"stale":      prm.catalog.LoadError() != "",
				"load_error": prm.catalog.LoadError(),
			},
		}),
		gecho.Send(),
	)
}

// filterProducts composes the snapshot accessors: search first, then the
// collection filter, then featured.
func (prm *ProductRoutesManager) filterProducts(opts *handling.ProductListOptions) []structs.Product {
	var products []structs.Product
	if opts.SearchTerm != "" {
		products = prm.catalog.SearchProducts(opts.SearchTerm)
	} else {
		products = prm.catalog.Products()
	}

	if opts.Collection != "" && !strings.EqualFold(opts.Collection, store.AllCollections) {
		filtered := products[:0]
		for _, p := range products {
			if strings.EqualFold(p.Collection, opts.Collection) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	if opts.Featured != nil {
		filtered := products[:0]
		for _, p := range products {
			if p.Featured == *opts.Featured {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	return products
}

// FetchFeaturedProducts handles GET /products/featured for the landing page.
func (prm *ProductRoutesManager) FetchFeaturedProducts(w http.ResponseWriter, r *http.Request) {
	products := prm.catalog.GetFeaturedProducts()

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products": products,
			"meta": map[string]any{
				"count": len(products),
			},
		}),
		gecho.Send(),
	)
}

// FetchProductByID handles GET /products/{id}. The payload carries the
// contact-to-order links and up to four related products from the same
// collection.
func (prm *ProductRoutesManager) FetchProductByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		gecho.BadRequest(w,
			gecho.WithMessage("error.products.productIdRequired"),
			gecho.Send(),
		)
		return
	}

	product, ok := prm.catalog.GetProductByID(id)
	if !ok {
		gecho.NotFound(w,
			gecho.WithMessage("error.products.notFound"),
			gecho.Send(),
		)
		return
	}

	related := make([]structs.Product, 0, maxRelatedProducts)
	for _, p := range prm.catalog.GetProductsByCollection(product.Collection) {
		if p.ID == product.ID {
			continue
		}
		related = append(related, p)
		if len(related) == maxRelatedProducts {
			break
		}
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"product": product,
			"contact": prm.inquiryService.BuildContactLinks(product),
			"related": related,
		}),
		gecho.Send(),
	)
}
