package store

import (
	"strings"
	"time"

	"cocomanthra_server/structs"
)

// AllCollections is the special collection filter that disables filtering.
const AllCollections = "all"

// Products returns a copy of the current product snapshot, newest first.
func (cs *CatalogStore) Products() []structs.Product {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	out := make([]structs.Product, len(cs.products))
	copy(out, cs.products)
	return out
}

// Collections returns a copy of the current collection snapshot, ordered
// by name.
func (cs *CatalogStore) Collections() []structs.Collection {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	out := make([]structs.Collection, len(cs.collections))
	copy(out, cs.collections)
	return out
}

// SiteSettings returns the current settings, falling back to the built-in
// defaults before the first successful load.
func (cs *CatalogStore) SiteSettings() structs.SiteSettings {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	return cs.settings
}

// Loading reports whether a load is in flight.
func (cs *CatalogStore) Loading() bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	return cs.loading
}

// LoadError returns the user-visible message of the last fatal load
// failure, or "" when the last load succeeded.
func (cs *CatalogStore) LoadError() string {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	return cs.loadErr
}

// LastLoad returns when the snapshot was last replaced; zero before the
// first successful load.
func (cs *CatalogStore) LastLoad() time.Time {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	return cs.lastLoad
}

func (cs *CatalogStore) GetProductByID(id string) (structs.Product, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	for _, p := range cs.products {
		if p.ID == id {
			return p, true
		}
	}
	return structs.Product{}, false
}

func (cs *CatalogStore) GetCollectionByID(id string) (structs.Collection, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	for _, c := range cs.collections {
		if c.ID == id {
			return c, true
		}
	}
	return structs.Collection{}, false
}

// GetCollectionByName looks a collection up by its exact display name, the
// form used in route segments.
func (cs *CatalogStore) GetCollectionByName(name string) (structs.Collection, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	for _, c := range cs.collections {
		if c.Name == name {
			return c, true
		}
	}
	return structs.Collection{}, false
}

// GetProductsByCollection filters by denormalized collection name,
// case-insensitively. The special value "all" returns every product.
func (cs *CatalogStore) GetProductsByCollection(name string) []structs.Product {
	if strings.EqualFold(name, AllCollections) {
		return cs.Products()
	}

	cs.mu.RLock()
	defer cs.mu.RUnlock()

	out := make([]structs.Product, 0)
	for _, p := range cs.products {
		if strings.EqualFold(p.Collection, name) {
			out = append(out, p)
		}
	}
	return out
}

func (cs *CatalogStore) GetFeaturedProducts() []structs.Product {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	out := make([]structs.Product, 0)
	for _, p := range cs.products {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// SearchProducts matches the query as a case-insensitive substring of
// name, description or collection name. An empty or whitespace-only query
// returns the full list.
func (cs *CatalogStore) SearchProducts(query string) []structs.Product {
	query = strings.TrimSpace(query)
	if query == "" {
		return cs.Products()
	}
	query = strings.ToLower(query)

	cs.mu.RLock()
	defer cs.mu.RUnlock()

	out := make([]structs.Product, 0)
	for _, p := range cs.products {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Description), query) ||
			strings.Contains(strings.ToLower(p.Collection), query) {
			out = append(out, p)
		}
	}
	return out
}
