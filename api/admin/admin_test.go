package admin_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cocomanthra_server/api/admin"
	"cocomanthra_server/store"
	"cocomanthra_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func newAdminTS(t *testing.T) (*httptest.Server, *store.CatalogStore, uuid.UUID) {
	t.Helper()

	repo := store.NewMemoryRepository()
	ctx := context.Background()

	bowls := tables.Collection{ID: uuid.New(), Name: "Bowls & Tableware", CreatedAt: time.Now()}
	if err := repo.InsertCollection(ctx, &bowls); err != nil {
		t.Fatalf("insert collection: %v", err)
	}

	catalog := store.New(repo, store.Options{LoadTimeout: 2 * time.Second})
	catalog.Run(ctx)
	t.Cleanup(catalog.Close)

	r := chi.NewRouter()
	admin.NewAdminRoutesManager(gecho.NewDefaultLogger(), catalog).RegisterRoutes(r)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	return ts, catalog, bowls.ID
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	req, err := http.NewRequest(method, url, bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	resp.Body.Close()
	return resp
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

func TestCreateProduct(t *testing.T) {
	ts, catalog, _ := newAdminTS(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/admin/products", map[string]any{
		"name":       "Coconut Planter",
		"price":      22.0,
		"collection": "Bowls & Tableware",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}

	waitFor(t, func() bool {
		return len(catalog.SearchProducts("planter")) == 1
	})
}

func TestCreateProductUnknownCollection(t *testing.T) {
	ts, _, _ := newAdminTS(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/admin/products", map[string]any{
		"name":       "Phantom",
		"price":      1.0,
		"collection": "No Such Collection",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", resp.StatusCode)
	}
}

func TestCreateProductMissingFields(t *testing.T) {
	ts, _, _ := newAdminTS(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/admin/products", map[string]any{
		"price": 1.0,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", resp.StatusCode)
	}
}

func TestUpdateProductInvalidID(t *testing.T) {
	ts, _, _ := newAdminTS(t)

	resp := doJSON(t, http.MethodPut, ts.URL+"/admin/products/not-a-uuid", map[string]any{
		"name": "Renamed",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", resp.StatusCode)
	}
}

func TestDeleteProductNotFound(t *testing.T) {
	ts, _, _ := newAdminTS(t)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/admin/products/"+uuid.NewString(), nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", resp.StatusCode)
	}
}

func TestUpdateHeroProduct(t *testing.T) {
	ts, catalog, _ := newAdminTS(t)

	resp := doJSON(t, http.MethodPut, ts.URL+"/admin/settings/hero", map[string]any{
		"id": "hero-2", "title": "Festive Bowl", "description": "Limited run",
		"image": "https://example.com/b.jpg", "ctaText": "Shop now",
		"ctaLink": "/products", "price": 59.0,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}

	waitFor(t, func() bool {
		return catalog.SiteSettings().HeroProduct.Title == "Festive Bowl"
	})
}

func TestUpdateHeroProductIncomplete(t *testing.T) {
	ts, _, _ := newAdminTS(t)

	resp := doJSON(t, http.MethodPut, ts.URL+"/admin/settings/hero", map[string]any{
		"id": "hero-2", "title": "Festive Bowl",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", resp.StatusCode)
	}
}

func TestUpdateBrandSettings(t *testing.T) {
	ts, catalog, _ := newAdminTS(t)

	resp := doJSON(t, http.MethodPatch, ts.URL+"/admin/settings/brand", map[string]any{
		"tagline": "Handmade in Kerala",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}

	waitFor(t, func() bool {
		got := catalog.SiteSettings()
		return got.Tagline == "Handmade in Kerala" && got.BrandName == "CocoManthra"
	})
}

func TestDeleteCollectionCascades(t *testing.T) {
	ts, catalog, bowlsID := newAdminTS(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/admin/products", map[string]any{
		"name":       "Coconut Bowl Set",
		"price":      45.99,
		"collection": "Bowls & Tableware",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create status=%d", resp.StatusCode)
	}
	waitFor(t, func() bool { return len(catalog.Products()) == 1 })

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/admin/collections/"+bowlsID.String(), nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusOK {
		t.Fatalf("delete status=%d", delResp.StatusCode)
	}

	waitFor(t, func() bool {
		return len(catalog.Collections()) == 0 && len(catalog.Products()) == 0
	})
}
