package products_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cocomanthra_server/api/products"
	"cocomanthra_server/services"
	"cocomanthra_server/store"
	"cocomanthra_server/structs"
	"cocomanthra_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func newCatalogTS(t *testing.T) (*httptest.Server, *store.MemoryRepository, uuid.UUID) {
	t.Helper()

	repo := store.NewMemoryRepository()
	ctx := context.Background()

	bowls := tables.Collection{ID: uuid.New(), Name: "Bowls & Tableware", CreatedAt: time.Now()}
	if err := repo.InsertCollection(ctx, &bowls); err != nil {
		t.Fatalf("insert collection: %v", err)
	}

	set := tables.Product{
		ID: uuid.New(), Name: "Coconut Bowl Set", Price: 45.99,
		Description: "Set of four polished bowls", CollectionID: bowls.ID,
		Featured: true, CreatedAt: time.Now().Add(-2 * time.Hour),
	}
	spoons := tables.Product{
		ID: uuid.New(), Name: "Spoon Pair", Price: 12.50,
		Description: "Carved coconut wood spoons", CollectionID: bowls.ID,
		CreatedAt: time.Now().Add(-1 * time.Hour),
	}
	for _, p := range []*tables.Product{&set, &spoons} {
		if err := repo.InsertProduct(ctx, p); err != nil {
			t.Fatalf("insert product: %v", err)
		}
	}

	catalog := store.New(repo, store.Options{LoadTimeout: 2 * time.Second})
	catalog.Run(ctx)
	t.Cleanup(catalog.Close)

	cfg := &structs.Config{
		Contact: &structs.ContactConfig{Phone: "+91-9248788585", WhatsApp: "919248788585"},
		Email:   &structs.EmailConfig{Enabled: false},
	}
	inquiryService := services.NewInquiryService(gecho.NewDefaultLogger(), cfg)

	r := chi.NewRouter()
	products.NewProductRoutesManager(gecho.NewDefaultLogger(), catalog, inquiryService).RegisterRoutes(r)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	return ts, repo, set.ID
}

func getJSON(t *testing.T, url string) (int, map[string]any) {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("unmarshal %s: %v\nbody: %s", url, err, raw)
	}
	return resp.StatusCode, payload
}

func dataField(t *testing.T, payload map[string]any) map[string]any {
	t.Helper()

	data, ok := payload["data"].(map[string]any)
	if !ok {
		t.Fatalf("payload has no data object: %v", payload)
	}
	return data
}

func TestFetchAllProducts(t *testing.T) {
	ts, _, _ := newCatalogTS(t)

	status, payload := getJSON(t, ts.URL+"/products")
	if status != http.StatusOK {
		t.Fatalf("status=%d", status)
	}

	list, ok := dataField(t, payload)["products"].([]any)
	if !ok {
		t.Fatalf("no products array: %v", payload)
	}
	if len(list) != 2 {
		t.Fatalf("products=%d, want 2", len(list))
	}
}

func TestFetchAllProductsFilters(t *testing.T) {
	ts, _, _ := newCatalogTS(t)

	cases := []struct {
		query string
		want  int
	}{
		{"?search=spoon", 1},
		{"?search=coconut", 2},
		{"?collection=Bowls%20%26%20Tableware", 2},
		{"?collection=all", 2},
		{"?featured=true", 1},
		{"?search=coconut&featured=false", 1},
		{"?search=nothing+matches", 0},
	}

	for _, tc := range cases {
		status, payload := getJSON(t, ts.URL+"/products"+tc.query)
		if status != http.StatusOK {
			t.Fatalf("%s: status=%d", tc.query, status)
		}
		list, _ := dataField(t, payload)["products"].([]any)
		if len(list) != tc.want {
			t.Errorf("%s: products=%d, want %d", tc.query, len(list), tc.want)
		}
	}
}

func TestFetchAllProductsBadFeaturedFlag(t *testing.T) {
	ts, _, _ := newCatalogTS(t)

	status, _ := getJSON(t, ts.URL+"/products?featured=maybe")
	if status != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", status)
	}
}

func TestFetchProductByID(t *testing.T) {
	ts, _, setID := newCatalogTS(t)

	status, payload := getJSON(t, ts.URL+"/products/"+setID.String())
	if status != http.StatusOK {
		t.Fatalf("status=%d", status)
	}

	data := dataField(t, payload)

	product, ok := data["product"].(map[string]any)
	if !ok {
		t.Fatalf("no product object: %v", data)
	}
	if product["name"] != "Coconut Bowl Set" {
		t.Fatalf("product name=%v", product["name"])
	}

	contact, ok := data["contact"].(map[string]any)
	if !ok {
		t.Fatalf("no contact object: %v", data)
	}
	if contact["phone"] != "tel:+91-9248788585" {
		t.Fatalf("phone=%v", contact["phone"])
	}
	whatsapp, _ := contact["whatsapp"].(string)
	if !strings.HasPrefix(whatsapp, "https://wa.me/919248788585?text=") {
		t.Fatalf("whatsapp=%q", whatsapp)
	}

	related, ok := data["related"].([]any)
	if !ok {
		t.Fatalf("no related array: %v", data)
	}
	if len(related) != 1 {
		t.Fatalf("related=%d, want 1", len(related))
	}
}

func TestFetchProductByIDNotFound(t *testing.T) {
	ts, _, _ := newCatalogTS(t)

	status, _ := getJSON(t, ts.URL+"/products/"+uuid.NewString())
	if status != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", status)
	}
}

func TestFetchFeaturedProducts(t *testing.T) {
	ts, _, _ := newCatalogTS(t)

	status, payload := getJSON(t, ts.URL+"/products/featured")
	if status != http.StatusOK {
		t.Fatalf("status=%d", status)
	}

	list, _ := dataField(t, payload)["products"].([]any)
	if len(list) != 1 {
		t.Fatalf("featured=%d, want 1", len(list))
	}
}
