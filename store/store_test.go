package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"cocomanthra_server/lib"
	"cocomanthra_server/store"
	"cocomanthra_server/structs"
	"cocomanthra_server/structs/tables"

	"github.com/google/uuid"
)

var (
	bowlsID = uuid.New()
	decorID = uuid.New()
)

func seededRepo(t *testing.T) *store.MemoryRepository {
	t.Helper()

	repo := store.NewMemoryRepository()
	ctx := context.Background()

	collections := []tables.Collection{
		{ID: bowlsID, Name: "Bowls & Tableware", Description: "Handcrafted coconut bowls", CreatedAt: time.Now().Add(-48 * time.Hour)},
		{ID: decorID, Name: "Home Decor", Description: "Coconut shell decor", CreatedAt: time.Now().Add(-24 * time.Hour)},
	}
	for i := range collections {
		if err := repo.InsertCollection(ctx, &collections[i]); err != nil {
			t.Fatalf("insert collection: %v", err)
		}
	}

	products := []tables.Product{
		{ID: uuid.New(), Name: "Coconut Bowl Set", Price: 45.99, Description: "Set of four polished bowls", CollectionID: bowlsID, Featured: true, CreatedAt: time.Now().Add(-3 * time.Hour)},
		{ID: uuid.New(), Name: "Spoon Pair", Price: 12.50, Description: "Carved coconut wood spoons", CollectionID: bowlsID, CreatedAt: time.Now().Add(-2 * time.Hour)},
		{ID: uuid.New(), Name: "Shell Candle", Price: 19.00, Description: "Soy candle in a coconut shell", CollectionID: decorID, Featured: true, CreatedAt: time.Now().Add(-1 * time.Hour)},
	}
	for i := range products {
		if err := repo.InsertProduct(ctx, &products[i]); err != nil {
			t.Fatalf("insert product: %v", err)
		}
	}

	return repo
}

func newStore(t *testing.T, repo store.Repository) *store.CatalogStore {
	t.Helper()

	cs := store.New(repo, store.Options{LoadTimeout: 2 * time.Second})
	cs.Run(context.Background())
	t.Cleanup(cs.Close)
	return cs
}

// waitFor polls until cond is true or the deadline passes. Background
// reloads run off a trigger channel, so writes become visible eventually
// rather than synchronously.
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

func TestLoadResolvesCollectionNames(t *testing.T) {
	repo := seededRepo(t)

	orphan := tables.Product{ID: uuid.New(), Name: "Mystery Item", Price: 5, CollectionID: uuid.New(), CreatedAt: time.Now()}
	if err := repo.InsertProduct(context.Background(), &orphan); err != nil {
		t.Fatalf("insert product: %v", err)
	}

	cs := newStore(t, repo)

	if got := len(cs.Products()); got != 4 {
		t.Fatalf("products=%d, want 4", got)
	}

	p, ok := cs.GetProductByID(orphan.ID.String())
	if !ok {
		t.Fatal("orphan product not loaded")
	}
	if p.Collection != structs.UnknownCollection {
		t.Fatalf("orphan collection=%q, want %q", p.Collection, structs.UnknownCollection)
	}

	set, ok := cs.GetProductByID(repoProductID(t, repo, "Coconut Bowl Set"))
	if !ok {
		t.Fatal("seeded product not loaded")
	}
	if set.Collection != "Bowls & Tableware" {
		t.Fatalf("collection=%q, want Bowls & Tableware", set.Collection)
	}
}

func repoProductID(t *testing.T, repo *store.MemoryRepository, name string) string {
	t.Helper()

	rows, err := repo.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	for _, row := range rows {
		if row.Name == name {
			return row.ID.String()
		}
	}
	t.Fatalf("product %q not in repository", name)
	return ""
}

func TestGetProductsByCollection(t *testing.T) {
	cs := newStore(t, seededRepo(t))

	if got := len(cs.GetProductsByCollection("Bowls & Tableware")); got != 2 {
		t.Fatalf("bowls products=%d, want 2", got)
	}

	// Name matching ignores case.
	if got := len(cs.GetProductsByCollection("home decor")); got != 1 {
		t.Fatalf("decor products=%d, want 1", got)
	}

	// "all" in any casing returns everything.
	for _, name := range []string{"all", "All", "ALL"} {
		if got := len(cs.GetProductsByCollection(name)); got != 3 {
			t.Fatalf("collection %q: products=%d, want 3", name, got)
		}
	}

	if got := len(cs.GetProductsByCollection("Nonexistent")); got != 0 {
		t.Fatalf("nonexistent collection products=%d, want 0", got)
	}
}

func TestSearchProducts(t *testing.T) {
	cs := newStore(t, seededRepo(t))

	if got := len(cs.SearchProducts("")); got != 3 {
		t.Fatalf("empty query=%d, want 3", got)
	}
	if got := len(cs.SearchProducts("   ")); got != 3 {
		t.Fatalf("whitespace query=%d, want 3", got)
	}

	// Matches name, description and collection name, case-insensitively.
	if got := len(cs.SearchProducts("COCONUT BOWL")); got != 1 {
		t.Fatalf("name match=%d, want 1", got)
	}
	if got := len(cs.SearchProducts("soy candle")); got != 1 {
		t.Fatalf("description match=%d, want 1", got)
	}
	if got := len(cs.SearchProducts("tableware")); got != 2 {
		t.Fatalf("collection match=%d, want 2", got)
	}
	if got := len(cs.SearchProducts("no such thing")); got != 0 {
		t.Fatalf("no match=%d, want 0", got)
	}
}

func TestGetFeaturedProducts(t *testing.T) {
	cs := newStore(t, seededRepo(t))

	featured := cs.GetFeaturedProducts()
	if len(featured) != 2 {
		t.Fatalf("featured=%d, want 2", len(featured))
	}
	for _, p := range featured {
		if !p.Featured {
			t.Fatalf("product %q not featured", p.Name)
		}
	}
}

func TestSettingsFailureIsNotFatal(t *testing.T) {
	repo := seededRepo(t)
	repo.FailSettings = errors.New("settings table unreachable")

	cs := newStore(t, repo)

	// The load as a whole succeeds and reports no error.
	if err := cs.LoadError(); err != "" {
		t.Fatalf("load error=%q, want none", err)
	}
	if cs.Loading() {
		t.Fatal("store still loading")
	}
	if got := len(cs.Products()); got != 3 {
		t.Fatalf("products=%d, want 3", got)
	}

	// Defaults stay in place.
	if got := cs.SiteSettings(); got != structs.DefaultSiteSettings() {
		t.Fatalf("settings=%+v, want defaults", got)
	}
}

func TestFatalLoadFailurePreservesStaleState(t *testing.T) {
	repo := seededRepo(t)
	cs := newStore(t, repo)

	if got := len(cs.Products()); got != 3 {
		t.Fatalf("products=%d, want 3", got)
	}

	repo.FailProducts = errors.New("connection refused")
	if err := cs.Refresh(context.Background()); err == nil {
		t.Fatal("refresh succeeded, want error")
	}

	// Stale snapshot stays served, the failure is reported.
	if got := len(cs.Products()); got != 3 {
		t.Fatalf("stale products=%d, want 3", got)
	}
	if cs.LoadError() == "" {
		t.Fatal("load error empty after failed refresh")
	}

	// Recovery clears the error.
	repo.FailProducts = nil
	if err := cs.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if err := cs.LoadError(); err != "" {
		t.Fatalf("load error=%q after recovery, want none", err)
	}
}

func TestInitialLoadFailureServesDefaults(t *testing.T) {
	repo := store.NewMemoryRepository()
	repo.FailCollections = errors.New("database down")

	cs := newStore(t, repo)

	if cs.LoadError() == "" {
		t.Fatal("load error empty after failed initial load")
	}
	if got := len(cs.Products()); got != 0 {
		t.Fatalf("products=%d, want 0", got)
	}
	if got := cs.SiteSettings(); got != structs.DefaultSiteSettings() {
		t.Fatalf("settings=%+v, want defaults", got)
	}
}

func TestHeroSettingsRejectionKeepsPrevious(t *testing.T) {
	repo := seededRepo(t)

	valid := structs.HeroProduct{
		ID: "hero-2", Title: "Festive Bowl", Description: "Limited run",
		Image: "https://example.com/bowl.jpg", CTAText: "Shop now",
		CTALink: "/products", Price: 59,
	}
	mustUpsertJSON(t, repo, tables.SettingHeroProduct, valid)

	cs := newStore(t, repo)
	if got := cs.SiteSettings().HeroProduct; got != valid {
		t.Fatalf("hero=%+v, want %+v", got, valid)
	}

	// A value missing required fields is rejected wholesale; the previous
	// hero keeps being served.
	mustUpsertJSON(t, repo, tables.SettingHeroProduct, map[string]any{
		"id": "hero-3", "title": "Broken",
	})
	if err := cs.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if got := cs.SiteSettings().HeroProduct; got != valid {
		t.Fatalf("hero after bad value=%+v, want %+v", got, valid)
	}

	// Same for explicit nulls and wrong types.
	mustUpsertJSON(t, repo, tables.SettingHeroProduct, map[string]any{
		"id": "hero-3", "title": nil, "description": "d", "image": "i",
		"ctaText": "c", "ctaLink": "l", "price": 10,
	})
	if err := cs.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if got := cs.SiteSettings().HeroProduct; got != valid {
		t.Fatalf("hero after null field=%+v, want %+v", got, valid)
	}
}

func TestBrandSettingsLoadIndependentOfHero(t *testing.T) {
	repo := seededRepo(t)

	// Bad hero row, good brand row: brand still applies.
	mustUpsertJSON(t, repo, tables.SettingHeroProduct, map[string]any{"id": "x"})
	mustUpsertJSON(t, repo, tables.SettingBrandSettings, structs.BrandSettings{
		BrandName: "CocoManthra", Tagline: "From shell to shelf",
	})

	cs := newStore(t, repo)

	got := cs.SiteSettings()
	if got.Tagline != "From shell to shelf" {
		t.Fatalf("tagline=%q, want new value", got.Tagline)
	}
	if got.HeroProduct != structs.DefaultSiteSettings().HeroProduct {
		t.Fatalf("hero=%+v, want default", got.HeroProduct)
	}
}

func mustUpsertJSON(t *testing.T, repo *store.MemoryRepository, key string, value any) {
	t.Helper()

	raw, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := repo.UpsertSetting(context.Background(), key, raw); err != nil {
		t.Fatalf("upsert setting: %v", err)
	}
}

func TestAddProductUnknownCollectionFailsBeforeWrite(t *testing.T) {
	repo := seededRepo(t)
	cs := newStore(t, repo)

	err := cs.AddProduct(context.Background(), store.ProductInput{
		Name: "Phantom", Price: 1, Collection: "No Such Collection",
	})
	if !errors.Is(err, lib.ErrCollectionNotFound) {
		t.Fatalf("err=%v, want ErrCollectionNotFound", err)
	}

	rows, listErr := repo.ListProducts(context.Background())
	if listErr != nil {
		t.Fatalf("list products: %v", listErr)
	}
	if len(rows) != 3 {
		t.Fatalf("repository products=%d, want 3 (no partial write)", len(rows))
	}
}

func TestAddProductBecomesVisibleAfterReload(t *testing.T) {
	repo := seededRepo(t)
	cs := newStore(t, repo)

	err := cs.AddProduct(context.Background(), store.ProductInput{
		Name: "Coconut Planter", Price: 22, Description: "Hanging planter",
		Collection: "Home Decor", Featured: false,
	})
	if err != nil {
		t.Fatalf("add product: %v", err)
	}

	// The write itself never touches the snapshot; the queued reload does.
	waitFor(t, func() bool {
		return len(cs.SearchProducts("planter")) == 1
	})

	p := cs.SearchProducts("planter")[0]
	if p.Collection != "Home Decor" {
		t.Fatalf("collection=%q, want Home Decor", p.Collection)
	}
}

func TestUpdateProductUnknownCollectionFailsBeforeWrite(t *testing.T) {
	repo := seededRepo(t)
	cs := newStore(t, repo)

	id, err := uuid.Parse(repoProductID(t, repo, "Spoon Pair"))
	if err != nil {
		t.Fatalf("parse id: %v", err)
	}

	name := "Renamed"
	collection := "No Such Collection"
	updateErr := cs.UpdateProduct(context.Background(), id, store.ProductPatch{
		Name:       &name,
		Collection: &collection,
	})
	if !errors.Is(updateErr, lib.ErrCollectionNotFound) {
		t.Fatalf("err=%v, want ErrCollectionNotFound", updateErr)
	}

	// Nothing was written, not even the valid fields.
	rows, listErr := repo.ListProducts(context.Background())
	if listErr != nil {
		t.Fatalf("list products: %v", listErr)
	}
	for _, row := range rows {
		if row.Name == "Renamed" {
			t.Fatal("partial update reached the repository")
		}
	}
}

func TestUpdateSiteSettingsMergesFromSnapshot(t *testing.T) {
	repo := seededRepo(t)
	cs := newStore(t, repo)

	tagline := "Handmade in Kerala"
	if err := cs.UpdateSiteSettings(context.Background(), store.SettingsPatch{Tagline: &tagline}); err != nil {
		t.Fatalf("update settings: %v", err)
	}

	// The row is written whole: the unset brand name resolves from the
	// current snapshot instead of being dropped.
	rows, err := repo.ListSettings(context.Background())
	if err != nil {
		t.Fatalf("list settings: %v", err)
	}
	var brand structs.BrandSettings
	found := false
	for _, row := range rows {
		if row.Key == tables.SettingBrandSettings {
			found = true
			if err := json.Unmarshal(row.Value, &brand); err != nil {
				t.Fatalf("unmarshal brand row: %v", err)
			}
		}
	}
	if !found {
		t.Fatal("brand_settings row not written")
	}
	if brand.BrandName != structs.DefaultSiteSettings().BrandName {
		t.Fatalf("brand name=%q, want default preserved", brand.BrandName)
	}
	if brand.Tagline != tagline {
		t.Fatalf("tagline=%q, want %q", brand.Tagline, tagline)
	}

	waitFor(t, func() bool {
		return cs.SiteSettings().Tagline == tagline
	})
}

func TestUpdateSiteSettingsNoopWithoutFields(t *testing.T) {
	repo := seededRepo(t)
	cs := newStore(t, repo)

	if err := cs.UpdateSiteSettings(context.Background(), store.SettingsPatch{}); err != nil {
		t.Fatalf("update settings: %v", err)
	}

	rows, err := repo.ListSettings(context.Background())
	if err != nil {
		t.Fatalf("list settings: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("settings rows=%d, want 0 (no-op)", len(rows))
	}
}

func TestDeleteCollectionCascades(t *testing.T) {
	repo := seededRepo(t)
	cs := newStore(t, repo)

	if err := cs.DeleteCollection(context.Background(), bowlsID); err != nil {
		t.Fatalf("delete collection: %v", err)
	}

	waitFor(t, func() bool {
		return len(cs.Collections()) == 1 && len(cs.Products()) == 1
	})
}

// slowRepo stretches each load so concurrent Refresh calls actually
// overlap instead of racing to completion one by one.
type slowRepo struct {
	*store.MemoryRepository
}

func (s slowRepo) ListCollections(ctx context.Context) ([]tables.Collection, error) {
	time.Sleep(10 * time.Millisecond)
	return s.MemoryRepository.ListCollections(ctx)
}

func TestConcurrentRefreshCoalesces(t *testing.T) {
	repo := seededRepo(t)
	cs := newStore(t, slowRepo{repo})

	before := repo.LoadCount()

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = cs.Refresh(context.Background())
		}()
	}
	wg.Wait()

	// Sixteen concurrent callers share far fewer underlying loads. The
	// exact count depends on scheduling; it must only stay well below one
	// load per caller.
	after := repo.LoadCount()
	if after-before >= 16 {
		t.Fatalf("loads=%d for 16 concurrent refreshes, want coalescing", after-before)
	}
}

func TestRefreshAfterContextCancel(t *testing.T) {
	repo := seededRepo(t)
	cs := newStore(t, repo)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := cs.Refresh(ctx); err == nil {
		t.Fatal("refresh with cancelled context succeeded")
	}

	// The failure is recorded like any other; stale data keeps serving.
	if got := len(cs.Products()); got != 3 {
		t.Fatalf("products=%d, want 3", got)
	}
}
