// Package store owns the live in-memory catalog: products, collections and
// site settings loaded from the remote database and kept fresh by
// change-notification driven reloads. The snapshot is replaced atomically;
// readers never observe a half-updated catalog.
package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"cocomanthra_server/notify"
	"cocomanthra_server/structs"
	"cocomanthra_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Repository is the remote data service contract the store consumes.
// Reads return whole tables in consumption order; writes pass through
// without touching local state.
type Repository interface {
	ListCollections(ctx context.Context) ([]tables.Collection, error)
	ListProducts(ctx context.Context) ([]tables.Product, error)
	ListSettings(ctx context.Context) ([]tables.SiteSetting, error)

	InsertProduct(ctx context.Context, row *tables.Product) error
	UpdateProduct(ctx context.Context, id uuid.UUID, fields map[string]any) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	InsertCollection(ctx context.Context, row *tables.Collection) error
	UpdateCollection(ctx context.Context, id uuid.UUID, fields map[string]any) error
	DeleteCollection(ctx context.Context, id uuid.UUID) error

	UpsertSetting(ctx context.Context, key string, value json.RawMessage) error
}

// ChangePublisher fans a local write out to other storefront instances.
type ChangePublisher interface {
	PublishChange(ctx context.Context, table string) error
}

type Options struct {
	Logger      *gecho.Logger
	Listener    notify.Listener // nil disables live updates
	Publisher   ChangePublisher // nil disables cross-instance fan-out
	LoadTimeout time.Duration
}

// CatalogStore is the single shared catalog handle. Constructed once at
// startup and injected into every consumer.
type CatalogStore struct {
	logger      *gecho.Logger
	repo        Repository
	listener    notify.Listener
	publisher   ChangePublisher
	loadTimeout time.Duration

	mu          sync.RWMutex
	products    []structs.Product
	collections []structs.Collection
	settings    structs.SiteSettings
	loading     bool
	loadErr     string
	lastLoad    time.Time

	group singleflight.Group

	// Single-slot reload trigger: any number of change events collapse
	// into at most one queued reload behind the in-flight one.
	triggerCh chan struct{}

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

func New(repo Repository, opts Options) *CatalogStore {
	logger := opts.Logger
	if logger == nil {
		logger = gecho.NewDefaultLogger()
	}

	return &CatalogStore{
		logger:      logger,
		repo:        repo,
		listener:    opts.Listener,
		publisher:   opts.Publisher,
		loadTimeout: opts.LoadTimeout,
		settings:    structs.DefaultSiteSettings(),
		triggerCh:   make(chan struct{}, 1),
	}
}

// Run performs the initial load and starts the background reload loop.
// A failed initial load is recorded in the store state, not returned as a
// hard failure: the storefront serves its defaults and reports the error.
// Live updates attach only after a successful first load.
func (cs *CatalogStore) Run(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	cs.cancel = cancel

	err := cs.Refresh(runCtx)

	cs.wg.Add(1)
	go cs.syncLoop(runCtx)

	if err != nil {
		cs.logger.Error("Initial catalog load failed", gecho.Field("error", err))
		return
	}

	if cs.listener != nil {
		cs.wg.Add(1)
		go cs.listenLoop(runCtx)
		cs.logger.Info("Catalog live updates enabled")
	} else {
		cs.logger.Warn("Catalog running without live updates")
	}
}

// Close tears the store down. Listener teardown runs unconditionally;
// its errors are logged, never propagated.
func (cs *CatalogStore) Close() {
	cs.closeOnce.Do(func() {
		if cs.cancel != nil {
			cs.cancel()
		}
		if cs.listener != nil {
			if err := cs.listener.Close(); err != nil {
				cs.logger.Warn("Error closing change listener", gecho.Field("error", err))
			}
		}
		cs.wg.Wait()
	})
}

// Refresh reloads the whole catalog. Concurrent callers are coalesced into
// one in-flight load and share its result.
func (cs *CatalogStore) Refresh(ctx context.Context) error {
	_, err, _ := cs.group.Do("reload", func() (any, error) {
		return nil, cs.load(ctx)
	})
	return err
}

// trigger queues a reload without blocking. A set slot means a reload is
// already pending, so the event is absorbed.
func (cs *CatalogStore) trigger() {
	select {
	case cs.triggerCh <- struct{}{}:
	default:
	}
}

func (cs *CatalogStore) syncLoop(ctx context.Context) {
	defer cs.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cs.triggerCh:
			if err := cs.Refresh(ctx); err != nil {
				cs.logger.Error("Catalog reload failed", gecho.Field("error", err))
			}
		}
	}
}

func (cs *CatalogStore) listenLoop(ctx context.Context) {
	defer cs.wg.Done()

	known := make(map[string]bool)
	for _, table := range notify.WatchedTables() {
		known[table] = true
	}

	events := cs.listener.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if !known[event.Table] {
				cs.logger.Debug("Ignoring change event for unknown table",
					gecho.Field("table", event.Table))
				continue
			}
			cs.trigger()
		}
	}
}

// load runs the three sequential reads. Collections and products failures
// are fatal for the whole load and preserve stale state; a settings
// failure degrades to the previous or default settings.
func (cs *CatalogStore) load(ctx context.Context) error {
	if cs.loadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cs.loadTimeout)
		defer cancel()
	}

	cs.setLoading(true)
	defer cs.setLoading(false)

	collectionRows, err := cs.repo.ListCollections(ctx)
	if err != nil {
		cs.failLoad("collections", err)
		return err
	}

	collections := make([]structs.Collection, 0, len(collectionRows))
	namesByID := make(map[uuid.UUID]string, len(collectionRows))
	for _, row := range collectionRows {
		collections = append(collections, structs.Collection{
			ID:          row.ID.String(),
			Name:        row.Name,
			Description: row.Description,
			Image:       row.Image,
			CreatedAt:   row.CreatedAt,
		})
		namesByID[row.ID] = row.Name
	}

	productRows, err := cs.repo.ListProducts(ctx)
	if err != nil {
		cs.failLoad("products", err)
		return err
	}

	products := make([]structs.Product, 0, len(productRows))
	for _, row := range productRows {
		name, ok := namesByID[row.CollectionID]
		if !ok {
			name = structs.UnknownCollection
		}
		products = append(products, structs.Product{
			ID:          row.ID.String(),
			Name:        row.Name,
			Price:       row.Price,
			Description: row.Description,
			Image:       row.Image,
			Collection:  name,
			Featured:    row.Featured,
			CreatedAt:   row.CreatedAt,
		})
	}

	settings := cs.SiteSettings()
	settingRows, err := cs.repo.ListSettings(ctx)
	if err != nil {
		cs.logger.Warn("Settings load failed, keeping previous values",
			gecho.Field("error", err))
	} else {
		cs.mergeSettings(&settings, settingRows)
	}

	cs.mu.Lock()
	cs.collections = collections
	cs.products = products
	cs.settings = settings
	cs.loadErr = ""
	cs.lastLoad = time.Now()
	cs.mu.Unlock()

	return nil
}

// mergeSettings validates each recognized key independently; a bad or
// absent value leaves the corresponding field untouched.
func (cs *CatalogStore) mergeSettings(settings *structs.SiteSettings, rows []tables.SiteSetting) {
	for _, row := range rows {
		if len(row.Value) == 0 {
			continue
		}

		switch row.Key {
		case tables.SettingHeroProduct:
			hero, err := decodeHeroProduct(row.Value)
			if err != nil {
				cs.logger.Warn("Rejecting hero product settings value",
					gecho.Field("error", err))
				continue
			}
			settings.HeroProduct = hero

		case tables.SettingBrandSettings:
			brand, err := decodeBrandSettings(row.Value)
			if err != nil {
				cs.logger.Warn("Rejecting brand settings value",
					gecho.Field("error", err))
				continue
			}
			settings.BrandName = brand.BrandName
			settings.Tagline = brand.Tagline
		}
	}
}

func (cs *CatalogStore) setLoading(v bool) {
	cs.mu.Lock()
	cs.loading = v
	cs.mu.Unlock()
}

func (cs *CatalogStore) failLoad(stage string, err error) {
	cs.logger.Error("Catalog load failed",
		gecho.Field("stage", stage),
		gecho.Field("error", err),
	)

	cs.mu.Lock()
	cs.loadErr = err.Error()
	cs.mu.Unlock()
}

// changed runs after every successful write: fan the event out to other
// instances (best effort) and queue one local reload so the snapshot
// converges even when live updates are down.
func (cs *CatalogStore) changed(ctx context.Context, table string) {
	if cs.publisher != nil {
		if err := cs.publisher.PublishChange(ctx, table); err != nil {
			cs.logger.Warn("Failed to publish change event",
				gecho.Field("table", table),
				gecho.Field("error", err),
			)
		}
	}
	cs.trigger()
}
