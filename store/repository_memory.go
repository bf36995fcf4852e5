package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"cocomanthra_server/lib"
	"cocomanthra_server/structs/tables"

	"github.com/google/uuid"
)

// MemoryRepository is an in-process Repository used by tests and local
// development. Error injection fields make load failures reproducible.
type MemoryRepository struct {
	mu          sync.Mutex
	collections map[uuid.UUID]tables.Collection
	products    map[uuid.UUID]tables.Product
	settings    map[string]json.RawMessage

	FailCollections error
	FailProducts    error
	FailSettings    error

	// Loads counts ListCollections calls, one per snapshot load attempt.
	Loads int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		collections: make(map[uuid.UUID]tables.Collection),
		products:    make(map[uuid.UUID]tables.Product),
		settings:    make(map[string]json.RawMessage),
	}
}

func (m *MemoryRepository) ListCollections(ctx context.Context) ([]tables.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Loads++
	if m.FailCollections != nil {
		return nil, m.FailCollections
	}

	out := make([]tables.Collection, 0, len(m.collections))
	for _, c := range m.collections {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryRepository) LoadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Loads
}

func (m *MemoryRepository) ListProducts(ctx context.Context) ([]tables.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailProducts != nil {
		return nil, m.FailProducts
	}

	out := make([]tables.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryRepository) ListSettings(ctx context.Context) ([]tables.SiteSetting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSettings != nil {
		return nil, m.FailSettings
	}

	out := make([]tables.SiteSetting, 0, len(m.settings))
	for key, value := range m.settings {
		out = append(out, tables.SiteSetting{Key: key, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *MemoryRepository) InsertProduct(ctx context.Context, row *tables.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[row.ID]; ok {
		return fmt.Errorf("product %s: %w", row.ID, lib.ErrConflict)
	}

	stored := *row
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	m.products[stored.ID] = stored
	return nil
}

func (m *MemoryRepository) UpdateProduct(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.products[id]
	if !ok {
		return fmt.Errorf("product %s: %w", id, lib.ErrNotFound)
	}

	for key, value := range fields {
		switch key {
		case "name":
			row.Name = value.(string)
		case "price":
			row.Price = value.(float64)
		case "description":
			row.Description = value.(string)
		case "image":
			row.Image = value.(string)
		case "collection_id":
			row.CollectionID = value.(uuid.UUID)
		case "featured":
			row.Featured = value.(bool)
		default:
			return fmt.Errorf("unknown product field %q", key)
		}
	}
	m.products[id] = row
	return nil
}

func (m *MemoryRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return fmt.Errorf("product %s: %w", id, lib.ErrNotFound)
	}
	delete(m.products, id)
	return nil
}

func (m *MemoryRepository) InsertCollection(ctx context.Context, row *tables.Collection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.collections[row.ID]; ok {
		return fmt.Errorf("collection %s: %w", row.ID, lib.ErrConflict)
	}

	stored := *row
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	m.collections[stored.ID] = stored
	return nil
}

func (m *MemoryRepository) UpdateCollection(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.collections[id]
	if !ok {
		return fmt.Errorf("collection %s: %w", id, lib.ErrNotFound)
	}

	for key, value := range fields {
		switch key {
		case "name":
			row.Name = value.(string)
		case "description":
			row.Description = value.(string)
		case "image":
			row.Image = value.(string)
		default:
			return fmt.Errorf("unknown collection field %q", key)
		}
	}
	m.collections[id] = row
	return nil
}

// DeleteCollection cascades to products, mirroring the ON DELETE CASCADE
// constraint of the real schema.
func (m *MemoryRepository) DeleteCollection(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.collections[id]; !ok {
		return fmt.Errorf("collection %s: %w", id, lib.ErrNotFound)
	}
	delete(m.collections, id)
	for pid, p := range m.products {
		if p.CollectionID == id {
			delete(m.products, pid)
		}
	}
	return nil
}

func (m *MemoryRepository) UpsertSetting(ctx context.Context, key string, value json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[key] = append(json.RawMessage(nil), value...)
	return nil
}
