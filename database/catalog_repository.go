package database

import (
	"context"
	"encoding/json"
	"fmt"

	"cocomanthra_server/lib"
	"cocomanthra_server/structs/tables"

	"github.com/google/uuid"
)

// CatalogRepository is the Postgres access layer behind the catalog store.
// Reads return whole tables in the order the storefront consumes them;
// writes are direct pass-throughs with no local bookkeeping.
type CatalogRepository struct {
	db *DB
}

func NewCatalogRepository(db *DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListCollections(ctx context.Context) ([]tables.Collection, error) {
	return Query[tables.Collection](r.db).
		OrderBy("name", ASC).
		All(ctx)
}

func (r *CatalogRepository) ListProducts(ctx context.Context) ([]tables.Product, error) {
	return Query[tables.Product](r.db).
		OrderBy("created_at", DESC).
		All(ctx)
}

func (r *CatalogRepository) ListSettings(ctx context.Context) ([]tables.SiteSetting, error) {
	return Query[tables.SiteSetting](r.db).
		OrderBy("key", ASC).
		All(ctx)
}

func (r *CatalogRepository) InsertProduct(ctx context.Context, row *tables.Product) error {
	_, err := Query[tables.Product](r.db).Insert(ctx, row)
	return MapPgError(err)
}

func (r *CatalogRepository) UpdateProduct(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	affected, err := Query[tables.Product](r.db).
		Where("id", id).
		Update(ctx, fields)
	if err != nil {
		return MapPgError(err)
	}
	if affected == 0 {
		return fmt.Errorf("product %s: %w", id, lib.ErrNotFound)
	}
	return nil
}

func (r *CatalogRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	affected, err := Query[tables.Product](r.db).
		Where("id", id).
		Delete(ctx)
	if err != nil {
		return MapPgError(err)
	}
	if affected == 0 {
		return fmt.Errorf("product %s: %w", id, lib.ErrNotFound)
	}
	return nil
}

func (r *CatalogRepository) InsertCollection(ctx context.Context, row *tables.Collection) error {
	_, err := Query[tables.Collection](r.db).Insert(ctx, row)
	return MapPgError(err)
}

func (r *CatalogRepository) UpdateCollection(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	affected, err := Query[tables.Collection](r.db).
		Where("id", id).
		Update(ctx, fields)
	if err != nil {
		return MapPgError(err)
	}
	if affected == 0 {
		return fmt.Errorf("collection %s: %w", id, lib.ErrNotFound)
	}
	return nil
}

// DeleteCollection relies on the schema's ON DELETE CASCADE to remove
// dependent products; no explicit cascade is issued here.
func (r *CatalogRepository) DeleteCollection(ctx context.Context, id uuid.UUID) error {
	affected, err := Query[tables.Collection](r.db).
		Where("id", id).
		Delete(ctx)
	if err != nil {
		return MapPgError(err)
	}
	if affected == 0 {
		return fmt.Errorf("collection %s: %w", id, lib.ErrNotFound)
	}
	return nil
}

func (r *CatalogRepository) UpsertSetting(ctx context.Context, key string, value json.RawMessage) error {
	row := &tables.SiteSetting{Key: key, Value: value}
	err := Query[tables.SiteSetting](r.db).Upsert(ctx, row, "key", "value")
	return MapPgError(err)
}

// PublishChange raises a Postgres NOTIFY on the table's change channel so
// listening instances reload. Complements schema-level triggers, which
// cover writes that bypass this service.
func (r *CatalogRepository) PublishChange(ctx context.Context, table string) error {
	_, err := r.db.ExecContext(ctx, "SELECT pg_notify(?, '')", table+"_changes")
	return err
}
