package store

import (
	"context"
	"encoding/json"
	"fmt"

	"cocomanthra_server/lib"
	"cocomanthra_server/notify"
	"cocomanthra_server/structs"
	"cocomanthra_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// ProductInput carries the fields of a new product. Collection is the
// display name; it is resolved to the collection id before the insert.
type ProductInput struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Collection  string  `json:"collection" validate:"required"`
	Featured    bool    `json:"featured"`
}

// ProductPatch is a sparse product update; nil fields are left untouched.
type ProductPatch struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	Collection  *string  `json:"collection"`
	Featured    *bool    `json:"featured"`
}

type CollectionInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type CollectionPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

// SettingsPatch updates the brand settings row. Unset fields resolve to
// their current in-memory value; the row is always written whole.
type SettingsPatch struct {
	BrandName *string `json:"brandName"`
	Tagline   *string `json:"tagline"`
}

// Writes never update the local snapshot optimistically: the change
// notification round trip (plus the direct reload queued by changed)
// refreshes the view. Remote errors are logged and surfaced unmodified.

func (cs *CatalogStore) AddProduct(ctx context.Context, in ProductInput) error {
	collectionID, err := cs.resolveCollectionID(in.Collection)
	if err != nil {
		return err
	}

	row := &tables.Product{
		ID:           uuid.New(),
		Name:         in.Name,
		Price:        in.Price,
		Description:  in.Description,
		Image:        in.Image,
		CollectionID: collectionID,
		Featured:     in.Featured,
	}

	if err := cs.repo.InsertProduct(ctx, row); err != nil {
		cs.logger.Error("Error adding product", gecho.Field("error", err))
		return err
	}

	cs.changed(ctx, notify.TableProducts)
	return nil
}

func (cs *CatalogStore) UpdateProduct(ctx context.Context, id uuid.UUID, patch ProductPatch) error {
	fields := make(map[string]any)

	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Price != nil {
		fields["price"] = *patch.Price
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Image != nil {
		fields["image"] = *patch.Image
	}
	if patch.Featured != nil {
		fields["featured"] = *patch.Featured
	}
	if patch.Collection != nil {
		collectionID, err := cs.resolveCollectionID(*patch.Collection)
		if err != nil {
			return err
		}
		fields["collection_id"] = collectionID
	}

	if len(fields) == 0 {
		return nil
	}

	if err := cs.repo.UpdateProduct(ctx, id, fields); err != nil {
		cs.logger.Error("Error updating product",
			gecho.Field("id", id),
			gecho.Field("error", err),
		)
		return err
	}

	cs.changed(ctx, notify.TableProducts)
	return nil
}

func (cs *CatalogStore) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := cs.repo.DeleteProduct(ctx, id); err != nil {
		cs.logger.Error("Error deleting product",
			gecho.Field("id", id),
			gecho.Field("error", err),
		)
		return err
	}

	cs.changed(ctx, notify.TableProducts)
	return nil
}

func (cs *CatalogStore) AddCollection(ctx context.Context, in CollectionInput) error {
	row := &tables.Collection{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		Image:       in.Image,
	}

	if err := cs.repo.InsertCollection(ctx, row); err != nil {
		cs.logger.Error("Error adding collection", gecho.Field("error", err))
		return err
	}

	cs.changed(ctx, notify.TableCollections)
	return nil
}

func (cs *CatalogStore) UpdateCollection(ctx context.Context, id uuid.UUID, patch CollectionPatch) error {
	fields := make(map[string]any)

	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Image != nil {
		fields["image"] = *patch.Image
	}

	if len(fields) == 0 {
		return nil
	}

	if err := cs.repo.UpdateCollection(ctx, id, fields); err != nil {
		cs.logger.Error("Error updating collection",
			gecho.Field("id", id),
			gecho.Field("error", err),
		)
		return err
	}

	cs.changed(ctx, notify.TableCollections)
	return nil
}

// DeleteCollection removes the collection row; the remote schema cascades
// the delete to dependent products.
func (cs *CatalogStore) DeleteCollection(ctx context.Context, id uuid.UUID) error {
	if err := cs.repo.DeleteCollection(ctx, id); err != nil {
		cs.logger.Error("Error deleting collection",
			gecho.Field("id", id),
			gecho.Field("error", err),
		)
		return err
	}

	cs.changed(ctx, notify.TableCollections)
	return nil
}

// UpdateHeroProduct replaces the hero_product settings value wholesale
// (key-level replace, never a field merge).
func (cs *CatalogStore) UpdateHeroProduct(ctx context.Context, hero structs.HeroProduct) error {
	value, err := json.Marshal(hero)
	if err != nil {
		return err
	}

	if err := cs.repo.UpsertSetting(ctx, tables.SettingHeroProduct, value); err != nil {
		cs.logger.Error("Error updating hero product", gecho.Field("error", err))
		return err
	}

	cs.changed(ctx, notify.TableSiteSettings)
	return nil
}

// UpdateSiteSettings writes the brand_settings row as a whole object,
// resolving unset fields from the current snapshot. A patch with neither
// field set is a no-op.
func (cs *CatalogStore) UpdateSiteSettings(ctx context.Context, patch SettingsPatch) error {
	if patch.BrandName == nil && patch.Tagline == nil {
		return nil
	}

	current := cs.SiteSettings()
	brand := structs.BrandSettings{
		BrandName: current.BrandName,
		Tagline:   current.Tagline,
	}
	if patch.BrandName != nil {
		brand.BrandName = *patch.BrandName
	}
	if patch.Tagline != nil {
		brand.Tagline = *patch.Tagline
	}

	value, err := json.Marshal(brand)
	if err != nil {
		return err
	}

	if err := cs.repo.UpsertSetting(ctx, tables.SettingBrandSettings, value); err != nil {
		cs.logger.Error("Error updating site settings", gecho.Field("error", err))
		return err
	}

	cs.changed(ctx, notify.TableSiteSettings)
	return nil
}

// resolveCollectionID maps a collection display name to its id using the
// local snapshot, before any remote call is attempted.
func (cs *CatalogStore) resolveCollectionID(name string) (uuid.UUID, error) {
	collection, ok := cs.GetCollectionByName(name)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: %q", lib.ErrCollectionNotFound, name)
	}

	id, err := uuid.Parse(collection.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("collection %q has malformed id: %w", name, err)
	}
	return id, nil
}
