package tables

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Collection struct {
	bun.BaseModel `bun:"table:collections,alias:c"`

	ID          uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Description string    `bun:"description,nullzero" json:"description"`
	Image       string    `bun:"image,nullzero" json:"image"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
}

type Product struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID           uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name         string    `bun:"name,nullzero" json:"name"`
	Price        float64   `bun:"price,nullzero" json:"price"`
	Description  string    `bun:"description,nullzero" json:"description"`
	Image        string    `bun:"image,nullzero" json:"image"`
	CollectionID uuid.UUID `bun:"collection_id,type:uuid" json:"collection_id"`
	Featured     bool      `bun:"featured,nullzero" json:"featured"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
}

// SiteSetting is one key/value row of the generic settings table. Value is
// an arbitrary structured payload; it is validated at load time, not here.
type SiteSetting struct {
	bun.BaseModel `bun:"table:site_settings,alias:s"`

	Key   string          `bun:"key,pk" json:"key"`
	Value json.RawMessage `bun:"value,type:jsonb" json:"value"`
}

// Settings keys the storefront recognizes. Unknown keys are ignored.
const (
	SettingHeroProduct   = "hero_product"
	SettingBrandSettings = "brand_settings"
)
