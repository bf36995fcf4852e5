package structs

import "time"

// UnknownCollection is the display name used when a product references a
// collection id that no longer exists in the loaded snapshot.
const UnknownCollection = "Unknown"

// Product is the storefront view of a catalog row. Collection holds the
// denormalized collection name resolved at load time, not the foreign key.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Collection  string    `json:"collection"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
}

// Collection groups products. Name doubles as the cross-entity lookup key
// and the user-facing route segment, so it is assumed unique.
type Collection struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
}

// HeroProduct is the promotional record on the landing surface. It is not a
// catalog product; all seven fields are required when loaded from settings.
type HeroProduct struct {
	ID          string  `json:"id" validate:"required"`
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Image       string  `json:"image" validate:"required"`
	CTAText     string  `json:"ctaText" validate:"required"`
	CTALink     string  `json:"ctaLink" validate:"required"`
	Price       float64 `json:"price" validate:"required,gte=0"`
}

// SiteSettings aggregates the two settings rows (hero_product and
// brand_settings). The rows are independent; a bad or absent value for one
// never clobbers the other.
type SiteSettings struct {
	HeroProduct HeroProduct `json:"heroProduct"`
	BrandName   string      `json:"brandName"`
	Tagline     string      `json:"tagline"`
}

// BrandSettings is the payload shape of the brand_settings row.
type BrandSettings struct {
	BrandName string `json:"brandName"`
	Tagline   string `json:"tagline"`
}

// DefaultSiteSettings returns the built-in fallback used before the first
// load and whenever the settings table cannot be read.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		HeroProduct: HeroProduct{
			ID:          "hero-1",
			Title:       "Handcrafted Coconut Bowl Set",
			Description: "Transform your dining experience with our beautifully handcrafted coconut bowls.",
			Image:       "https://images.pexels.com/photos/6542652/pexels-photo-6542652.jpeg?auto=compress&cs=tinysrgb&w=1200",
			CTAText:     "Shop Coconut Bowls",
			CTALink:     "/products?collection=Bowls & Tableware",
			Price:       45.99,
		},
		BrandName: "CocoManthra",
		Tagline:   "Sustainable Handmade Coconut Products",
	}
}
