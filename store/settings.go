package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"cocomanthra_server/structs"
)

// heroProductFields are the keys a hero_product value must carry. A value
// missing any of them, or carrying a wrong type for one, is rejected
// wholesale; there is no partial merge of hero fields.
var heroProductFields = []string{
	"id", "title", "description", "image", "ctaText", "ctaLink", "price",
}

var jsonNull = []byte("null")

// decodeHeroProduct validates the shape of a hero_product settings value
// before accepting it. Validation is per-field rather than a single
// struct decode because encoding/json leaves fields zero-valued on both
// absent keys and explicit nulls, and the two must both be rejected here.
func decodeHeroProduct(value json.RawMessage) (structs.HeroProduct, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(value, &raw); err != nil {
		return structs.HeroProduct{}, fmt.Errorf("hero product is not an object: %w", err)
	}

	for _, field := range heroProductFields {
		v, ok := raw[field]
		if !ok {
			return structs.HeroProduct{}, fmt.Errorf("hero product missing field %q", field)
		}
		if bytes.Equal(bytes.TrimSpace(v), jsonNull) {
			return structs.HeroProduct{}, fmt.Errorf("hero product field %q is null", field)
		}
	}

	var hero structs.HeroProduct
	if err := decodeString(raw["id"], &hero.ID); err != nil {
		return structs.HeroProduct{}, fmt.Errorf("hero product field %q: %w", "id", err)
	}
	if err := decodeString(raw["title"], &hero.Title); err != nil {
		return structs.HeroProduct{}, fmt.Errorf("hero product field %q: %w", "title", err)
	}
	if err := decodeString(raw["description"], &hero.Description); err != nil {
		return structs.HeroProduct{}, fmt.Errorf("hero product field %q: %w", "description", err)
	}
	if err := decodeString(raw["image"], &hero.Image); err != nil {
		return structs.HeroProduct{}, fmt.Errorf("hero product field %q: %w", "image", err)
	}
	if err := decodeString(raw["ctaText"], &hero.CTAText); err != nil {
		return structs.HeroProduct{}, fmt.Errorf("hero product field %q: %w", "ctaText", err)
	}
	if err := decodeString(raw["ctaLink"], &hero.CTALink); err != nil {
		return structs.HeroProduct{}, fmt.Errorf("hero product field %q: %w", "ctaLink", err)
	}
	if err := json.Unmarshal(raw["price"], &hero.Price); err != nil {
		return structs.HeroProduct{}, fmt.Errorf("hero product field %q: not a number", "price")
	}

	return hero, nil
}

// decodeBrandSettings requires both brandName and tagline as strings.
func decodeBrandSettings(value json.RawMessage) (structs.BrandSettings, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(value, &raw); err != nil {
		return structs.BrandSettings{}, fmt.Errorf("brand settings is not an object: %w", err)
	}

	var brand structs.BrandSettings
	for field, dst := range map[string]*string{
		"brandName": &brand.BrandName,
		"tagline":   &brand.Tagline,
	} {
		v, ok := raw[field]
		if !ok {
			return structs.BrandSettings{}, fmt.Errorf("brand settings missing field %q", field)
		}
		if bytes.Equal(bytes.TrimSpace(v), jsonNull) {
			return structs.BrandSettings{}, fmt.Errorf("brand settings field %q is null", field)
		}
		if err := decodeString(v, dst); err != nil {
			return structs.BrandSettings{}, fmt.Errorf("brand settings field %q: %w", field, err)
		}
	}

	return brand, nil
}

func decodeString(value json.RawMessage, dst *string) error {
	if err := json.Unmarshal(value, dst); err != nil {
		return fmt.Errorf("not a string")
	}
	return nil
}
