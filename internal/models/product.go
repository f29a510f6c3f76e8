package models

import "fitpromo/internal/utils"

// Product is an item a promotion can feature.
type Product struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Brand           *string   `json:"brand"`
	Category        *string   `json:"category"`
	Description     *string   `json:"description"`
	KeyFeatures     *string   `json:"key_features"`
	ImageID         *int64    `json:"image_id"`
	ImageURL        *string   `json:"image_url"`
	SourceURL       *string   `json:"source_url"`
	Price           *string   `json:"price"`
	ScrapedImageIDs *string   `json:"scraped_image_ids"`
	CreatedAt       Timestamp `json:"created_at"`
}

// Features decodes the JSON-encoded key feature list. Missing or malformed
// input yields an empty list.
func (p Product) Features() []string {
	if p.KeyFeatures == nil {
		return []string{}
	}
	return utils.ParseStringList(*p.KeyFeatures)
}

// BrandName returns the brand or an empty string.
func (p Product) BrandName() string {
	if p.Brand == nil {
		return ""
	}
	return *p.Brand
}

// ProductInput is the body of both POST /products and PUT /products/{id}.
type ProductInput struct {
	Name        string   `json:"name"`
	Brand       *string  `json:"brand,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Description *string  `json:"description,omitempty"`
	KeyFeatures []string `json:"key_features"`
	ImageID     *int64   `json:"image_id,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
}
