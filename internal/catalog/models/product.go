package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a local catalog entity. It owns its variants and images.
type Product struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ParentSKU   string `json:"parent_sku"`
	Vendor      string `json:"vendor"`
	ProductType string `json:"product_type"`

	Variants []Variant      `json:"variants"`
	Images   []ProductImage `json:"images"`

	// LegacyImageURL is the pre-structured single image column; used only
	// when Images is empty.
	LegacyImageURL string `json:"legacy_image_url,omitempty"`

	// Attributes is a free-form property bag (sale price, RRP, status...).
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Variant belongs to exactly one Product.
type Variant struct {
	ID      int    `json:"id"`
	SKU     string `json:"sku"`
	Name    string `json:"name"`
	Color   string `json:"color,omitempty"`
	WidthCm float64 `json:"width_cm"`
	DropCm  float64 `json:"drop_cm"`
	Stock   int     `json:"stock"`

	Price decimal.Decimal `json:"price"`
	// ChannelPrices overrides Price for a specific sales channel code.
	ChannelPrices map[string]decimal.Decimal `json:"channel_prices,omitempty"`

	Barcode  string  `json:"barcode,omitempty"`
	WeightKg float64 `json:"weight_kg,omitempty"`
}

// PriceFor returns the channel-specific price when an override exists.
func (v Variant) PriceFor(channelCode string) decimal.Decimal {
	if override, ok := v.ChannelPrices[channelCode]; ok && override.IsPositive() {
		return override
	}
	return v.Price
}

type ProductImage struct {
	URL       string    `json:"url"`
	Primary   bool      `json:"primary"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}
