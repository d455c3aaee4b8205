package request

import "github.com/shopspring/decimal"

// ContentFields carries the content-only portion of a product update.
// Nil fields are left untouched on the remote side.
type ContentFields struct {
	Title           *string `json:"title,omitempty"`
	DescriptionHTML *string `json:"descriptionHtml,omitempty"`
	Vendor          *string `json:"vendor,omitempty"`
	ProductType     *string `json:"productType,omitempty"`
	Status          *string `json:"status,omitempty"`
}

type VariantPriceUpdate struct {
	VariantID      string           `json:"id"`
	Price          decimal.Decimal  `json:"price"`
	CompareAtPrice *decimal.Decimal `json:"compareAtPrice,omitempty"`
}

type VariantFields struct {
	SKU     *string          `json:"sku,omitempty"`
	Price   *decimal.Decimal `json:"price,omitempty"`
	Barcode *string          `json:"barcode,omitempty"`
}

type SKUUpdate struct {
	VariantID string `json:"id"`
	SKU       string `json:"sku"`
}
