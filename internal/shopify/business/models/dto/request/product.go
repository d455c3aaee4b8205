package request

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ProductPayload is the wire representation of one marketplace product,
// i.e. one color group of a local product.
type ProductPayload struct {
	Title           string           `json:"title"`
	DescriptionHTML string           `json:"descriptionHtml"`
	Handle          string           `json:"handle,omitempty"`
	Vendor          string           `json:"vendor,omitempty"`
	ProductType     string           `json:"productType,omitempty"`
	Status          string           `json:"status,omitempty"`
	Tags            []string         `json:"tags,omitempty"`
	Options         []OptionPayload  `json:"productOptions,omitempty"`
	Variants        []VariantPayload `json:"variants"`
	Images          []ImagePayload   `json:"images,omitempty"`
}

type OptionPayload struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type VariantPayload struct {
	SKU               string             `json:"sku"`
	Price             decimal.Decimal    `json:"price"`
	CompareAtPrice    *decimal.Decimal   `json:"compareAtPrice,omitempty"`
	Barcode           string             `json:"barcode,omitempty"`
	WeightKg          decimal.Decimal    `json:"weight"`
	InventoryPolicy   string             `json:"inventoryPolicy,omitempty"`
	InventoryQuantity int                `json:"inventoryQuantity"`
	OptionValues      []string           `json:"optionValues,omitempty"`
	Metafields        []MetafieldPayload `json:"metafields,omitempty"`
}

type MetafieldPayload struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	Type      string `json:"type"`
}

type ImagePayload struct {
	Src      string `json:"src"`
	Position int    `json:"position"`
}

func (p *ProductPayload) Validate() error {
	if p.Title == "" {
		return errors.New("title is required")
	}
	if len(p.Variants) == 0 {
		return errors.New("at least one variant is required")
	}
	for _, v := range p.Variants {
		if v.SKU == "" {
			return errors.New("variant sku is required")
		}
		if !v.Price.IsPositive() {
			return errors.New("variant price is required")
		}
	}
	return nil
}

// SKUs returns the variant SKUs in payload order.
func (p *ProductPayload) SKUs() []string {
	skus := make([]string, 0, len(p.Variants))
	for _, v := range p.Variants {
		skus = append(skus, v.SKU)
	}
	return skus
}
