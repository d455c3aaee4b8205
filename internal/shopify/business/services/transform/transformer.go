package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"shopsync_api/config/values"
	"shopsync_api/internal/catalog/models"
	"shopsync_api/internal/shopify/business/models/dto/request"
	"shopsync_api/internal/shopify/business/services/builder"
	"shopsync_api/internal/shopify/business/services/grouping"
	"shopsync_api/pkg/business/service"
)

const (
	maxTitleLength = 255
	maxDescLength  = 5000

	metafieldNamespace = "catalog_sync"
)

// Attribute bag keys consulted for pricing and status.
const (
	attrCompareAtPrice = "compare_at_price"
	attrStatus         = "status"
)

var originalPriceAttrs = []string{"original_price", "msrp", "rrp"}

// Transformer converts one color group plus its parent product into the
// marketplace wire payload. Pure: no I/O.
type Transformer struct {
	text   service.ITextService
	values values.ShopifyValues
}

func NewTransformer(textService service.ITextService, defaultValues values.ShopifyValues) *Transformer {
	return &Transformer{
		text:   textService,
		values: defaultValues,
	}
}

// Transform builds the payload for one color group of the product, pricing
// variants for the account's sales channel.
func (t *Transformer) Transform(group grouping.ColorGroup, product models.Product, account models.SyncAccount) (request.ProductPayload, error) {
	if len(group.Variants) == 0 {
		return request.ProductPayload{}, fmt.Errorf("color group %q has no variants", group.Color)
	}

	title := t.buildTitle(product.Name, group.Color)
	widths := uniqueDimensionValues(group.Variants, func(v models.Variant) float64 { return v.WidthCm })
	drops := uniqueDimensionValues(group.Variants, func(v models.Variant) float64 { return v.DropCm })

	b := builder.NewProductBuilder().
		WithTitle(title).
		WithDescription(t.text.ClearAndReduce(product.Description, maxDescLength)).
		WithHandle(t.text.Handleize(title)).
		WithVendor(product.Vendor).
		WithProductType(product.ProductType).
		WithStatus(t.productStatus(product)).
		WithOption("Width", widths).
		WithOption("Drop", drops)

	for _, variant := range group.Variants {
		b.WithVariant(t.buildVariant(variant, product, account))
	}

	for _, image := range orderedImages(product) {
		b.WithImage(image)
	}

	return b.Build()
}

// buildTitle appends the color unless the product name already carries it.
func (t *Transformer) buildTitle(name, color string) string {
	title := strings.TrimSpace(name)
	if !containsWord(title, color) {
		title = title + " - " + color
	}
	return t.text.ReduceToLength(title, maxTitleLength)
}

func (t *Transformer) buildVariant(variant models.Variant, product models.Product, account models.SyncAccount) request.VariantPayload {
	price := variant.PriceFor(account.ChannelCode)

	payload := request.VariantPayload{
		SKU:               variant.SKU,
		Price:             price,
		CompareAtPrice:    t.compareAtPrice(product, price),
		Barcode:           variant.Barcode,
		WeightKg:          t.computeWeight(variant),
		InventoryPolicy:   t.values.InventoryPolicy,
		InventoryQuantity: variant.Stock,
		OptionValues: []string{
			formatDimension(variant.WidthCm),
			formatDimension(variant.DropCm),
		},
		Metafields: []request.MetafieldPayload{
			{Namespace: metafieldNamespace, Key: "width_cm", Value: trimFloat(variant.WidthCm), Type: "number_decimal"},
			{Namespace: metafieldNamespace, Key: "drop_cm", Value: trimFloat(variant.DropCm), Type: "number_decimal"},
			{Namespace: metafieldNamespace, Key: "external_sku", Value: variant.SKU, Type: "single_line_text_field"},
			{Namespace: metafieldNamespace, Key: "sync_status", Value: t.productStatus(product), Type: "single_line_text_field"},
		},
	}
	return payload
}

// computeWeight uses the physical weight when present, otherwise the area
// heuristic: base + width*drop*factor (kg).
func (t *Transformer) computeWeight(variant models.Variant) decimal.Decimal {
	if variant.WeightKg > 0 {
		return decimal.NewFromFloat(variant.WeightKg)
	}
	estimated := t.values.WeightBaseKg + variant.WidthCm*variant.DropCm*t.values.WeightAreaFactor
	return decimal.NewFromFloat(estimated).Round(3)
}

// compareAtPrice: explicit sale attribute wins; otherwise an original/MSRP
// attribute that exceeds the current price; otherwise omitted.
func (t *Transformer) compareAtPrice(product models.Product, price decimal.Decimal) *decimal.Decimal {
	if raw, ok := product.Attributes[attrCompareAtPrice]; ok {
		if compareAt, err := decimal.NewFromString(raw); err == nil && compareAt.IsPositive() {
			return &compareAt
		}
	}
	for _, key := range originalPriceAttrs {
		raw, ok := product.Attributes[key]
		if !ok {
			continue
		}
		original, err := decimal.NewFromString(raw)
		if err != nil {
			continue
		}
		if original.GreaterThan(price) {
			return &original
		}
	}
	return nil
}

func (t *Transformer) productStatus(product models.Product) string {
	if status, ok := product.Attributes[attrStatus]; ok && status != "" {
		return strings.ToUpper(status)
	}
	return t.values.DefaultStatus
}

// orderedImages sorts structured images primary-first, then by sort order,
// then by creation time. Falls back to the legacy single image column.
func orderedImages(product models.Product) []request.ImagePayload {
	if len(product.Images) == 0 {
		if product.LegacyImageURL != "" {
			return []request.ImagePayload{{Src: product.LegacyImageURL, Position: 1}}
		}
		return nil
	}

	images := make([]models.ProductImage, len(product.Images))
	copy(images, product.Images)
	sort.SliceStable(images, func(i, j int) bool {
		if images[i].Primary != images[j].Primary {
			return images[i].Primary
		}
		if images[i].SortOrder != images[j].SortOrder {
			return images[i].SortOrder < images[j].SortOrder
		}
		return images[i].CreatedAt.Before(images[j].CreatedAt)
	})

	payloads := make([]request.ImagePayload, 0, len(images))
	for i, img := range images {
		payloads = append(payloads, request.ImagePayload{Src: img.URL, Position: i + 1})
	}
	return payloads
}

func uniqueDimensionValues(variants []models.Variant, dim func(models.Variant) float64) []string {
	seen := make(map[float64]struct{})
	var sorted []float64
	for _, v := range variants {
		value := dim(v)
		if value <= 0 {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		sorted = append(sorted, value)
	}
	sort.Float64s(sorted)

	formatted := make([]string, 0, len(sorted))
	for _, value := range sorted {
		formatted = append(formatted, formatDimension(value))
	}
	return formatted
}

func formatDimension(value float64) string {
	return trimFloat(value) + "cm"
}

func trimFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func containsWord(text, word string) bool {
	lowWord := strings.ToLower(word)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		if strings.Trim(token, "-()") == lowWord {
			return true
		}
	}
	return false
}
