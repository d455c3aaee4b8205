package transform

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopsync_api/config/values"
	"shopsync_api/internal/catalog/models"
	"shopsync_api/internal/shopify/business/services/grouping"
	"shopsync_api/pkg/business/service"
)

func newTestTransformer() *Transformer {
	defaults := values.ShopifyValues{}
	defaults.ApplyDefaults()
	return NewTransformer(service.NewTextService(), defaults)
}

func testAccount() models.SyncAccount {
	return models.SyncAccount{ID: 1, Name: "Main", ChannelCode: "web"}
}

func blackoutBlind() (models.Product, grouping.ColorGroup) {
	product := models.Product{
		ID:          42,
		Name:        "Blackout Blind",
		Description: "<p>Keeps the light <a href=\"http://example.com\">out</a>.</p>",
		Vendor:      "Shade Co",
		ProductType: "Blinds",
	}
	group := grouping.ColorGroup{
		Color: "Black",
		Variants: []models.Variant{
			{SKU: "10442BK-120", WidthCm: 120, DropCm: 160, Stock: 5, Price: decimal.NewFromInt(30)},
			{SKU: "10442BK-150", WidthCm: 150, DropCm: 160, Stock: 3, Price: decimal.NewFromInt(35)},
		},
	}
	return product, group
}

func TestTransformBlackoutBlind(t *testing.T) {
	transformer := newTestTransformer()
	product, group := blackoutBlind()

	payload, err := transformer.Transform(group, product, testAccount())
	require.NoError(t, err)

	assert.Equal(t, "Blackout Blind - Black", payload.Title)
	assert.Equal(t, "blackout-blind-black", payload.Handle)
	assert.Equal(t, "Shade Co", payload.Vendor)
	assert.Equal(t, "ACTIVE", payload.Status)
	assert.NotContains(t, payload.DescriptionHTML, "<p>")
	assert.NotContains(t, payload.DescriptionHTML, "http://")

	require.Len(t, payload.Options, 2)
	assert.Equal(t, "Width", payload.Options[0].Name)
	assert.Equal(t, []string{"120cm", "150cm"}, payload.Options[0].Values)
	assert.Equal(t, "Drop", payload.Options[1].Name)
	assert.Equal(t, []string{"160cm"}, payload.Options[1].Values)

	require.Len(t, payload.Variants, 2)
	first := payload.Variants[0]
	assert.Equal(t, "10442BK-120", first.SKU)
	assert.True(t, first.Price.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, []string{"120cm", "160cm"}, first.OptionValues)
	assert.Equal(t, "deny", first.InventoryPolicy)
	assert.Equal(t, 5, first.InventoryQuantity)
	// 0.5 + 120*160*0.0001 = 2.42 kg
	assert.True(t, first.WeightKg.Equal(decimal.NewFromFloat(2.42)), "got %s", first.WeightKg)
	assert.Nil(t, first.CompareAtPrice)

	require.Len(t, first.Metafields, 4)
	assert.Equal(t, "catalog_sync", first.Metafields[0].Namespace)
	assert.Equal(t, "width_cm", first.Metafields[0].Key)
	assert.Equal(t, "120", first.Metafields[0].Value)
	assert.Equal(t, "external_sku", first.Metafields[2].Key)
	assert.Equal(t, "10442BK-120", first.Metafields[2].Value)
}

func TestTransformTitleKeepsExistingColor(t *testing.T) {
	transformer := newTestTransformer()
	product, group := blackoutBlind()
	product.Name = "Blackout Blind Black"

	payload, err := transformer.Transform(group, product, testAccount())
	require.NoError(t, err)
	assert.Equal(t, "Blackout Blind Black", payload.Title)
}

func TestTransformEmptyGroup(t *testing.T) {
	transformer := newTestTransformer()
	product, _ := blackoutBlind()

	_, err := transformer.Transform(grouping.ColorGroup{Color: "Black"}, product, testAccount())
	require.Error(t, err)
}

func TestTransformChannelPrice(t *testing.T) {
	transformer := newTestTransformer()
	product, group := blackoutBlind()
	group.Variants = group.Variants[:1]
	group.Variants[0].ChannelPrices = map[string]decimal.Decimal{
		"web": decimal.NewFromInt(25),
	}

	payload, err := transformer.Transform(group, product, testAccount())
	require.NoError(t, err)
	assert.True(t, payload.Variants[0].Price.Equal(decimal.NewFromInt(25)))
}

func TestTransformPhysicalWeightWins(t *testing.T) {
	transformer := newTestTransformer()
	product, group := blackoutBlind()
	group.Variants = group.Variants[:1]
	group.Variants[0].WeightKg = 1.8

	payload, err := transformer.Transform(group, product, testAccount())
	require.NoError(t, err)
	assert.True(t, payload.Variants[0].WeightKg.Equal(decimal.NewFromFloat(1.8)))
}

func TestCompareAtPrice(t *testing.T) {
	transformer := newTestTransformer()
	price := decimal.NewFromInt(30)

	tests := []struct {
		name       string
		attributes map[string]string
		expected   string
	}{
		{
			name:       "explicit sale attribute wins",
			attributes: map[string]string{"compare_at_price": "49.99", "rrp": "60"},
			expected:   "49.99",
		},
		{
			name:       "original price above current",
			attributes: map[string]string{"original_price": "45"},
			expected:   "45",
		},
		{
			name:       "rrp below current is ignored",
			attributes: map[string]string{"rrp": "20"},
			expected:   "",
		},
		{
			name:       "msrp above current",
			attributes: map[string]string{"msrp": "50"},
			expected:   "50",
		},
		{
			name:       "garbage attribute is ignored",
			attributes: map[string]string{"compare_at_price": "lots"},
			expected:   "",
		},
		{
			name:       "no attributes",
			attributes: nil,
			expected:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compareAt := transformer.compareAtPrice(models.Product{Attributes: tt.attributes}, price)
			if tt.expected == "" {
				assert.Nil(t, compareAt)
				return
			}
			require.NotNil(t, compareAt)
			assert.Equal(t, tt.expected, compareAt.String())
		})
	}
}

func TestOrderedImages(t *testing.T) {
	now := time.Now()

	t.Run("primary then sort order then created", func(t *testing.T) {
		product := models.Product{
			Images: []models.ProductImage{
				{URL: "c", SortOrder: 2, CreatedAt: now},
				{URL: "b", SortOrder: 1, CreatedAt: now.Add(time.Hour)},
				{URL: "a", Primary: true, SortOrder: 9, CreatedAt: now.Add(2 * time.Hour)},
			},
		}
		images := orderedImages(product)
		require.Len(t, images, 3)
		assert.Equal(t, "a", images[0].Src)
		assert.Equal(t, "b", images[1].Src)
		assert.Equal(t, "c", images[2].Src)
		assert.Equal(t, 1, images[0].Position)
		assert.Equal(t, 3, images[2].Position)
	})

	t.Run("legacy fallback", func(t *testing.T) {
		product := models.Product{LegacyImageURL: "legacy.jpg"}
		images := orderedImages(product)
		require.Len(t, images, 1)
		assert.Equal(t, "legacy.jpg", images[0].Src)
	})

	t.Run("no images at all", func(t *testing.T) {
		assert.Empty(t, orderedImages(models.Product{}))
	})
}
