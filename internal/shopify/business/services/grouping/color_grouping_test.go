package grouping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopsync_api/config/values"
	"shopsync_api/internal/catalog/models"
)

func newTestEngine() *Engine {
	return NewEngine(values.KnownColors(), "Default")
}

func TestDeriveColor(t *testing.T) {
	engine := newTestEngine()

	tests := []struct {
		name     string
		variant  models.Variant
		expected string
	}{
		{
			name:     "explicit color wins over name",
			variant:  models.Variant{Color: "black", Name: "Blind 120cm White"},
			expected: "Black",
		},
		{
			name:     "explicit color is trimmed and title cased",
			variant:  models.Variant{Color: "  NAVY  "},
			expected: "Navy",
		},
		{
			name:     "known color token in name",
			variant:  models.Variant{Name: "Blackout Blind 120cm White"},
			expected: "White",
		},
		{
			name:     "known color survives punctuation",
			variant:  models.Variant{Name: "Roller-Blind(Grey)/160cm"},
			expected: "Grey",
		},
		{
			name:     "generic fallback takes last qualifying word",
			variant:  models.Variant{Name: "Thermal Blind Sunset"},
			expected: "Sunset",
		},
		{
			name:     "fallback skips sizes and dimensions",
			variant:  models.Variant{Name: "Roller Shade 120cm Large"},
			expected: "Shade",
		},
		{
			name:     "nothing qualifies",
			variant:  models.Variant{Name: "XL 120"},
			expected: "Default",
		},
		{
			name:     "empty variant",
			variant:  models.Variant{},
			expected: "Default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, engine.DeriveColor(tt.variant))
		})
	}
}

func TestGroupBlackoutBlind(t *testing.T) {
	engine := newTestEngine()

	product := models.Product{
		Name: "Blackout Blind",
		Variants: []models.Variant{
			{SKU: "10442BK-120", Name: "Blackout Blind 120cm Black", Color: "Black"},
			{SKU: "10442BK-150", Name: "Blackout Blind 150cm Black", Color: "Black"},
			{SKU: "10442WH-120", Name: "Blackout Blind 120cm White"},
		},
	}

	groups := engine.Group(product)
	require.Len(t, groups, 2)

	assert.Equal(t, "Black", groups[0].Color)
	assert.Len(t, groups[0].Variants, 2)
	assert.Equal(t, "White", groups[1].Color)
	assert.Len(t, groups[1].Variants, 1)
}

func TestGroupIsDeterministic(t *testing.T) {
	engine := newTestEngine()

	product := models.Product{
		Variants: []models.Variant{
			{SKU: "A-1", Color: "Teal"},
			{SKU: "A-2", Color: "Black"},
			{SKU: "A-3", Color: "Navy"},
			{SKU: "A-4", Color: "Black"},
		},
	}

	first := engine.Group(product)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, engine.Group(product))
	}

	colors := make([]string, 0, len(first))
	for _, g := range first {
		colors = append(colors, g.Color)
	}
	assert.Equal(t, []string{"Black", "Navy", "Teal"}, colors)
}

func TestGroupEmptyProduct(t *testing.T) {
	engine := newTestEngine()
	assert.Empty(t, engine.Group(models.Product{Name: "No Variants"}))
}
