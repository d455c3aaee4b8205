package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shopsync_api/config/values"
)

func newTestSkuEngine() *SkuEngine {
	return NewSkuEngine(values.ColorAbbreviations(), "Default")
}

func TestExtractParent(t *testing.T) {
	engine := newTestSkuEngine()

	tests := []struct {
		sku      string
		expected string
		ok       bool
	}{
		{"10442R", "10442", true},       // numeric prefix
		{"10442", "10442", true},        // pure numeric
		{"AB12-RED", "AB12", true},      // alnum prefix before dash
		{"BL120WH", "BL120", true},      // letters+digits
		{"A+B-RED", "A+B", true},        // generic token before dash
		{"ABC", "", false},              // no digits, no dash
		{"", "", false},                 // empty
		{"   ", "", false},              // whitespace only
		{"-RED", "", false},             // nothing before the dash
	}

	for _, tt := range tests {
		t.Run(tt.sku, func(t *testing.T) {
			parent, ok := engine.ExtractParent(tt.sku)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, parent)
		})
	}
}

func TestResolveParent(t *testing.T) {
	engine := newTestSkuEngine()

	t.Run("mode wins", func(t *testing.T) {
		parent, ok := engine.ResolveParent([]string{"10442R", "10442BK", "10443W"})
		assert.True(t, ok)
		assert.Equal(t, "10442", parent)
	})

	t.Run("tie breaks by first seen", func(t *testing.T) {
		parent, ok := engine.ResolveParent([]string{"A1-X", "B2-Y"})
		assert.True(t, ok)
		assert.Equal(t, "A1", parent)
	})

	t.Run("unparseable set", func(t *testing.T) {
		_, ok := engine.ResolveParent([]string{"", "ABC"})
		assert.False(t, ok)
	})
}

func TestExtractColor(t *testing.T) {
	engine := newTestSkuEngine()

	tests := []struct {
		name     string
		sku      string
		parent   string
		expected string
	}{
		{"single letter abbreviation", "10442R", "10442", "Red"},
		{"dashed abbreviation", "10442-BLK", "10442", "Black"},
		{"abbreviation is case insensitive", "10442bk", "10442", "Black"},
		{"full color name spelled out", "BL120WHITE", "BL120", "White"},
		{"size suffix carries no color", "10442120X160", "10442", "Default"},
		{"no remainder", "10442", "10442", "Default"},
		{"unknown letters", "10442ZZ", "10442", "Default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, engine.ExtractColor(tt.sku, tt.parent))
		})
	}
}

func TestResolveColor(t *testing.T) {
	engine := newTestSkuEngine()

	t.Run("dominant color wins", func(t *testing.T) {
		color := engine.ResolveColor([]string{"10442R", "10442RD", "10442BK"}, "10442")
		assert.Equal(t, "Red", color)
	})

	t.Run("all default", func(t *testing.T) {
		color := engine.ResolveColor([]string{"10442", "10442120"}, "10442")
		assert.Equal(t, "Default", color)
	})
}
