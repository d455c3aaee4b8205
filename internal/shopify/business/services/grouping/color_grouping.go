package grouping

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"shopsync_api/internal/catalog/models"
)

// ColorGroup is the set of a product's variants sharing one derived color.
// One group becomes one marketplace product.
type ColorGroup struct {
	Color    string
	Variants []models.Variant
}

type Engine struct {
	known        map[string]string
	defaultColor string
	caser        cases.Caser
}

// sizeTokens are words the generic heuristic must never mistake for a color.
var sizeTokens = map[string]struct{}{
	"cm": {}, "mm": {}, "m": {}, "in": {}, "inch": {}, "ft": {},
	"small": {}, "medium": {}, "large": {},
	"xs": {}, "s": {}, "l": {}, "xl": {}, "xxl": {}, "xxxl": {},
	"mini": {}, "maxi": {}, "single": {}, "double": {}, "king": {},
}

func NewEngine(knownColors []string, defaultColor string) *Engine {
	caser := cases.Title(language.English)
	known := make(map[string]string, len(knownColors))
	for _, c := range knownColors {
		known[strings.ToLower(c)] = caser.String(strings.ToLower(c))
	}
	return &Engine{
		known:        known,
		defaultColor: defaultColor,
		caser:        caser,
	}
}

// Group partitions the product's variants by derived color. Every variant
// lands in exactly one group; groups come back sorted by color key so callers
// iterate in a deterministic order. An empty variant set yields an empty
// slice, not an error.
func (e *Engine) Group(product models.Product) []ColorGroup {
	byColor := make(map[string][]models.Variant)
	for _, v := range product.Variants {
		color := e.DeriveColor(v)
		byColor[color] = append(byColor[color], v)
	}

	colors := make([]string, 0, len(byColor))
	for color := range byColor {
		colors = append(colors, color)
	}
	sort.Strings(colors)

	groups := make([]ColorGroup, 0, len(colors))
	for _, color := range colors {
		groups = append(groups, ColorGroup{Color: color, Variants: byColor[color]})
	}
	return groups
}

// DeriveColor resolves the variant's color key. Priority: explicit field,
// known color mentioned in the display name, generic word extraction, then
// the default sentinel.
func (e *Engine) DeriveColor(v models.Variant) string {
	if color := strings.TrimSpace(v.Color); color != "" {
		return e.normalize(color)
	}

	if color, ok := e.matchKnownColor(v.Name); ok {
		return color
	}

	if color, ok := e.extractColorWord(v.Name); ok {
		return color
	}

	return e.defaultColor
}

func (e *Engine) matchKnownColor(name string) (string, bool) {
	for _, token := range tokenize(name) {
		if color, ok := e.known[token]; ok {
			return color, true
		}
	}
	return "", false
}

// extractColorWord is the fallback heuristic: the last name token that is
// neither a dimension, a size word, nor too short to be a color.
func (e *Engine) extractColorWord(name string) (string, bool) {
	candidate := ""
	for _, token := range tokenize(name) {
		if len(token) <= 2 {
			continue
		}
		if _, isSize := sizeTokens[token]; isSize {
			continue
		}
		if strings.ContainsAny(token, "0123456789") {
			continue
		}
		candidate = token
	}
	if candidate == "" {
		return "", false
	}
	return e.normalize(candidate), true
}

func (e *Engine) normalize(color string) string {
	return e.caser.String(strings.ToLower(strings.TrimSpace(color)))
}

func tokenize(name string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '-', '/', ',', '(', ')', '_':
			return ' '
		}
		return r
	}, strings.ToLower(name))
	return strings.Fields(cleaned)
}
