package parse

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// skuPatterns recover a parent SKU from a marketplace variant SKU. Ordered:
// the first match wins.
var skuPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(\d+)`),           // numeric prefix: 10442R -> 10442
	regexp.MustCompile(`^([A-Za-z0-9]+)-`), // alnum prefix before dash: AB12-RED -> AB12
	regexp.MustCompile(`^([A-Za-z]+\d+)`),  // letters+digits: BL120WH -> BL120
	regexp.MustCompile(`^([^\s-]+)-`),      // generic token before dash
}

// SkuEngine parses marketplace-side SKUs back into parent SKU and color.
// It powers discovery of pre-existing marketplace products.
type SkuEngine struct {
	abbreviations map[string]string
	defaultColor  string
	caser         cases.Caser
}

func NewSkuEngine(abbreviations map[string]string, defaultColor string) *SkuEngine {
	table := make(map[string]string, len(abbreviations))
	for k, v := range abbreviations {
		table[strings.ToUpper(k)] = v
	}
	return &SkuEngine{
		abbreviations: table,
		defaultColor:  defaultColor,
		caser:         cases.Title(language.English),
	}
}

// ExtractParent returns the parent SKU guess for one variant SKU.
func (e *SkuEngine) ExtractParent(sku string) (string, bool) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return "", false
	}
	for _, pattern := range skuPatterns {
		if m := pattern.FindStringSubmatch(sku); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// ResolveParent picks the parent SKU for a set of sibling variant SKUs using
// the statistical mode of per-variant guesses. Ties break by first-seen.
func (e *SkuEngine) ResolveParent(skus []string) (string, bool) {
	counts := make(map[string]int)
	var order []string

	for _, sku := range skus {
		parent, ok := e.ExtractParent(sku)
		if !ok {
			continue
		}
		if _, seen := counts[parent]; !seen {
			order = append(order, parent)
		}
		counts[parent]++
	}

	best := ""
	bestCount := 0
	for _, parent := range order {
		if counts[parent] > bestCount {
			best = parent
			bestCount = counts[parent]
		}
	}
	return best, best != ""
}

// ExtractColor recovers the color encoded in the SKU remainder after the
// parent prefix. Unmatched remainders fall back to the default sentinel.
func (e *SkuEngine) ExtractColor(sku, parentSKU string) string {
	remainder := strings.TrimSpace(sku)
	if parentSKU != "" {
		remainder = strings.TrimPrefix(remainder, parentSKU)
	}
	remainder = strings.Trim(remainder, "-_ .")
	if remainder == "" {
		return e.defaultColor
	}

	upper := strings.ToUpper(remainder)
	if color, ok := e.abbreviations[upper]; ok {
		return color
	}

	// A full color name spelled out in the SKU also counts.
	for _, color := range e.abbreviations {
		if strings.EqualFold(color, remainder) {
			return color
		}
	}

	// Size suffixes like 120X160 carry no color information.
	if strings.ContainsAny(remainder, "0123456789") {
		return e.defaultColor
	}

	return e.defaultColor
}

// ResolveColor derives the dominant color for a marketplace product from its
// variant SKUs, mode-resolved the same way as ResolveParent.
func (e *SkuEngine) ResolveColor(skus []string, parentSKU string) string {
	counts := make(map[string]int)
	var order []string

	for _, sku := range skus {
		color := e.ExtractColor(sku, parentSKU)
		if color == e.defaultColor {
			continue
		}
		if _, seen := counts[color]; !seen {
			order = append(order, color)
		}
		counts[color]++
	}

	best := ""
	bestCount := 0
	for _, color := range order {
		if counts[color] > bestCount {
			best = color
			bestCount = counts[color]
		}
	}
	if best == "" {
		return e.defaultColor
	}
	return best
}
