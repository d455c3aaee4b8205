package parse

import (
	"sort"
	"strings"

	"shopsync_api/internal/shopify/business/models/dto/response"
)

// Match score weights for linking a local product to marketplace candidates.
const (
	scoreParentSKUInTitle = 50
	scoreVariantSKUHit    = 30
	scoreNameWordOverlap  = 10
	scoreCategoryKeyword  = 5
)

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "with": {}, "for": {}, "from": {},
}

// Candidate is a marketplace product ranked against a local product.
type Candidate struct {
	Product      response.RemoteProduct
	Score        int
	ExactSKUHits int
}

// ScoreCandidates ranks remote products against the local product identity.
// Only candidates with at least one exact SKU hit survive; results come back
// sorted by score descending (stable on input order).
func ScoreCandidates(parentSKU, productName string, localSKUs []string, categoryKeywords []string, remote []response.RemoteProduct) []Candidate {
	localSet := make(map[string]struct{}, len(localSKUs))
	for _, sku := range localSKUs {
		localSet[strings.ToUpper(sku)] = struct{}{}
	}
	nameWords := significantWords(productName)

	var candidates []Candidate
	for _, rp := range remote {
		c := Candidate{Product: rp}
		title := strings.ToLower(rp.Title)

		if parentSKU != "" && strings.Contains(strings.ToUpper(rp.Title), strings.ToUpper(parentSKU)) {
			c.Score += scoreParentSKUInTitle
		}

		for _, rv := range rp.Variants {
			if _, ok := localSet[strings.ToUpper(rv.SKU)]; ok && rv.SKU != "" {
				c.Score += scoreVariantSKUHit
				c.ExactSKUHits++
			}
		}

		for _, word := range nameWords {
			if strings.Contains(title, word) {
				c.Score += scoreNameWordOverlap
			}
		}

		for _, keyword := range categoryKeywords {
			if keyword != "" && strings.Contains(title, strings.ToLower(keyword)) {
				c.Score += scoreCategoryKeyword
			}
		}

		if c.ExactSKUHits >= 1 {
			candidates = append(candidates, c)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}

func significantWords(name string) []string {
	var words []string
	for _, word := range strings.Fields(strings.ToLower(name)) {
		if len(word) <= 3 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		words = append(words, word)
	}
	return words
}
