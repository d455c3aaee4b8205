package sync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shopsync_api/internal/catalog/models"
	"shopsync_api/internal/shopify/business/models/dto/response"
	"shopsync_api/internal/shopify/business/services/parse"
)

// minSKUCoverage is the fraction of local SKUs that must be found on the
// marketplace before Link trusts the match.
const minSKUCoverage = 0.5

// Link discovers pre-existing marketplace products by local SKUs and adopts
// them into a new sync link without creating anything remotely. It requires
// at least half the local SKUs found and no SKU claimed by two marketplace
// products; otherwise it returns diagnostics and writes nothing.
func (o *Orchestrator) Link(ctx context.Context, product models.Product, account models.SyncAccount) SyncResult {
	start := time.Now()
	unlock := o.linkLocks.lock(product.ID, account.ID)
	defer unlock()

	existing, err := o.links.Get(ctx, product.ID, account.ID)
	if err != nil {
		return o.finish("link", start, Fail("failed to load sync link", err.Error()))
	}
	if existing != nil && len(existing.ColorProductIDs) > 0 {
		return o.finish("link", start, Fail("product is already linked to this account"))
	}

	localSKUs := localSKUsOf(product)
	if len(localSKUs) == 0 {
		return o.finish("link", start, Fail("product has no variant SKUs to match"))
	}

	remote, err := o.gateway.SearchProductsBySKU(ctx, localSKUs)
	if err != nil {
		return o.finish("link", start, Fail("marketplace search failed", fmt.Sprintf("transport: %v", err)))
	}

	candidates := parse.ScoreCandidates(product.ParentSKU, product.Name, localSKUs, []string{product.ProductType}, remote)
	if len(candidates) == 0 {
		return o.finish("link", start, Fail("no matching shopify products found"))
	}

	coverage, duplicates := o.analyzeMatches(localSKUs, candidates)
	if len(duplicates) > 0 {
		result := Fail("ambiguous match: the same SKU appears on multiple shopify products").
			WithData("duplicates", duplicates).
			WithData("coverage", coverage)
		return o.finish("link", start, result)
	}
	if coverage < minSKUCoverage {
		result := Fail(fmt.Sprintf("insufficient SKU coverage: %.0f%% found, %.0f%% required",
			coverage*100, minSKUCoverage*100)).
			WithData("coverage", coverage)
		return o.finish("link", start, result)
	}

	link := NewLink(product.ID, account.ID)
	for _, candidate := range candidates {
		color := o.candidateColor(candidate.Product, link)
		link.SetExternalID(color, candidate.Product.ID)
	}
	link.Metadata.Title = candidates[0].Product.Title
	link.Metadata.Handle = candidates[0].Product.Handle
	link.Metadata.Colors = link.Colors()
	link.LastSyncedAt = time.Now().UTC()
	if err := link.SetStatus(StatusSynced); err != nil {
		return o.finish("link", start, Fail("failed to mark link synced", err.Error()))
	}
	if err := o.links.Put(ctx, link); err != nil {
		return o.finish("link", start, Fail("failed to persist sync link", err.Error()))
	}

	result := Ok(fmt.Sprintf("linked %d shopify products", len(link.ColorProductIDs)), map[string]interface{}{
		"linked":   link.ColorProductIDs,
		"coverage": coverage,
	})
	return o.finish("link", start, result)
}

// analyzeMatches computes local SKU coverage across candidates and collects
// SKUs claimed by more than one marketplace product.
func (o *Orchestrator) analyzeMatches(localSKUs []string, candidates []parse.Candidate) (float64, map[string][]string) {
	localSet := make(map[string]struct{}, len(localSKUs))
	for _, sku := range localSKUs {
		localSet[strings.ToUpper(sku)] = struct{}{}
	}

	claimedBy := make(map[string][]string)
	found := make(map[string]struct{})
	for _, candidate := range candidates {
		for _, rv := range candidate.Product.Variants {
			key := strings.ToUpper(rv.SKU)
			if _, ok := localSet[key]; !ok {
				continue
			}
			found[key] = struct{}{}
			claimedBy[key] = append(claimedBy[key], candidate.Product.ID)
		}
	}

	duplicates := make(map[string][]string)
	for sku, products := range claimedBy {
		if len(products) > 1 {
			duplicates[sku] = products
		}
	}

	return float64(len(found)) / float64(len(localSKUs)), duplicates
}

// candidateColor derives the color key for an adopted marketplace product:
// SKU-suffix parsing first, then the title suffix, then a unique default.
func (o *Orchestrator) candidateColor(rp response.RemoteProduct, link *SyncLink) string {
	skus := make([]string, 0, len(rp.Variants))
	for _, rv := range rp.Variants {
		skus = append(skus, rv.SKU)
	}

	parent, _ := o.skuEngine.ResolveParent(skus)
	color := o.skuEngine.ResolveColor(skus, parent)

	if taken(link, color) {
		if idx := strings.LastIndex(rp.Title, " - "); idx >= 0 {
			if titleColor := strings.TrimSpace(rp.Title[idx+3:]); titleColor != "" {
				color = titleColor
			}
		}
	}
	base := color
	for n := 2; taken(link, color); n++ {
		color = fmt.Sprintf("%s %d", base, n)
	}
	return color
}

func taken(link *SyncLink, color string) bool {
	_, ok := link.ColorProductIDs[color]
	return ok
}

func localSKUsOf(product models.Product) []string {
	skus := make([]string, 0, len(product.Variants))
	for _, v := range product.Variants {
		if v.SKU != "" {
			skus = append(skus, v.SKU)
		}
	}
	return skus
}
