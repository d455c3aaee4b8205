package sync

import (
	"context"
	"fmt"
	"time"

	"shopsync_api/internal/catalog/models"
	"shopsync_api/internal/shopify/business/models/dto/request"
	"shopsync_api/internal/shopify/business/services/grouping"
)

// FullUpdate runs the four-step sequence per linked color: (1) content
// fields, (2) variant prices, (3) variant SKUs, (4) images. Step 1 failure
// aborts that color; steps 2-4 are independently best-effort and logged.
// The sequence is deliberately non-atomic.
func (o *Orchestrator) FullUpdate(ctx context.Context, product models.Product, account models.SyncAccount) SyncResult {
	start := time.Now()
	unlock := o.linkLocks.lock(product.ID, account.ID)
	defer unlock()

	link, err := o.links.Get(ctx, product.ID, account.ID)
	if err != nil {
		return o.finish("full_update", start, Fail("failed to load sync link", err.Error()))
	}
	if link == nil || len(link.ColorProductIDs) == 0 || link.AccountID != account.ID {
		return o.finish("full_update", start, Fail("product is not linked to this account"))
	}

	groups, missing := o.linkedGroups(link, product)

	outcomes := o.forEachGroup(ctx, groups, func(ctx context.Context, group grouping.ColorGroup) groupOutcome {
		externalID, _ := link.ExternalID(group.Color)
		return o.fullUpdateGroup(ctx, group, externalID, product, account)
	})

	updated := 0
	errs := append([]string{}, missing...)
	steps := make(map[string][]string)
	for _, out := range outcomes {
		steps[out.Color] = out.Steps
		if out.Err != "" {
			errs = append(errs, out.Color+": "+out.Err)
			continue
		}
		updated++
	}

	status := StatusSynced
	if len(errs) > 0 {
		status = StatusFailed
	}
	if updated > 0 || len(errs) > 0 {
		if err := link.SetStatus(status); err != nil {
			errs = append(errs, err.Error())
		}
		if updated > 0 {
			link.LastSyncedAt = time.Now().UTC()
		}
		if err := o.links.Put(ctx, link); err != nil {
			errs = append(errs, fmt.Sprintf("failed to persist sync link: %v", err))
		}
	}
	o.metrics.UpdatedCount.Add(int32(updated))

	result := SyncResult{
		Success: len(errs) == 0,
		Message: fmt.Sprintf("full update finished for %d of %d shopify products", updated, len(link.ColorProductIDs)),
		Data: map[string]interface{}{
			"updated": updated,
			"steps":   steps,
		},
		Errors: errs,
	}
	return o.finish("full_update", start, result)
}

func (o *Orchestrator) fullUpdateGroup(ctx context.Context, group grouping.ColorGroup, externalID string, product models.Product, account models.SyncAccount) groupOutcome {
	out := groupOutcome{Color: group.Color}

	payload, err := o.transformer.Transform(group, product, account)
	if err != nil {
		out.Err = fmt.Sprintf("transform failed: %v", err)
		return out
	}

	// Step 1: content. A failure here aborts the color.
	content := request.ContentFields{
		Title:           &payload.Title,
		DescriptionHTML: &payload.DescriptionHTML,
		Vendor:          &payload.Vendor,
		ProductType:     &payload.ProductType,
		Status:          &payload.Status,
	}
	res, err := o.gateway.UpdateProductContent(ctx, externalID, content)
	if reason := callFailure(err, userErrorsOf(res)); reason != "" {
		out.Steps = append(out.Steps, "content: failed")
		out.Err = "content update: " + reason
		return out
	}
	out.Steps = append(out.Steps, "content: ok")

	// Pairing against live remote variants feeds both steps 2 and 3.
	remote, err := o.gateway.GetProduct(ctx, externalID)
	if err != nil || remote == nil {
		out.Steps = append(out.Steps, "prices: skipped (remote fetch failed)", "skus: skipped (remote fetch failed)")
		o.log.Log("full update %q (%s): remote fetch failed: %v", product.Name, group.Color, err)
		out.Steps = append(out.Steps, "images: skipped (not supported)")
		return out
	}
	pairs, warning := pairVariants(payload.Variants, remote.Variants)
	if warning != "" {
		out.Warnings = append(out.Warnings, warning)
		o.log.Log("full update %q (%s): %s", product.Name, group.Color, warning)
	}

	// Step 2: prices, best-effort.
	priceUpdates := make([]request.VariantPriceUpdate, 0, len(pairs))
	for _, pair := range pairs {
		priceUpdates = append(priceUpdates, request.VariantPriceUpdate{
			VariantID:      pair.remote.ID,
			Price:          pair.local.Price,
			CompareAtPrice: pair.local.CompareAtPrice,
		})
	}
	priceRes, err := o.gateway.UpdateVariantPrices(ctx, externalID, priceUpdates)
	if reason := callFailure(err, userErrorsOf(priceRes)); reason != "" {
		out.Steps = append(out.Steps, "prices: failed")
		o.log.Log("full update %q (%s): price step failed: %s", product.Name, group.Color, reason)
	} else {
		out.Steps = append(out.Steps, "prices: ok")
	}

	// Step 3: SKUs, best-effort.
	skuUpdates := make([]request.SKUUpdate, 0, len(pairs))
	for _, pair := range pairs {
		skuUpdates = append(skuUpdates, request.SKUUpdate{
			VariantID: pair.remote.ID,
			SKU:       pair.local.SKU,
		})
	}
	batch, err := o.gateway.BatchUpdateVariantSKUs(ctx, skuUpdates)
	switch {
	case err != nil:
		out.Steps = append(out.Steps, "skus: failed")
		o.log.Log("full update %q (%s): sku step failed: %v", product.Name, group.Color, err)
	case batch != nil && len(batch.Failed) > 0:
		out.Steps = append(out.Steps, fmt.Sprintf("skus: %d ok, %d failed", len(batch.Successful), len(batch.Failed)))
		for _, failure := range batch.Failed {
			o.log.Log("full update %q (%s): sku %s: %s", product.Name, group.Color, failure.VariantID, failure.Message)
		}
	default:
		out.Steps = append(out.Steps, "skus: ok")
	}

	// Step 4: images. Not wired to the gateway yet, recorded as skipped.
	out.Steps = append(out.Steps, "images: skipped (not supported)")

	return out
}
