package sync

import (
	"context"
	"fmt"
	"time"

	"shopsync_api/internal/catalog/models"
	"shopsync_api/internal/shopify/business/models/dto/request"
	"shopsync_api/internal/shopify/business/models/dto/response"
	"shopsync_api/internal/shopify/business/services/grouping"
)

// UpdateFields selects which field groups a partial Update pushes.
type UpdateFields struct {
	Title   bool
	Pricing bool
	Images  bool
}

func (f UpdateFields) any() bool {
	return f.Title || f.Pricing || f.Images
}

// Update pushes only the requested field groups to every linked color
// product. The link must exist and be synced. Colors fail independently.
func (o *Orchestrator) Update(ctx context.Context, product models.Product, account models.SyncAccount, fields UpdateFields) SyncResult {
	start := time.Now()
	unlock := o.linkLocks.lock(product.ID, account.ID)
	defer unlock()

	if !fields.any() {
		return o.finish("update", start, Fail("no fields requested for update"))
	}

	link, err := o.links.Get(ctx, product.ID, account.ID)
	if err != nil {
		return o.finish("update", start, Fail("failed to load sync link", err.Error()))
	}
	if !link.IsSynced(account.ID) {
		return o.finish("update", start, Fail("product is not synced to this account"))
	}

	groups, missing := o.linkedGroups(link, product)

	outcomes := o.forEachGroup(ctx, groups, func(ctx context.Context, group grouping.ColorGroup) groupOutcome {
		externalID, _ := link.ExternalID(group.Color)
		return o.updateGroup(ctx, group, externalID, product, account, fields)
	})

	updated := 0
	errs := append([]string{}, missing...)
	warnings := make(map[string][]string)
	for _, out := range outcomes {
		if len(out.Warnings) > 0 {
			warnings[out.Color] = out.Warnings
		}
		if out.Err != "" {
			errs = append(errs, out.Color+": "+out.Err)
			continue
		}
		updated++
	}

	if updated > 0 {
		link.LastSyncedAt = time.Now().UTC()
		if err := o.links.Put(ctx, link); err != nil {
			errs = append(errs, fmt.Sprintf("failed to persist sync link: %v", err))
		}
		o.metrics.UpdatedCount.Add(int32(updated))
	}

	result := SyncResult{
		Success: len(errs) == 0,
		Message: fmt.Sprintf("updated %d of %d shopify products", updated, len(link.ColorProductIDs)),
		Data: map[string]interface{}{
			"updated":  updated,
			"warnings": warnings,
		},
		Errors: errs,
	}
	return o.finish("update", start, result)
}

func (o *Orchestrator) updateGroup(ctx context.Context, group grouping.ColorGroup, externalID string, product models.Product, account models.SyncAccount, fields UpdateFields) groupOutcome {
	out := groupOutcome{Color: group.Color}

	payload, err := o.transformer.Transform(group, product, account)
	if err != nil {
		out.Err = fmt.Sprintf("transform failed: %v", err)
		return out
	}

	if fields.Title {
		content := request.ContentFields{Title: &payload.Title}
		res, err := o.gateway.UpdateProductContent(ctx, externalID, content)
		if reason := callFailure(err, userErrorsOf(res)); reason != "" {
			out.Err = "title update: " + reason
			return out
		}
	}

	if fields.Pricing {
		if reason := o.pushPrices(ctx, externalID, payload, &out); reason != "" {
			out.Err = "price update: " + reason
			return out
		}
	}

	if fields.Images {
		// Image replacement is not wired to the gateway yet; recorded so the
		// caller sees the step was skipped rather than silently dropped.
		out.Warnings = append(out.Warnings, "image update skipped: not supported")
	}

	return out
}

// pushPrices fetches the live remote variants, pairs them against the local
// payload and pushes price updates. Returns a failure reason or "".
func (o *Orchestrator) pushPrices(ctx context.Context, externalID string, payload request.ProductPayload, out *groupOutcome) string {
	remote, err := o.gateway.GetProduct(ctx, externalID)
	if err != nil {
		return fmt.Sprintf("transport: %v", err)
	}
	if remote == nil {
		return "remote product not found"
	}

	pairs, warning := pairVariants(payload.Variants, remote.Variants)
	if warning != "" {
		out.Warnings = append(out.Warnings, warning)
	}
	if len(pairs) == 0 {
		return "no variants to update"
	}

	updates := make([]request.VariantPriceUpdate, 0, len(pairs))
	for _, pair := range pairs {
		updates = append(updates, request.VariantPriceUpdate{
			VariantID:      pair.remote.ID,
			Price:          pair.local.Price,
			CompareAtPrice: pair.local.CompareAtPrice,
		})
	}

	res, err := o.gateway.UpdateVariantPrices(ctx, externalID, updates)
	if reason := callFailure(err, userErrorsOf(res)); reason != "" {
		return reason
	}
	return ""
}

// linkedGroups resolves the link's colors to local color groups, reporting
// colors that no longer exist locally.
func (o *Orchestrator) linkedGroups(link *SyncLink, product models.Product) ([]grouping.ColorGroup, []string) {
	byColor := make(map[string]grouping.ColorGroup)
	for _, group := range o.grouper.Group(product) {
		byColor[group.Color] = group
	}

	var groups []grouping.ColorGroup
	var missing []string
	for _, color := range link.Colors() {
		group, ok := byColor[color]
		if !ok {
			missing = append(missing, color+": color no longer present in local catalog")
			continue
		}
		groups = append(groups, group)
	}
	return groups, missing
}

// callFailure folds a transport error and business userErrors into one
// failure reason; both count as failures but are reported distinctly.
func callFailure(err error, userErrors []response.UserError) string {
	if err != nil {
		return fmt.Sprintf("transport: %v", err)
	}
	if len(userErrors) > 0 {
		return response.JoinUserErrors(userErrors)
	}
	return ""
}

func userErrorsOf(res *response.UpdateResult) []response.UserError {
	if res == nil {
		return nil
	}
	return res.UserErrors
}
