package sync

import (
	"context"
	"fmt"
	"time"

	"shopsync_api/internal/catalog/models"
	"shopsync_api/internal/shopify/business/models/dto/response"
)

// Delete removes every linked marketplace product for this account. Colors
// whose deletion succeeds are removed from the link map immediately; the link
// record itself is cleared only once the map empties, so a remaining external
// product is never orphaned without a local record.
func (o *Orchestrator) Delete(ctx context.Context, productID int, account models.SyncAccount) SyncResult {
	start := time.Now()
	unlock := o.linkLocks.lock(productID, account.ID)
	defer unlock()

	link, err := o.links.Get(ctx, productID, account.ID)
	if err != nil {
		return o.finish("delete", start, Fail("failed to load sync link", err.Error()))
	}
	if link == nil || len(link.ColorProductIDs) == 0 || link.AccountID != account.ID {
		return o.finish("delete", start, Fail("no linked shopify products to delete"))
	}

	deleted := make(map[string]string)
	failed := make(map[string]string)

	for _, color := range link.Colors() {
		externalID, _ := link.ExternalID(color)

		res, err := o.gateway.DeleteProduct(ctx, externalID)
		if err != nil {
			o.log.Log("delete product %d (%s): transport error: %v", productID, color, err)
			failed[color] = fmt.Sprintf("transport: %v", err)
			continue
		}
		if len(res.UserErrors) > 0 {
			reason := response.JoinUserErrors(res.UserErrors)
			o.log.Log("delete product %d (%s): rejected: %s", productID, color, reason)
			failed[color] = reason
			continue
		}

		deleted[color] = externalID
		link.RemoveExternalID(color)
		o.metrics.DeletedCount.Add(1)
	}

	var errs []string
	for _, color := range sortedKeys(failed) {
		errs = append(errs, color+": "+failed[color])
	}

	if len(deleted) > 0 {
		if len(link.ColorProductIDs) == 0 {
			if err := o.links.Clear(ctx, productID, account.ID); err != nil {
				errs = append(errs, fmt.Sprintf("failed to clear sync link: %v", err))
			}
		} else {
			if err := link.SetStatus(StatusPending); err != nil {
				errs = append(errs, err.Error())
			}
			link.Metadata.Colors = link.Colors()
			if err := o.links.Put(ctx, link); err != nil {
				errs = append(errs, fmt.Sprintf("failed to persist sync link: %v", err))
			}
		}
	}

	result := SyncResult{
		Success: len(errs) == 0,
		Message: fmt.Sprintf("deleted %d of %d shopify products", len(deleted), len(deleted)+len(failed)),
		Data: map[string]interface{}{
			"deleted": deleted,
			"failed":  failed,
		},
		Errors: errs,
	}
	return o.finish("delete", start, result)
}
