package sync

import (
	"context"
	"fmt"
	"time"

	"shopsync_api/internal/catalog/models"
	"shopsync_api/internal/shopify/business/models/dto/response"
	"shopsync_api/internal/shopify/business/services/grouping"
)

// Create splits the product into color groups and creates one marketplace
// product per group. Without force, an already-synced link is rejected before
// any remote call. One group's failure never aborts the others.
func (o *Orchestrator) Create(ctx context.Context, product models.Product, account models.SyncAccount, force bool) SyncResult {
	start := time.Now()
	unlock := o.linkLocks.lock(product.ID, account.ID)
	defer unlock()

	link, err := o.links.Get(ctx, product.ID, account.ID)
	if err != nil {
		return o.finish("create", start, Fail("failed to load sync link", err.Error()))
	}
	if !force && link.IsSynced(account.ID) {
		return o.finish("create", start, Fail("product is already synced to this account"))
	}

	groups := o.grouper.Group(product)
	if len(groups) == 0 {
		return o.finish("create", start, Fail("no shopify products to create"))
	}

	outcomes := o.forEachGroup(ctx, groups, func(ctx context.Context, group grouping.ColorGroup) groupOutcome {
		return o.createGroup(ctx, group, product, account)
	})

	created := make(map[string]string)
	var errs []string
	for _, out := range outcomes {
		if out.Err != "" {
			errs = append(errs, out.Color+": "+out.Err)
			continue
		}
		created[out.Color] = out.ExternalID
	}

	if len(created) > 0 {
		if link == nil {
			link = NewLink(product.ID, account.ID)
		}
		for color, id := range created {
			link.SetExternalID(color, id)
		}
		link.Metadata.Title = product.Name
		link.Metadata.Colors = link.Colors()
		link.LastSyncedAt = time.Now().UTC()

		status := StatusSynced
		if len(errs) > 0 {
			status = StatusPending
		}
		if err := link.SetStatus(status); err != nil {
			errs = append(errs, err.Error())
		}
		if err := o.links.Put(ctx, link); err != nil {
			errs = append(errs, fmt.Sprintf("failed to persist sync link: %v", err))
		}
		o.metrics.CreatedCount.Add(int32(len(created)))
	}

	result := SyncResult{
		Success: len(errs) == 0,
		Message: fmt.Sprintf("created %d of %d shopify products", len(created), len(groups)),
		Data: map[string]interface{}{
			"created": created,
		},
		Errors: errs,
	}
	return o.finish("create", start, result)
}

func (o *Orchestrator) createGroup(ctx context.Context, group grouping.ColorGroup, product models.Product, account models.SyncAccount) groupOutcome {
	out := groupOutcome{Color: group.Color}

	payload, err := o.transformer.Transform(group, product, account)
	if err != nil {
		out.Err = fmt.Sprintf("transform failed: %v", err)
		return out
	}

	res, err := o.gateway.CreateProduct(ctx, payload)
	if err != nil {
		o.log.Log("create %q (%s): transport error: %v", product.Name, group.Color, err)
		out.Err = fmt.Sprintf("transport: %v", err)
		return out
	}
	if len(res.UserErrors) > 0 {
		o.log.Log("create %q (%s): rejected: %s", product.Name, group.Color, response.JoinUserErrors(res.UserErrors))
		out.Err = response.JoinUserErrors(res.UserErrors)
		return out
	}
	if res.Product == nil || res.Product.ID == "" {
		out.Err = "gateway returned no product id"
		return out
	}

	out.ExternalID = res.Product.ID
	return out
}
