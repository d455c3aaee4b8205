package sync

import (
	"context"
	"fmt"
	"time"

	"shopsync_api/internal/catalog/models"
	"shopsync_api/internal/shopify/business/models/dto/response"
)

// PullRequest selects the page of remote snapshots to fetch.
type PullRequest struct {
	Page     int
	PageSize int
}

const defaultPullPageSize = 25

// Pull fetches the current remote state of every linked marketplace product
// for this account, paginated. Read-only: no sync state is mutated.
func (o *Orchestrator) Pull(ctx context.Context, productID int, account models.SyncAccount, req PullRequest) SyncResult {
	start := time.Now()

	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = defaultPullPageSize
	}

	link, err := o.links.Get(ctx, productID, account.ID)
	if err != nil {
		return o.finish("pull", start, Fail("failed to load sync link", err.Error()))
	}
	if link == nil || len(link.ColorProductIDs) == 0 {
		return o.finish("pull", start, Fail("product is not linked to this account"))
	}

	colors := link.Colors()
	offset := (req.Page - 1) * req.PageSize
	if offset >= len(colors) {
		result := Ok("no products on this page", map[string]interface{}{
			"products": map[string]interface{}{},
			"total":    len(colors),
			"page":     req.Page,
		})
		return o.finish("pull", start, result)
	}
	end := offset + req.PageSize
	if end > len(colors) {
		end = len(colors)
	}

	products := make(map[string]*response.RemoteProduct)
	var errs []string
	for _, color := range colors[offset:end] {
		externalID, _ := link.ExternalID(color)
		remote, err := o.gateway.GetProduct(ctx, externalID)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: transport: %v", color, err))
			continue
		}
		if remote == nil {
			errs = append(errs, color+": remote product not found")
			continue
		}
		products[color] = remote
	}

	result := SyncResult{
		Success: len(errs) == 0,
		Message: fmt.Sprintf("pulled %d of %d shopify products", len(products), end-offset),
		Data: map[string]interface{}{
			"products": products,
			"total":    len(colors),
			"page":     req.Page,
		},
		Errors: errs,
	}
	return o.finish("pull", start, result)
}
