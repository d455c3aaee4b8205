package sync

import (
	"context"
	"strings"

	"shopsync_api/internal/catalog/models"
)

// Recreate deletes whatever is linked (best-effort, failures logged and
// swallowed) and then creates from scratch with force. Only the Create
// outcome decides success.
func (o *Orchestrator) Recreate(ctx context.Context, product models.Product, account models.SyncAccount) SyncResult {
	deleteResult := o.Delete(ctx, product.ID, account)
	if !deleteResult.Success {
		o.log.Log("recreate product %d: delete step reported: %s",
			product.ID, strings.Join(deleteResult.Errors, "; "))
	}

	result := o.Create(ctx, product, account, true)
	result = result.WithData("delete_step", map[string]interface{}{
		"success": deleteResult.Success,
		"data":    deleteResult.Data,
	})
	return result
}
