package sync

import (
	"context"
	"fmt"
	"time"
)

// TestConnection verifies the gateway credentials by fetching the shop.
func (o *Orchestrator) TestConnection(ctx context.Context) SyncResult {
	start := time.Now()

	shop, err := o.gateway.TestConnection(ctx)
	if err != nil {
		return o.finish("test_connection", start, Fail("connection failed", fmt.Sprintf("transport: %v", err)))
	}
	if shop == nil {
		return o.finish("test_connection", start, Fail("connection failed", "gateway returned no shop"))
	}

	result := Ok("connected to "+shop.Name, map[string]interface{}{
		"shop": shop,
	})
	return o.finish("test_connection", start, result)
}
