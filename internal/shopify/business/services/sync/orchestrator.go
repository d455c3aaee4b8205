package sync

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"shopsync_api/internal/shopify/business/models/dto/request"
	"shopsync_api/internal/shopify/business/models/dto/response"
	"shopsync_api/internal/shopify/business/services"
	"shopsync_api/internal/shopify/business/services/grouping"
	"shopsync_api/internal/shopify/business/services/parse"
	"shopsync_api/internal/shopify/business/services/transform"
	"shopsync_api/metrics"
	"shopsync_api/pkg/logger"
)

const defaultWorkerCount = 4

// Orchestrator executes sync actions against the marketplace gateway and
// reconciles the outcome into the link store. Every action returns exactly
// one SyncResult; failures are aggregated, never thrown past the boundary.
type Orchestrator struct {
	gateway     services.APIGateway
	links       LinkStore
	grouper     *grouping.Engine
	transformer *transform.Transformer
	skuEngine   *parse.SkuEngine
	log         logger.Logger
	metrics     *metrics.SyncMetrics
	workerCount int
	linkLocks   keyedMutex
}

func NewOrchestrator(
	gateway services.APIGateway,
	links LinkStore,
	grouper *grouping.Engine,
	transformer *transform.Transformer,
	skuEngine *parse.SkuEngine,
	writer io.Writer,
	workerCount int,
) *Orchestrator {
	if workerCount <= 0 {
		workerCount = defaultWorkerCount
	}
	return &Orchestrator{
		gateway:     gateway,
		links:       links,
		grouper:     grouper,
		transformer: transformer,
		skuEngine:   skuEngine,
		log:         logger.NewLogger(writer, "[SyncOrchestrator]"),
		metrics:     &metrics.SyncMetrics{},
		workerCount: workerCount,
	}
}

func (o *Orchestrator) Metrics() *metrics.SyncMetrics {
	return o.metrics
}

// finish stamps the result with the operation id and records action metrics.
func (o *Orchestrator) finish(action string, start time.Time, result SyncResult) SyncResult {
	duration := time.Since(start)
	metrics.RecordAction(action, result.Success, duration)
	if !result.Success {
		o.metrics.FailedCount.Add(1)
	}
	return result.
		WithMeta("operation_id", uuid.NewString()).
		WithMeta("action", action).
		WithMeta("duration_ms", duration.Milliseconds())
}

// groupOutcome is the per-color result of a bulk action.
type groupOutcome struct {
	Color      string
	ExternalID string
	Err        string
	Steps      []string
	Warnings   []string
}

// forEachGroup runs fn for every color group on a bounded pool. Outcomes are
// returned in the original group order regardless of completion order, so
// aggregated results stay deterministic.
func (o *Orchestrator) forEachGroup(
	ctx context.Context,
	groups []grouping.ColorGroup,
	fn func(ctx context.Context, group grouping.ColorGroup) groupOutcome,
) []groupOutcome {
	outcomes := make([]groupOutcome, len(groups))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workerCount)
	for i, group := range groups {
		i, group := i, group
		g.Go(func() error {
			outcomes[i] = fn(gctx, group)
			return nil
		})
	}
	// Workers never return errors; failures are carried in their outcomes.
	_ = g.Wait()
	return outcomes
}

// variantPair couples a local variant payload with its remote counterpart.
type variantPair struct {
	local  request.VariantPayload
	remote response.RemoteVariant
	bySKU  bool
}

// pairVariants matches local to remote variants, preferring SKU equality and
// falling back to positional order for the leftovers. The returned warning is
// non-empty when any pairing had to guess.
func pairVariants(local []request.VariantPayload, remote []response.RemoteVariant) ([]variantPair, string) {
	remoteBySKU := make(map[string]int, len(remote))
	for i, rv := range remote {
		if rv.SKU != "" {
			remoteBySKU[strings.ToUpper(rv.SKU)] = i
		}
	}

	usedRemote := make([]bool, len(remote))
	pairs := make([]variantPair, 0, len(local))
	var unmatched []request.VariantPayload

	for _, lv := range local {
		if idx, ok := remoteBySKU[strings.ToUpper(lv.SKU)]; ok && !usedRemote[idx] {
			usedRemote[idx] = true
			pairs = append(pairs, variantPair{local: lv, remote: remote[idx], bySKU: true})
			continue
		}
		unmatched = append(unmatched, lv)
	}

	positional := 0
	dropped := 0
	ri := 0
	for _, lv := range unmatched {
		for ri < len(remote) && usedRemote[ri] {
			ri++
		}
		if ri >= len(remote) {
			dropped++
			continue
		}
		usedRemote[ri] = true
		pairs = append(pairs, variantPair{local: lv, remote: remote[ri], bySKU: false})
		positional++
	}

	warning := ""
	switch {
	case dropped > 0:
		warning = fmt.Sprintf("variant count mismatch: %d local variants have no remote counterpart", dropped)
	case positional > 0:
		warning = fmt.Sprintf("%d variants paired positionally (no SKU match)", positional)
	}
	return pairs, warning
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
