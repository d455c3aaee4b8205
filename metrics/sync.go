package metrics

import "sync/atomic"

type SyncMetrics struct {
	CreatedCount atomic.Int32
	UpdatedCount atomic.Int32
	DeletedCount atomic.Int32
	FailedCount  atomic.Int32
	SkippedCount atomic.Int32
}
