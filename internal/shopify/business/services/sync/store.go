package sync

import (
	"context"
	gosync "sync"
)

// LinkStore persists sync links. Get returns (nil, nil) when no link exists.
type LinkStore interface {
	Get(ctx context.Context, productID, accountID int) (*SyncLink, error)
	Put(ctx context.Context, link *SyncLink) error
	Clear(ctx context.Context, productID, accountID int) error
}

// keyedMutex serializes link writes per (product, account) key so concurrent
// actions on the same pair never interleave partial state.
type keyedMutex struct {
	locks gosync.Map
}

type linkKey struct {
	productID int
	accountID int
}

func (km *keyedMutex) lock(productID, accountID int) func() {
	value, _ := km.locks.LoadOrStore(linkKey{productID, accountID}, &gosync.Mutex{})
	mu := value.(*gosync.Mutex)
	mu.Lock()
	return mu.Unlock
}
