package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shopsync_api/internal/shopify/business/services/sync"
)

// SyncLinkRepository stores sync links in shopify.sync_links. Status and
// timestamps are real columns; the color map and metadata travel as a
// versioned JSON payload.
type SyncLinkRepository struct {
	db *sql.DB
}

func NewSyncLinkRepository(db *sql.DB) *SyncLinkRepository {
	return &SyncLinkRepository{db: db}
}

func (r *SyncLinkRepository) Get(ctx context.Context, productID, accountID int) (*sync.SyncLink, error) {
	query := `
	SELECT payload, status, last_synced_at
	FROM shopify.sync_links
	WHERE product_id = $1 AND account_id = $2`

	var (
		payload      []byte
		status       string
		lastSyncedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, productID, accountID).Scan(&payload, &status, &lastSyncedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query sync link: %w", err)
	}

	link := &sync.SyncLink{
		ProductID: productID,
		AccountID: accountID,
	}
	if err := sync.DecodeLink(payload, link); err != nil {
		return nil, err
	}
	parsed, err := sync.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("sync link %d/%d: %w", productID, accountID, err)
	}
	link.Status = parsed
	if lastSyncedAt.Valid {
		link.LastSyncedAt = lastSyncedAt.Time
	}
	return link, nil
}

func (r *SyncLinkRepository) Put(ctx context.Context, link *sync.SyncLink) error {
	payload, err := sync.EncodeLink(link)
	if err != nil {
		return fmt.Errorf("failed to encode sync link: %w", err)
	}

	query := `
	INSERT INTO shopify.sync_links (product_id, account_id, payload, status, last_synced_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, now())
	ON CONFLICT (product_id, account_id) DO UPDATE
	SET payload = EXCLUDED.payload,
	    status = EXCLUDED.status,
	    last_synced_at = EXCLUDED.last_synced_at,
	    updated_at = now()`

	var lastSyncedAt interface{}
	if !link.LastSyncedAt.IsZero() {
		lastSyncedAt = link.LastSyncedAt.UTC().Format(time.RFC3339)
	}

	_, err = r.db.ExecContext(ctx, query, link.ProductID, link.AccountID, payload, string(link.Status), lastSyncedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert sync link: %w", err)
	}
	return nil
}

func (r *SyncLinkRepository) Clear(ctx context.Context, productID, accountID int) error {
	query := `DELETE FROM shopify.sync_links WHERE product_id = $1 AND account_id = $2`
	_, err := r.db.ExecContext(ctx, query, productID, accountID)
	if err != nil {
		return fmt.Errorf("failed to clear sync link: %w", err)
	}
	return nil
}
