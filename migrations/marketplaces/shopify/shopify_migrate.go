package shopify

import (
	"database/sql"
	"fmt"
)

type CreateShopifySchema struct{}

func (m *CreateShopifySchema) UpMigration(db *sql.DB) error {
	query := `CREATE SCHEMA IF NOT EXISTS shopify;`
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create shopify schema: %w", err)
	}
	return nil
}

type CreateSyncLinksTable struct{}

func (m *CreateSyncLinksTable) UpMigration(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS shopify.sync_links (
		product_id     INT NOT NULL,
		account_id     INT NOT NULL,
		payload        TEXT NOT NULL,
		status         VARCHAR(16) NOT NULL,
		last_synced_at TIMESTAMPTZ,
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (product_id, account_id)
	);`
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create shopify.sync_links table: %w", err)
	}
	return nil
}

type CreateSyncLinksStatusIndex struct{}

func (m *CreateSyncLinksStatusIndex) UpMigration(db *sql.DB) error {
	query := `
	CREATE INDEX IF NOT EXISTS idx_sync_links_status
		ON shopify.sync_links (account_id, status);`
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create sync_links status index: %w", err)
	}
	return nil
}
