package sync

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// linkFormatVersion guards the serialized link layout.
const linkFormatVersion = 1

// SyncLink is the persisted reconciliation record for one (product, account)
// pair: which external product exists for each color, and in what state.
// It is the only way the system knows whether to create, update or delete.
type SyncLink struct {
	ProductID       int               `json:"product_id"`
	AccountID       int               `json:"account_id"`
	ColorProductIDs map[string]string `json:"color_product_ids"`
	Status          LinkStatus        `json:"status"`
	LastSyncedAt    time.Time         `json:"last_synced_at"`
	Metadata        LinkMetadata      `json:"metadata"`
}

type LinkMetadata struct {
	Handle string   `json:"handle,omitempty"`
	Title  string   `json:"title,omitempty"`
	Colors []string `json:"colors,omitempty"`
}

func NewLink(productID, accountID int) *SyncLink {
	return &SyncLink{
		ProductID:       productID,
		AccountID:       accountID,
		ColorProductIDs: make(map[string]string),
		Status:          StatusUnsynced,
	}
}

// ExternalID returns the marketplace product id for a color, if linked.
func (l *SyncLink) ExternalID(color string) (string, bool) {
	id, ok := l.ColorProductIDs[color]
	return id, ok
}

func (l *SyncLink) SetExternalID(color, externalID string) {
	if l.ColorProductIDs == nil {
		l.ColorProductIDs = make(map[string]string)
	}
	l.ColorProductIDs[color] = externalID
}

func (l *SyncLink) RemoveExternalID(color string) {
	delete(l.ColorProductIDs, color)
}

// Colors returns the linked colors in sorted order for deterministic
// iteration.
func (l *SyncLink) Colors() []string {
	colors := make([]string, 0, len(l.ColorProductIDs))
	for color := range l.ColorProductIDs {
		colors = append(colors, color)
	}
	sort.Strings(colors)
	return colors
}

// IsSynced reports whether the link is in a usable synced state: status
// synced, a non-empty color map, and the matching account.
func (l *SyncLink) IsSynced(accountID int) bool {
	return l != nil &&
		l.Status == StatusSynced &&
		len(l.ColorProductIDs) > 0 &&
		l.AccountID == accountID
}

// SetStatus applies a transition, rejecting moves the state machine does not
// allow.
func (l *SyncLink) SetStatus(to LinkStatus) error {
	if to == l.Status {
		return nil
	}
	if !CanTransition(l.Status, to) {
		return fmt.Errorf("illegal link status transition %s -> %s", l.Status, to)
	}
	l.Status = to
	return nil
}

// linkRecord is the versioned serialization envelope.
type linkRecord struct {
	Version         int               `json:"version"`
	ColorProductIDs map[string]string `json:"color_product_ids"`
	Metadata        LinkMetadata      `json:"metadata"`
}

// EncodeLink serializes the color map and metadata for storage. Status and
// timestamps live in their own columns.
func EncodeLink(link *SyncLink) ([]byte, error) {
	record := linkRecord{
		Version:         linkFormatVersion,
		ColorProductIDs: link.ColorProductIDs,
		Metadata:        link.Metadata,
	}
	return json.Marshal(record)
}

// DecodeLink restores the serialized portion of a link into target.
func DecodeLink(payload []byte, target *SyncLink) error {
	var record linkRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return fmt.Errorf("failed to decode link payload: %w", err)
	}
	if record.Version != linkFormatVersion {
		return fmt.Errorf("unsupported link format version %d", record.Version)
	}
	if record.ColorProductIDs == nil {
		record.ColorProductIDs = make(map[string]string)
	}
	target.ColorProductIDs = record.ColorProductIDs
	target.Metadata = record.Metadata
	return nil
}
