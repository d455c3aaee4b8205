package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeLink(t *testing.T) {
	link := NewLink(42, 7)
	link.SetExternalID("Black", "gid-b")
	link.SetExternalID("White", "gid-w")
	link.Metadata = LinkMetadata{
		Handle: "blackout-blind",
		Title:  "Blackout Blind",
		Colors: []string{"Black", "White"},
	}

	payload, err := EncodeLink(link)
	require.NoError(t, err)

	restored := &SyncLink{ProductID: 42, AccountID: 7}
	require.NoError(t, DecodeLink(payload, restored))

	assert.Equal(t, link.ColorProductIDs, restored.ColorProductIDs)
	assert.Equal(t, link.Metadata, restored.Metadata)
}

func TestDecodeLinkRejectsUnknownVersion(t *testing.T) {
	payload := []byte(`{"version":99,"color_product_ids":{}}`)
	err := DecodeLink(payload, &SyncLink{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version")
}

func TestDecodeLinkGarbage(t *testing.T) {
	require.Error(t, DecodeLink([]byte("not json"), &SyncLink{}))
}

func TestDecodeLinkNilColorMap(t *testing.T) {
	payload := []byte(`{"version":1}`)
	link := &SyncLink{}
	require.NoError(t, DecodeLink(payload, link))
	assert.NotNil(t, link.ColorProductIDs)
}

func TestLinkColorsSorted(t *testing.T) {
	link := NewLink(1, 1)
	link.SetExternalID("White", "w")
	link.SetExternalID("Black", "b")
	link.SetExternalID("Grey", "g")
	assert.Equal(t, []string{"Black", "Grey", "White"}, link.Colors())
}

func TestIsSynced(t *testing.T) {
	tests := []struct {
		name     string
		link     *SyncLink
		account  int
		expected bool
	}{
		{
			name:     "nil link",
			link:     nil,
			account:  1,
			expected: false,
		},
		{
			name: "synced with colors",
			link: &SyncLink{
				AccountID:       1,
				Status:          StatusSynced,
				ColorProductIDs: map[string]string{"Black": "gid"},
			},
			account:  1,
			expected: true,
		},
		{
			name: "synced but empty map",
			link: &SyncLink{
				AccountID:       1,
				Status:          StatusSynced,
				ColorProductIDs: map[string]string{},
			},
			account:  1,
			expected: false,
		},
		{
			name: "wrong account",
			link: &SyncLink{
				AccountID:       1,
				Status:          StatusSynced,
				ColorProductIDs: map[string]string{"Black": "gid"},
			},
			account:  2,
			expected: false,
		},
		{
			name: "pending",
			link: &SyncLink{
				AccountID:       1,
				Status:          StatusPending,
				ColorProductIDs: map[string]string{"Black": "gid"},
			},
			account:  1,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.link.IsSynced(tt.account))
		})
	}
}

func TestSetStatus(t *testing.T) {
	t.Run("legal transition", func(t *testing.T) {
		link := NewLink(1, 1)
		require.NoError(t, link.SetStatus(StatusPending))
		require.NoError(t, link.SetStatus(StatusSynced))
		assert.Equal(t, StatusSynced, link.Status)
	})

	t.Run("same state is a no-op", func(t *testing.T) {
		link := NewLink(1, 1)
		link.Status = StatusSynced
		require.NoError(t, link.SetStatus(StatusSynced))
	})

	t.Run("illegal transition", func(t *testing.T) {
		link := NewLink(1, 1)
		err := link.SetStatus(StatusFailed)
		require.Error(t, err)
		assert.Equal(t, StatusUnsynced, link.Status, "status must not change on rejection")
	})
}

func TestParseStatus(t *testing.T) {
	for _, status := range []LinkStatus{StatusUnsynced, StatusPending, StatusSynced, StatusFailed} {
		parsed, err := ParseStatus(string(status))
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	_, err := ParseStatus("half-synced")
	require.Error(t, err)
}
