package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopsync_api/internal/shopify/business/models/dto/response"
)

func TestScoreCandidates(t *testing.T) {
	localSKUs := []string{"10442BK-120", "10442BK-150", "10442WH-120"}

	remote := []response.RemoteProduct{
		{
			ID:    "gid://shopify/Product/1",
			Title: "Blackout Blind 10442 - Black",
			Variants: []response.RemoteVariant{
				{ID: "v1", SKU: "10442BK-120"},
				{ID: "v2", SKU: "10442BK-150"},
			},
		},
		{
			ID:    "gid://shopify/Product/2",
			Title: "Blackout Blind - White",
			Variants: []response.RemoteVariant{
				{ID: "v3", SKU: "10442WH-120"},
			},
		},
		{
			ID:    "gid://shopify/Product/3",
			Title: "Completely Unrelated Curtain",
			Variants: []response.RemoteVariant{
				{ID: "v4", SKU: "99999"},
			},
		},
	}

	candidates := ScoreCandidates("10442", "Blackout Blind", localSKUs, []string{"Blind"}, remote)
	require.Len(t, candidates, 2, "candidates without an exact SKU hit must be dropped")

	// Product/1: parent in title (50) + two SKU hits (60) + two name words (20) + keyword (5).
	assert.Equal(t, "gid://shopify/Product/1", candidates[0].Product.ID)
	assert.Equal(t, 135, candidates[0].Score)
	assert.Equal(t, 2, candidates[0].ExactSKUHits)

	// Product/2: one SKU hit (30) + two name words (20) + keyword (5).
	assert.Equal(t, "gid://shopify/Product/2", candidates[1].Product.ID)
	assert.Equal(t, 55, candidates[1].Score)
	assert.Equal(t, 1, candidates[1].ExactSKUHits)
}

func TestScoreCandidatesStableOnTies(t *testing.T) {
	remote := []response.RemoteProduct{
		{ID: "first", Variants: []response.RemoteVariant{{SKU: "SKU-1"}}},
		{ID: "second", Variants: []response.RemoteVariant{{SKU: "SKU-1"}}},
	}

	candidates := ScoreCandidates("", "", []string{"SKU-1"}, nil, remote)
	require.Len(t, candidates, 2)
	assert.Equal(t, "first", candidates[0].Product.ID)
	assert.Equal(t, "second", candidates[1].Product.ID)
}

func TestSignificantWords(t *testing.T) {
	words := significantWords("The Blackout Blind with Gold Trim for")
	assert.Equal(t, []string{"blackout", "blind", "gold", "trim"}, words)
}
