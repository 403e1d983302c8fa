//go:build osmapi

package osm

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit the real OSM API.
// Run with: go test -tags=osmapi ./internal/adapter/osm/ -v -count=1

func smokeClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    DefaultBaseURL,
		metrics:    testMetrics(),
		logger:     discardLogger(),
	}
}

func TestSmoke_FetchNode(t *testing.T) {
	c := smokeClient()

	// The Rada café node in the Heidelberg old town.
	node, err := c.FetchNode(context.Background(), 5589879349)
	require.NoError(t, err)

	assert.Equal(t, int64(5589879349), node.NodeID)
	assert.NotEmpty(t, node.Name)
}
