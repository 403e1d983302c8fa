// Package osm implements domain.NodeFetcher against the OpenStreetMap API v0.6.
package osm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/campuscoffee/pos-service/internal/domain"
	"github.com/campuscoffee/pos-service/internal/observability"
)

// DefaultBaseURL is the public OSM API endpoint for node lookups.
const DefaultBaseURL = "https://api.openstreetmap.org/api/0.6"

// Client fetches raw nodes from the OSM API. A 4xx response or an empty
// element list maps to domain.NodeNotFoundError; any other failure consults
// the recovery provider before giving up with domain.FetchUnavailableError.
type Client struct {
	httpClient *http.Client
	baseURL    string
	recovery   RecoveryProvider
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an OSM API client. Pass a nil recovery provider to
// disable fixture fallback.
func NewClient(baseURL string, timeout time.Duration, recovery RecoveryProvider, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:  baseURL,
		recovery: recovery,
		metrics:  metrics,
		logger:   logger,
	}
}

// FetchNode retrieves a single node and maps its tag set onto domain.OsmNode.
func (c *Client) FetchNode(ctx context.Context, nodeID int64) (domain.OsmNode, error) {
	fullURL := fmt.Sprintf("%s/node/%d.json", c.baseURL, nodeID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.OsmNode{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.NodeFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return c.recover(nodeID, fmt.Errorf("fetch node request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		c.logger.Warn("osm node not found", "node_id", nodeID, "status", resp.StatusCode)
		c.metrics.NodeFetchRequests.WithLabelValues("not_found").Inc()
		return domain.OsmNode{}, &domain.NodeNotFoundError{NodeID: nodeID}
	}
	if resp.StatusCode != http.StatusOK {
		return c.recover(nodeID, fmt.Errorf("osm API error: status %d", resp.StatusCode))
	}

	var apiResp response
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return c.recover(nodeID, fmt.Errorf("decode response: %w", err))
	}

	// The API returns 200 with an element array; no elements means the node
	// does not exist.
	if len(apiResp.Elements) == 0 {
		c.metrics.NodeFetchRequests.WithLabelValues("not_found").Inc()
		return domain.OsmNode{}, &domain.NodeNotFoundError{NodeID: nodeID}
	}

	c.metrics.NodeFetchRequests.WithLabelValues("success").Inc()
	return mapToDomain(nodeID, apiResp.Elements[0]), nil
}

// recover consults the recovery provider for a fixture before surfacing the
// failure as a typed domain.FetchUnavailableError.
func (c *Client) recover(nodeID int64, cause error) (domain.OsmNode, error) {
	if c.recovery != nil {
		if node, ok := c.recovery.Recover(nodeID); ok {
			c.logger.Warn("osm fetch failed, using built-in fixture",
				"node_id", nodeID,
				"error", cause,
			)
			c.metrics.NodeFetchRequests.WithLabelValues("fixture").Inc()
			return node, nil
		}
	}

	c.logger.Error("osm fetch failed", "node_id", nodeID, "error", cause)
	c.metrics.NodeFetchRequests.WithLabelValues("error").Inc()
	return domain.OsmNode{}, &domain.FetchUnavailableError{NodeID: nodeID, Err: cause}
}

// mapToDomain projects the free-form tag mapping onto the domain node.
// Unknown tags are ignored; description and street have documented fallbacks.
func mapToDomain(nodeID int64, el element) domain.OsmNode {
	tags := el.Tags
	return domain.OsmNode{
		NodeID:      nodeID,
		Name:        tags["name"],
		Description: firstNonBlank(tags["description"], tags["note"]),
		Amenity:     tags["amenity"],
		Shop:        tags["shop"],
		Campus:      tags["campus"],
		Street:      firstNonBlank(tags["addr:street"], tags["addr:road"]),
		HouseNumber: tags["addr:housenumber"],
		PostalCode:  tags["addr:postcode"],
		City:        tags["addr:city"],
	}
}

func firstNonBlank(primary, fallback string) string {
	if strings.TrimSpace(primary) != "" {
		return primary
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return ""
}

// OSM API response types.

type response struct {
	Elements []element `json:"elements"`
}

type element struct {
	Tags map[string]string `json:"tags"`
}
