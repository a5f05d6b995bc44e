// ABOUTME: Thin OpenSearch search executor over HTTP
// ABOUTME: Posts a DSL body to {endpoint}/{index}/_search and unpacks hits
package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/careroute/careroute/internal/models"
)

const defaultTimeout = 30 * time.Second

// Executor sends structured queries to an OpenSearch cluster
type Executor struct {
	endpoint string
	client   *http.Client
}

// ExecutionResult is the unpacked outcome of one search call
type ExecutionResult struct {
	TotalHits int              `json:"total_hits"`
	Documents []map[string]any `json:"documents"`
	TookMS    int              `json:"took_ms"`
}

// NewExecutor creates an executor for the given cluster endpoint.
// An empty endpoint yields an unavailable executor.
func NewExecutor(endpoint string) *Executor {
	return &Executor{
		endpoint: endpoint,
		client:   &http.Client{Timeout: defaultTimeout},
	}
}

// IsAvailable reports whether a cluster endpoint is configured
func (e *Executor) IsAvailable() bool {
	return e.endpoint != ""
}

// Execute runs the structured query against its target index
func (e *Executor) Execute(ctx context.Context, sq models.StructuredQuery) (*ExecutionResult, error) {
	if !e.IsAvailable() {
		return nil, fmt.Errorf("no OpenSearch endpoint configured")
	}
	if sq.IndexName == "" {
		return nil, fmt.Errorf("structured query has no index name")
	}

	body, err := json.Marshal(sq.OpenSearchDSL)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query body: %w", err)
	}

	url := fmt.Sprintf("%s/%s/_search", e.endpoint, sq.IndexName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	return parseSearchResponse(raw)
}

// searchResponse mirrors the subset of the OpenSearch response we consume
type searchResponse struct {
	Took int `json:"took"`
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source map[string]any `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func parseSearchResponse(raw []byte) (*ExecutionResult, error) {
	var sr searchResponse
	if err := json.Unmarshal(raw, &sr); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	docs := make([]map[string]any, 0, len(sr.Hits.Hits))
	for _, hit := range sr.Hits.Hits {
		docs = append(docs, hit.Source)
	}

	return &ExecutionResult{
		TotalHits: sr.Hits.Total.Value,
		Documents: docs,
		TookMS:    sr.Took,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
