// ABOUTME: Consolidated vector index over tagged healthcare use case entries
// ABOUTME: In-memory cosine similarity search; entries loaded once at startup
package index

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/careroute/careroute/internal/models"
)

// Embedder converts text to an embedding vector. A nil or empty vector with
// a nil error means the embedder declined; callers treat that as zero
// confidence rather than a failure.
type Embedder interface {
	Embed(text string) ([]float64, error)
}

// UseCaseEntry is one pre-embedded use case description tagged with the data
// source it came from
type UseCaseEntry struct {
	EntryID     string    `json:"entry_id"`
	SourceIndex string    `json:"source_index"`
	Text        string    `json:"text"`
	Vector      []float64 `json:"vector"`
	CreatedAt   time.Time `json:"created_at"`
}

// ConsolidatedIndex merges use case entries from all data sources into one
// searchable collection. Entries are immutable after Load; searches take a
// read lock only long enough to copy scores.
type ConsolidatedIndex struct {
	embedder Embedder

	mu      sync.RWMutex
	entries []UseCaseEntry
}

// NewConsolidatedIndex creates an empty index over the given embedder
func NewConsolidatedIndex(embedder Embedder) *ConsolidatedIndex {
	return &ConsolidatedIndex{embedder: embedder}
}

// Load replaces the index contents with the given entries
func (ci *ConsolidatedIndex) Load(entries []UseCaseEntry) {
	ci.mu.Lock()
	defer ci.mu.Unlock()
	ci.entries = entries
}

// Size returns the number of entries in the index
func (ci *ConsolidatedIndex) Size() int {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	return len(ci.entries)
}

// SourceCounts returns the number of entries per tagged source
func (ci *ConsolidatedIndex) SourceCounts() map[string]int {
	ci.mu.RLock()
	defer ci.mu.RUnlock()

	counts := make(map[string]int)
	for _, entry := range ci.entries {
		counts[entry.SourceIndex]++
	}
	return counts
}

// Search embeds the query and returns the top-k nearest entries by cosine
// similarity, ordered best first. An empty index or an empty query vector
// yields an empty result set, never an error.
func (ci *ConsolidatedIndex) Search(query string, topK int) ([]models.SearchResult, error) {
	if ci.embedder == nil {
		return nil, fmt.Errorf("no embedder configured")
	}

	queryVector, err := ci.embedder.Embed(query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(queryVector) == 0 {
		return nil, nil
	}

	ci.mu.RLock()
	results := make([]models.SearchResult, 0, len(ci.entries))
	for _, entry := range ci.entries {
		results = append(results, models.SearchResult{
			SimilarityScore: cosineSimilarity(queryVector, entry.Vector),
			SourceIndex:     entry.SourceIndex,
			Text:            entry.Text,
		})
	}
	ci.mu.RUnlock()

	sort.Slice(results, func(i, j int) bool {
		return results[i].SimilarityScore > results[j].SimilarityScore
	})

	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// cosineSimilarity calculates cosine similarity between two vectors
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
