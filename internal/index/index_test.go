// ABOUTME: Tests for the consolidated vector index
// ABOUTME: Covers similarity ordering, top-k capping, and degraded embedders
package index

import (
	"errors"
	"testing"
	"time"
)

// fakeEmbedder maps known texts to fixed vectors
type fakeEmbedder struct {
	vectors map[string][]float64
	err     error
	calls   int
}

func (f *fakeEmbedder) Embed(text string) ([]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vectors[text], nil
}

func testEntries() []UseCaseEntry {
	return []UseCaseEntry{
		{EntryID: "uc_1", SourceIndex: "healthcare_claims_index", Text: "claims analysis", Vector: []float64{1, 0, 0}, CreatedAt: time.Now()},
		{EntryID: "uc_2", SourceIndex: "healthcare_providers_index", Text: "provider metrics", Vector: []float64{0, 1, 0}, CreatedAt: time.Now()},
		{EntryID: "uc_3", SourceIndex: "healthcare_members_index", Text: "member lookup", Vector: []float64{0, 0, 1}, CreatedAt: time.Now()},
	}
}

func TestSearch_OrdersBySimilarity(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float64{
		"claims query": {0.9, 0.1, 0},
	}}
	idx := NewConsolidatedIndex(embedder)
	idx.Load(testEntries())

	results, err := idx.Search("claims query", 5)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].SourceIndex != "healthcare_claims_index" {
		t.Errorf("best match = %q, want healthcare_claims_index", results[0].SourceIndex)
	}
	for i := 1; i < len(results); i++ {
		if results[i-1].SimilarityScore < results[i].SimilarityScore {
			t.Error("results not ordered best first")
		}
	}
}

func TestSearch_TopKCap(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float64{
		"q": {1, 1, 1},
	}}
	idx := NewConsolidatedIndex(embedder)
	idx.Load(testEntries())

	results, err := idx.Search("q", 2)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("got %d results, want top-k cap of 2", len(results))
	}
}

func TestSearch_EmptyIndex(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float64{"q": {1, 0}}}
	idx := NewConsolidatedIndex(embedder)

	results, err := idx.Search("q", 5)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("empty index should yield no results, got %d", len(results))
	}
}

func TestSearch_EmptyQueryVector(t *testing.T) {
	// Embedder declines (nil vector, nil error)
	embedder := &fakeEmbedder{vectors: map[string][]float64{}}
	idx := NewConsolidatedIndex(embedder)
	idx.Load(testEntries())

	results, err := idx.Search("unknown", 5)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if results != nil {
		t.Errorf("declined embedding should yield nil results, got %v", results)
	}
}

func TestSearch_EmbedderError(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("api down")}
	idx := NewConsolidatedIndex(embedder)
	idx.Load(testEntries())

	if _, err := idx.Search("q", 5); err == nil {
		t.Error("embedder failure should surface as an error")
	}
}

func TestSearch_NilEmbedder(t *testing.T) {
	idx := NewConsolidatedIndex(nil)
	idx.Load(testEntries())

	if _, err := idx.Search("q", 5); err == nil {
		t.Error("nil embedder should surface as an error")
	}
}

func TestSourceCounts(t *testing.T) {
	idx := NewConsolidatedIndex(nil)
	entries := testEntries()
	entries = append(entries, UseCaseEntry{EntryID: "uc_4", SourceIndex: "healthcare_claims_index", Vector: []float64{1, 0, 0}})
	idx.Load(entries)

	counts := idx.SourceCounts()
	if counts["healthcare_claims_index"] != 2 {
		t.Errorf("claims count = %d, want 2", counts["healthcare_claims_index"])
	}
	if counts["healthcare_providers_index"] != 1 {
		t.Errorf("providers count = %d, want 1", counts["healthcare_providers_index"])
	}
	if idx.Size() != 4 {
		t.Errorf("Size() = %d, want 4", idx.Size())
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 0}, []float64{1, 0}, 1.0},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0.0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1.0},
		{"length mismatch", []float64{1, 0}, []float64{1}, 0.0},
		{"zero vector", []float64{0, 0}, []float64{1, 0}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosineSimilarity(tt.a, tt.b)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("cosineSimilarity = %.6f, want %.6f", got, tt.want)
			}
		})
	}
}

func TestBuildEntries(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float64{}}
	useCases := DefaultUseCases()
	for _, uc := range useCases {
		embedder.vectors[uc.Text] = []float64{1, 0}
	}

	entries, err := BuildEntries(embedder, useCases)
	if err != nil {
		t.Fatalf("BuildEntries error: %v", err)
	}
	if len(entries) != len(useCases) {
		t.Fatalf("got %d entries, want %d", len(entries), len(useCases))
	}
	for i, entry := range entries {
		if entry.SourceIndex != useCases[i].SourceIndex {
			t.Errorf("entry %d source = %q, want %q", i, entry.SourceIndex, useCases[i].SourceIndex)
		}
		if entry.EntryID == "" {
			t.Errorf("entry %d has no ID", i)
		}
		if len(entry.Vector) == 0 {
			t.Errorf("entry %d has no vector", i)
		}
	}
}

func TestBuildEntries_AbortsOnEmbedFailure(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("quota exceeded")}

	if _, err := BuildEntries(embedder, DefaultUseCases()); err == nil {
		t.Error("embed failure should abort the build")
	}
}
