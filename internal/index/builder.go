// ABOUTME: Index construction and Charm KV persistence of use case entries
// ABOUTME: Rebuilds run out-of-band; the per-request hot path only searches
package index

import (
	"fmt"
	"time"

	"github.com/careroute/careroute/internal/charm"
	"github.com/google/uuid"
)

// UseCase is a source-tagged description awaiting embedding
type UseCase struct {
	SourceIndex string
	Text        string
}

// DefaultUseCases is the built-in corpus describing what each healthcare data
// source can answer. Deployments extend it with their own index metadata.
func DefaultUseCases() []UseCase {
	return []UseCase{
		{"healthcare_claims_index", "Category: Claims Processing and Payment Reconciliation. Description: Analyze claim submissions, adjudication outcomes, payments, and adjustments. Scenarios: claims payment reconciliation reports; denied claims analysis; claim status breakdowns by period"},
		{"healthcare_claims_index", "Category: Financial Reporting and Analytics. Description: Financial summaries over claim amounts, paid amounts, and adjustment reasons. Scenarios: monthly paid versus billed reports; adjustment reason trends"},
		{"healthcare_claims_index", "Category: Fraud Detection and Investigation. Description: Identify suspicious billing patterns, duplicate claims, and outlier providers. Scenarios: fraud detection reports by quarter; duplicate claim detection; outlier billing analysis"},
		{"healthcare_providers_index", "Category: Provider Network Management. Description: Provider demographics, specialties, credentials, and network adequacy. Scenarios: provider network adequacy analysis for a specialty; credential expiry reports; provider performance metrics"},
		{"healthcare_providers_index", "Category: Provider Performance Analytics. Description: Provider-level utilization and quality metrics. Scenarios: provider performance metrics for emergency services; specialty utilization comparisons"},
		{"healthcare_members_index", "Category: Member Enrollment and Benefits. Description: Member demographics, enrollment spans, plan benefits, and coverage levels. Scenarios: enrollment trend reports; benefit utilization by plan; coverage gap analysis"},
		{"healthcare_procedures_index", "Category: Procedure Codes and Pricing. Description: Procedure catalog, code mappings, and pricing history. Scenarios: procedure pricing reports; code usage frequency; pricing effective date audits"},
	}
}

// BuildEntries embeds each use case text and returns index-ready entries.
// Any single embedding failure aborts the build; a partially embedded index
// would silently skew routing confidence.
func BuildEntries(embedder Embedder, useCases []UseCase) ([]UseCaseEntry, error) {
	entries := make([]UseCaseEntry, 0, len(useCases))
	for _, uc := range useCases {
		vector, err := embedder.Embed(uc.Text)
		if err != nil {
			return nil, fmt.Errorf("failed to embed use case for %s: %w", uc.SourceIndex, err)
		}
		entries = append(entries, UseCaseEntry{
			EntryID:     "usecase_" + uuid.New().String(),
			SourceIndex: uc.SourceIndex,
			Text:        uc.Text,
			Vector:      vector,
			CreatedAt:   time.Now(),
		})
	}
	return entries, nil
}

// SaveEntries persists index entries to Charm KV for cloud-synced rebuilds
func SaveEntries(client *charm.Client, entries []UseCaseEntry) error {
	for _, entry := range entries {
		if err := client.SetJSON(charm.UseCaseKey(entry.EntryID), entry); err != nil {
			return fmt.Errorf("failed to save entry %s: %w", entry.EntryID, err)
		}
	}
	return nil
}

// LoadEntries reads all persisted index entries from Charm KV. Entries that
// fail to decode are skipped.
func LoadEntries(client *charm.Client) ([]UseCaseEntry, error) {
	keys, err := client.ListKeys(charm.UseCasePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list use case keys: %w", err)
	}

	var entries []UseCaseEntry
	for _, key := range keys {
		var entry UseCaseEntry
		if err := client.GetJSON(key, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
