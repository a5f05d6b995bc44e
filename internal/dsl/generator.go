// ABOUTME: DSL generator: LLM path with corrective retries, rule-based fallback
// ABOUTME: Only validated documents leave the LLM path; error-path documents are inert
package dsl

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/careroute/careroute/internal/llm"
	"github.com/careroute/careroute/internal/models"
)

// maxGenerationAttempts is the hard ceiling on completion calls per query
const maxGenerationAttempts = 3

// CompletionProvider is the text-generation collaborator. Implemented by
// llm.OpenAIClient; stubbed in tests.
type CompletionProvider interface {
	Complete(prompt string, params llm.GenerationParams) (string, error)
	ReviewQuerySafety(queryJSON string) (llm.SafetyReview, error)
	IsAvailable() bool
}

// GeneratorConfig controls generation behavior
type GeneratorConfig struct {
	Enabled     bool
	Temperature float64
	TopP        float64
	MaxTokens   int
	ResultSize  int
}

// Generator converts a query plus its routing decision into an executable
// structured query document
type Generator struct {
	provider CompletionProvider
	cfg      GeneratorConfig
}

// NewGenerator creates a generator. A nil provider or a disabled config means
// every call takes the deterministic fallback path.
func NewGenerator(provider CompletionProvider, cfg GeneratorConfig) *Generator {
	if cfg.ResultSize <= 0 {
		cfg.ResultSize = 100
	}
	return &Generator{provider: provider, cfg: cfg}
}

// IsAvailable reports whether the LLM path can be attempted
func (g *Generator) IsAvailable() bool {
	return g.cfg.Enabled && g.provider != nil && g.provider.IsAvailable()
}

// Generate produces a DSL document for the routed query. It never returns an
// error: the LLM path degrades to the fallback generator, and only genuinely
// unusable situations yield a GenerationError result.
func (g *Generator) Generate(query string, routing models.RoutingDecision) models.DSLResult {
	start := time.Now()

	if routing.Status == models.StatusError {
		return errorResult(query, fmt.Sprintf("cannot generate from an errored routing decision: %s", routing.Message), start)
	}

	indexName := routing.TargetSource
	if indexName == "" {
		indexName = "unknown"
	}

	if !g.IsAvailable() {
		return g.fallbackResult(query, indexName, start)
	}

	result, err := g.generateWithLLM(query, indexName)
	if err != nil {
		log.Printf("Warning: LLM generation failed, using fallback: %v", err)
		return g.fallbackResult(query, indexName, start)
	}

	result.ProcessingTimeMS = float64(time.Since(start).Microseconds()) / 1000.0
	return result
}

// generateWithLLM runs the completion / extract / validate loop, appending a
// correction instruction to the prompt on each failed attempt
func (g *Generator) generateWithLLM(query, indexName string) (models.DSLResult, error) {
	schema := SchemaFor(indexName)
	prompt := buildPrompt(query, indexName, schema, g.cfg.ResultSize)
	params := llm.GenerationParams{
		Temperature: g.cfg.Temperature,
		TopP:        g.cfg.TopP,
		MaxTokens:   g.cfg.MaxTokens,
	}

	var doc map[string]any
	var lastErr error
	attempts := 0

	for attempt := 1; attempt <= maxGenerationAttempts; attempt++ {
		attempts = attempt

		raw, err := g.provider.Complete(prompt, params)
		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt, err)
			continue
		}

		doc, err = ParseStructuredResponse(raw)
		if err == nil {
			break
		}
		lastErr = fmt.Errorf("attempt %d: %w", attempt, err)
		doc = nil
		prompt += correctionSuffix(attempt+1, err)
	}

	if doc == nil {
		return models.DSLResult{}, fmt.Errorf("generation failed after %d attempts: %w", attempts, lastErr)
	}

	sq := toStructuredQuery(doc)
	if sq.IndexName == "" {
		sq.IndexName = indexName
	}
	if sq.QueryType == "" {
		sq.QueryType = "search"
	}

	isSafe, safetyIssues := g.reviewSafety(sq)

	return models.DSLResult{
		Document:     sq,
		TargetSource: sq.IndexName,
		QueryKind:    sq.QueryType,
		IsSafe:       isSafe,
		SafetyIssues: safetyIssues,
		Explanation:  fmt.Sprintf("Generated OpenSearch DSL query for: %s", query),
		Method:       models.GeneratedByLLM,
		UsageMetadata: map[string]any{
			"provider":       "llm",
			"retry_attempts": attempts,
		},
	}, nil
}

// reviewSafety asks the provider to flag risky patterns. A failed review
// never discards the document; it is surfaced as unsafe for the caller to
// arbitrate.
func (g *Generator) reviewSafety(sq models.StructuredQuery) (bool, string) {
	dslJSON, err := json.Marshal(sq.OpenSearchDSL)
	if err != nil {
		return false, fmt.Sprintf("could not serialize query for safety review: %v", err)
	}

	review, err := g.provider.ReviewQuerySafety(string(dslJSON))
	if err != nil {
		return false, fmt.Sprintf("safety review unavailable: %v", err)
	}
	if !review.IsSafe {
		return false, strings.Join(review.Issues, ", ")
	}
	return true, ""
}

// fallbackResult wraps the deterministic rule-based document
func (g *Generator) fallbackResult(query, indexName string, start time.Time) models.DSLResult {
	sq := FallbackQuery(query, indexName, g.cfg.ResultSize)

	return models.DSLResult{
		Document:     sq,
		TargetSource: sq.IndexName,
		QueryKind:    sq.QueryType,
		IsSafe:       true,
		Explanation:  fmt.Sprintf("Fallback OpenSearch DSL query generated for: %s", query),
		Method:       models.GeneratedByFallback,
		UsageMetadata: map[string]any{
			"provider": "fallback",
		},
		ProcessingTimeMS: float64(time.Since(start).Microseconds()) / 1000.0,
	}
}

func errorResult(query, message string, start time.Time) models.DSLResult {
	return models.DSLResult{
		IsSafe:       false,
		SafetyIssues: message,
		Explanation:  fmt.Sprintf("Error generating query for: %s", query),
		Method:       models.GenerationError,
		UsageMetadata: map[string]any{
			"provider": "error",
		},
		ProcessingTimeMS: float64(time.Since(start).Microseconds()) / 1000.0,
	}
}
