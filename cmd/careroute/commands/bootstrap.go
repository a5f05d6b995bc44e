// ABOUTME: Shared pipeline wiring for CLI commands
// ABOUTME: Builds the classifier gate, index, processor, generator, and executor
package commands

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/careroute/careroute/internal/charm"
	"github.com/careroute/careroute/internal/classifier"
	"github.com/careroute/careroute/internal/config"
	"github.com/careroute/careroute/internal/core"
	"github.com/careroute/careroute/internal/dsl"
	"github.com/careroute/careroute/internal/index"
	"github.com/careroute/careroute/internal/llm"
	"github.com/careroute/careroute/internal/opensearch"
	"github.com/careroute/careroute/internal/storage/sqlite"
)

// app bundles the wired routing pipeline for CLI commands
type app struct {
	cfg       *config.Config
	processor *core.Processor
	generator *dsl.Generator
	executor  *opensearch.Executor
	closers   []func() error
}

// Close releases everything the pipeline opened
func (a *app) Close() {
	for _, closer := range a.closers {
		_ = closer()
	}
}

// newApp wires the full pipeline from environment configuration. Missing
// API keys degrade the pipeline (lexical-only classification, fallback DSL)
// instead of failing startup.
func newApp() (*app, error) {
	// Load .env file if it exists (for API keys)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	a := &app{cfg: cfg}

	var client *llm.OpenAIClient
	if cfg.OpenAIKey != "" {
		clientCfg := llm.DefaultConfig(cfg.OpenAIKey)
		clientCfg.ChatModel = cfg.ChatModel
		clientCfg.EmbeddingModel = cfg.EmbeddingModel
		clientCfg.Timeout = cfg.Timeout
		clientCfg.MaxRetries = cfg.MaxRetries
		clientCfg.RetryDelay = cfg.RetryDelay

		client, err = llm.NewOpenAIClientWithConfig(clientCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
		}
	} else if !quiet {
		log.Println("Warning: OPENAI_API_KEY not set - semantic classification and LLM generation will degrade to lexical classification and fallback queries")
	}

	opts := classifier.Options{
		VotingStrategy: cfg.VotingStrategy,
		SemanticWeight: cfg.SemanticWeight,
		KeywordWeight:  cfg.KeywordWeight,
		MinConfidence:  cfg.MinConfidence,
		Threshold:      cfg.ClassifierThreshold,
		KeywordDir:     cfg.KeywordDir,
	}
	if client != nil {
		opts.ZeroShot = client
	}

	gate, err := classifier.New(cfg.ClassifierType, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build classifier: %w", err)
	}

	var embedder index.Embedder
	if client != nil {
		embedder = client
	}
	idx := index.NewConsolidatedIndex(embedder)
	loadIndexEntries(cfg, embedder, idx)

	// Audit log is best-effort; routing works without it
	var audit core.DecisionLogger
	if db, err := sqlite.Open(dbPath()); err != nil {
		if !quiet {
			log.Printf("Warning: audit log unavailable: %v", err)
		}
	} else {
		audit = sqlite.NewDecisionStore(db)
		a.closers = append(a.closers, db.Close)
	}

	a.processor = core.NewProcessor(gate, idx, core.NewMetrics(), audit, core.ProcessorConfig{
		ClassifierThreshold: cfg.ClassifierThreshold,
		DefaultThreshold:    cfg.DefaultThreshold,
		LogClassifications:  verbose,
	})

	genCfg := dsl.GeneratorConfig{
		Enabled:     cfg.LLMEnabled,
		Temperature: cfg.Temperature,
		TopP:        cfg.TopP,
		MaxTokens:   cfg.MaxTokens,
		ResultSize:  cfg.ResultSize,
	}
	if client != nil {
		a.generator = dsl.NewGenerator(client, genCfg)
	} else {
		a.generator = dsl.NewGenerator(nil, genCfg)
	}

	a.executor = opensearch.NewExecutor(cfg.OpenSearchEndpoint)

	return a, nil
}

// loadIndexEntries fills the consolidated index: persisted entries from charm
// when available, otherwise freshly embedded defaults (persisted for next time)
func loadIndexEntries(cfg *config.Config, embedder index.Embedder, idx *index.ConsolidatedIndex) {
	var kvClient *charm.Client
	if c, err := charm.NewClient(&charm.Config{Host: cfg.CharmHost, DBName: cfg.CharmDBName, AutoSync: true}); err == nil {
		kvClient = c
		defer func() { _ = kvClient.Close() }()

		if entries, err := index.LoadEntries(kvClient); err == nil && len(entries) > 0 {
			idx.Load(entries)
			return
		}
	} else if !quiet {
		log.Printf("Warning: charm KV unavailable, index entries will not persist: %v", err)
	}

	if embedder == nil {
		if !quiet {
			log.Println("Warning: no embedder available, consolidated index is empty")
		}
		return
	}

	entries, err := index.BuildEntries(embedder, index.DefaultUseCases())
	if err != nil {
		if !quiet {
			log.Printf("Warning: failed to build index entries: %v", err)
		}
		return
	}
	idx.Load(entries)

	if kvClient != nil {
		if err := index.SaveEntries(kvClient, entries); err != nil && !quiet {
			log.Printf("Warning: failed to persist index entries: %v", err)
		}
	}
}

// dbPath resolves the audit database location, honoring CAREROUTE_DB_PATH
func dbPath() string {
	if p := os.Getenv("CAREROUTE_DB_PATH"); p != "" {
		return p
	}
	return sqlite.DefaultDBPath()
}
