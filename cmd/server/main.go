// ABOUTME: Main entry point for the careroute MCP server with stdio transport
// ABOUTME: Wires the classification gate, vector index, generator, and tools
package main

import (
	"log"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/careroute/careroute/internal/charm"
	"github.com/careroute/careroute/internal/classifier"
	"github.com/careroute/careroute/internal/config"
	"github.com/careroute/careroute/internal/core"
	"github.com/careroute/careroute/internal/dsl"
	"github.com/careroute/careroute/internal/index"
	"github.com/careroute/careroute/internal/llm"
	"github.com/careroute/careroute/internal/mcp"
	"github.com/careroute/careroute/internal/opensearch"
	"github.com/careroute/careroute/internal/storage/sqlite"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

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
			log.Fatalf("Failed to initialize OpenAI client: %v", err)
		}
	} else {
		log.Println("Warning: OPENAI_API_KEY not set - semantic classification and LLM generation will not work")
	}

	// Classification gate
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
		log.Fatalf("Failed to build classifier: %v", err)
	}

	// Consolidated index: persisted entries via charm when available,
	// otherwise freshly embedded defaults
	var embedder index.Embedder
	if client != nil {
		embedder = client
	}
	idx := index.NewConsolidatedIndex(embedder)
	loadIndexEntries(cfg, embedder, idx)

	// Audit log is best-effort; routing works without it
	var audit core.DecisionLogger
	if db, err := sqlite.Open(sqlite.DefaultDBPath()); err != nil {
		log.Printf("Warning: audit log unavailable: %v", err)
	} else {
		defer func() { _ = db.Close() }()
		audit = sqlite.NewDecisionStore(db)
	}

	processor := core.NewProcessor(gate, idx, core.NewMetrics(), audit, core.ProcessorConfig{
		ClassifierThreshold: cfg.ClassifierThreshold,
		DefaultThreshold:    cfg.DefaultThreshold,
		LogClassifications:  true,
	})

	genCfg := dsl.GeneratorConfig{
		Enabled:     cfg.LLMEnabled,
		Temperature: cfg.Temperature,
		TopP:        cfg.TopP,
		MaxTokens:   cfg.MaxTokens,
		ResultSize:  cfg.ResultSize,
	}
	var generator *dsl.Generator
	if client != nil {
		generator = dsl.NewGenerator(client, genCfg)
	} else {
		generator = dsl.NewGenerator(nil, genCfg)
	}

	executor := opensearch.NewExecutor(cfg.OpenSearchEndpoint)

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"CareRoute Healthcare Query Router",
		"0.1.0",
	)

	mcp.RegisterTools(server, processor, generator, executor)

	// Start server with stdio transport
	log.Println("careroute MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func loadIndexEntries(cfg *config.Config, embedder index.Embedder, idx *index.ConsolidatedIndex) {
	var kvClient *charm.Client
	if c, err := charm.NewClient(&charm.Config{Host: cfg.CharmHost, DBName: cfg.CharmDBName, AutoSync: true}); err == nil {
		kvClient = c
		defer func() { _ = kvClient.Close() }()

		if entries, err := index.LoadEntries(kvClient); err == nil && len(entries) > 0 {
			idx.Load(entries)
			return
		}
	} else {
		log.Printf("Warning: charm KV unavailable, index entries will not persist: %v", err)
	}

	if embedder == nil {
		log.Println("Warning: no embedder available, consolidated index is empty")
		return
	}

	entries, err := index.BuildEntries(embedder, index.DefaultUseCases())
	if err != nil {
		log.Printf("Warning: failed to build index entries: %v", err)
		return
	}
	idx.Load(entries)

	if kvClient != nil {
		if err := index.SaveEntries(kvClient, entries); err != nil {
			log.Printf("Warning: failed to persist index entries: %v", err)
		}
	}
}
