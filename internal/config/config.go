// ABOUTME: Centralized configuration for the healthcare query router
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the routing pipeline
type Config struct {
	// Classifier settings
	ClassifierType      string  // keyword | bart_zero_shot | ensemble
	VotingStrategy      string  // majority | weighted | confidence
	SemanticWeight      float64 // ensemble weight for the zero-shot classifier
	KeywordWeight       float64 // ensemble weight for the keyword classifier
	ClassifierThreshold float64 // gate threshold for should-route checks
	MinConfidence       float64 // floor confidence for ambiguous lexical results
	KeywordDir          string  // directory holding external keyword lists

	// Routing thresholds
	DefaultThreshold float64 // similarity needed for HIGH_CONFIDENCE
	MinimumThreshold float64 // stricter threshold for hardened deployments

	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// DSL generation settings
	LLMEnabled  bool
	Temperature float64
	TopP        float64
	MaxTokens   int
	ResultSize  int // size cap on generated queries

	// Charm settings for index entry persistence
	CharmHost   string
	CharmDBName string

	// OpenSearch backend
	OpenSearchEndpoint string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		ClassifierType:      getEnv("ROUTER_CLASSIFIER_TYPE", "ensemble"),
		VotingStrategy:      getEnv("ROUTER_VOTING_STRATEGY", "weighted"),
		SemanticWeight:      getEnvFloat("ROUTER_SEMANTIC_WEIGHT", 0.6),
		KeywordWeight:       getEnvFloat("ROUTER_KEYWORD_WEIGHT", 0.4),
		ClassifierThreshold: getEnvFloat("ROUTER_CLASSIFIER_THRESHOLD", 0.5),
		MinConfidence:       getEnvFloat("ROUTER_MIN_CONFIDENCE", 0.3),
		KeywordDir:          getEnv("ROUTER_KEYWORD_DIR", "data/keywords"),
		DefaultThreshold:    getEnvFloat("ROUTER_DEFAULT_THRESHOLD", 0.6),
		MinimumThreshold:    getEnvFloat("ROUTER_MINIMUM_THRESHOLD", 0.8),
		OpenAIKey:           os.Getenv("OPENAI_API_KEY"),
		ChatModel:           getEnv("ROUTER_OPENAI_MODEL", "gpt-4o-mini"),
		EmbeddingModel:      getEnv("ROUTER_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:             getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:          getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:          getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		LLMEnabled:          getEnvBool("ROUTER_LLM_ENABLED", true),
		Temperature:         getEnvFloat("ROUTER_LLM_TEMPERATURE", 0.1),
		TopP:                getEnvFloat("ROUTER_LLM_TOP_P", 0.8),
		MaxTokens:           getEnvInt("ROUTER_LLM_MAX_TOKENS", 1000),
		ResultSize:          getEnvInt("ROUTER_RESULT_SIZE", 100),
		CharmHost:           getEnv("CHARM_HOST", "cloud.charm.sh"),
		CharmDBName:         getEnv("CHARM_DB", "careroute"),
		OpenSearchEndpoint:  getEnv("OPENSEARCH_ENDPOINT", "http://localhost:9200"),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch c.ClassifierType {
	case "keyword", "bart_zero_shot", "ensemble":
	default:
		return fmt.Errorf("ROUTER_CLASSIFIER_TYPE must be keyword, bart_zero_shot, or ensemble, got %q", c.ClassifierType)
	}
	switch c.VotingStrategy {
	case "majority", "weighted", "confidence":
	default:
		return fmt.Errorf("ROUTER_VOTING_STRATEGY must be majority, weighted, or confidence, got %q", c.VotingStrategy)
	}
	if c.DefaultThreshold < 0 || c.DefaultThreshold > 1 {
		return fmt.Errorf("ROUTER_DEFAULT_THRESHOLD must be 0-1, got %f", c.DefaultThreshold)
	}
	if c.MinimumThreshold < 0 || c.MinimumThreshold > 1 {
		return fmt.Errorf("ROUTER_MINIMUM_THRESHOLD must be 0-1, got %f", c.MinimumThreshold)
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("ROUTER_MIN_CONFIDENCE must be 0-1, got %f", c.MinConfidence)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.ResultSize <= 0 || c.ResultSize > 1000 {
		return fmt.Errorf("ROUTER_RESULT_SIZE must be 1-1000, got %d", c.ResultSize)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
