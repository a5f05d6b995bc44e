// ABOUTME: OpenAI client for embeddings, completions, and zero-shot labeling
// ABOUTME: Uses text-embedding-3-small for embeddings, gpt-4o-mini for generation (configurable)
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/careroute/careroute/internal/classifier"
	"github.com/careroute/careroute/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultChatModel is the default model for chat completions
	DefaultChatModel = "gpt-4o-mini"
	// DefaultEmbeddingModel is the default model for embeddings
	DefaultEmbeddingModel = openai.SmallEmbedding3
)

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey         string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// GenerationParams are the sampling controls passed through to completions
type GenerationParams struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	chatModel := os.Getenv("ROUTER_OPENAI_MODEL")
	if chatModel == "" {
		chatModel = DefaultChatModel
	}

	return &ClientConfig{
		APIKey:         apiKey,
		ChatModel:      chatModel,
		EmbeddingModel: string(DefaultEmbeddingModel),
		Timeout:        30 * time.Second,
		MaxRetries:     3,
		RetryDelay:     time.Second * 2,
	}
}

// OpenAIClient wraps the OpenAI API client with retry logic. It serves as the
// embedder, the text-completion provider, and the zero-shot label model.
type OpenAIClient struct {
	client         *openai.Client
	chatModel      string
	embeddingModel openai.EmbeddingModel
	timeout        time.Duration
	maxRetries     int
	retryDelay     time.Duration
}

// NewOpenAIClient creates a new OpenAI client with the given API key using default configuration
func NewOpenAIClient(apiKey string) (*OpenAIClient, error) {
	return NewOpenAIClientWithConfig(DefaultConfig(apiKey))
}

// NewOpenAIClientWithConfig creates a new OpenAI client with custom configuration
func NewOpenAIClientWithConfig(config *ClientConfig) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	embeddingModel := DefaultEmbeddingModel
	if config.EmbeddingModel != "" {
		embeddingModel = openai.EmbeddingModel(config.EmbeddingModel)
	}

	return &OpenAIClient{
		client:         openai.NewClient(config.APIKey),
		chatModel:      config.ChatModel,
		embeddingModel: embeddingModel,
		timeout:        timeout,
		maxRetries:     config.MaxRetries,
		retryDelay:     config.RetryDelay,
	}, nil
}

// IsAvailable reports whether the client can serve requests
func (c *OpenAIClient) IsAvailable() bool {
	return c != nil && c.client != nil
}

// Embed generates an embedding vector for the given text
func (c *OpenAIClient) Embed(text string) ([]float64, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)

		resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
			Input: []string{text},
			Model: c.embeddingModel,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}

		if len(resp.Data) == 0 {
			lastErr = fmt.Errorf("attempt %d: no embeddings returned", attempt+1)
			continue
		}

		embedding32 := resp.Data[0].Embedding
		embedding64 := make([]float64, len(embedding32))
		for i, v := range embedding32 {
			embedding64[i] = float64(v)
		}
		return embedding64, nil
	}

	return nil, fmt.Errorf("failed to generate embedding after %d attempts: %w", c.maxRetries+1, lastErr)
}

// Complete sends a single chat completion request and returns the raw text.
// There is no internal retry: callers that need a retry budget (the DSL
// generator's corrective loop) own it themselves.
func (c *OpenAIClient) Complete(prompt string, params GenerationParams) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: float32(params.Temperature),
	}
	if params.TopP > 0 {
		req.TopP = float32(params.TopP)
	}
	if params.MaxTokens > 0 {
		req.MaxTokens = params.MaxTokens
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// ClassifyLabels performs zero-shot classification by asking the chat model to
// score each candidate label under the hypothesis template. The response is a
// JSON object mapping labels to probabilities.
func (c *OpenAIClient) ClassifyLabels(text string, candidateLabels []string, hypothesisTemplate string) (classifier.ZeroShotPrediction, error) {
	systemPrompt := fmt.Sprintf(`You are a zero-shot text classifier. Given a query and candidate labels,
score how well each label completes the hypothesis template %q for the query.
Scores must be probabilities that sum to 1.0.

Return ONLY a JSON object mapping each label to its score. No additional text.`, hypothesisTemplate)

	labelsJSON, _ := json.Marshal(candidateLabels)
	userPrompt := fmt.Sprintf("Query: %s\n\nCandidate labels: %s", text, labelsJSON)

	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)

		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: userPrompt,
				},
			},
			Temperature: 0.0,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}

		var scores map[string]float64
		if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &scores); err != nil {
			lastErr = fmt.Errorf("attempt %d: failed to parse JSON: %w", attempt+1, err)
			continue
		}

		return rankLabels(candidateLabels, scores), nil
	}

	return classifier.ZeroShotPrediction{}, fmt.Errorf("zero-shot classification failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// rankLabels orders candidate labels by descending score; labels missing from
// the model response score zero
func rankLabels(candidateLabels []string, scores map[string]float64) classifier.ZeroShotPrediction {
	prediction := classifier.ZeroShotPrediction{
		Labels: make([]string, len(candidateLabels)),
		Scores: make([]float64, len(candidateLabels)),
	}
	copy(prediction.Labels, candidateLabels)
	for i, label := range prediction.Labels {
		prediction.Scores[i] = scores[label]
	}

	// Insertion sort: two or three labels in practice
	for i := 1; i < len(prediction.Labels); i++ {
		for j := i; j > 0 && prediction.Scores[j] > prediction.Scores[j-1]; j-- {
			prediction.Scores[j], prediction.Scores[j-1] = prediction.Scores[j-1], prediction.Scores[j]
			prediction.Labels[j], prediction.Labels[j-1] = prediction.Labels[j-1], prediction.Labels[j]
		}
	}
	return prediction
}

// SafetyReview is the parsed outcome of a query safety check
type SafetyReview struct {
	IsSafe          bool     `json:"is_safe"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

// ReviewQuerySafety asks the model to flag injection-like patterns, unbounded
// scans, and sensitive-field exposure in a generated query document
func (c *OpenAIClient) ReviewQuerySafety(queryJSON string) (SafetyReview, error) {
	prompt := fmt.Sprintf(`Analyze the following query for safety and security issues:

Query: %s

Check for:
1. SQL-injection-like patterns
2. Unauthorized data access
3. Performance issues (unbounded scans, missing size limits)
4. Sensitive data exposure
5. Malicious operations

Respond with JSON:
{
  "is_safe": true/false,
  "issues": ["list of issues if any"],
  "recommendations": ["list of recommendations"]
}`, queryJSON)

	raw, err := c.Complete(prompt, GenerationParams{Temperature: 0.0})
	if err != nil {
		return SafetyReview{}, fmt.Errorf("safety review failed: %w", err)
	}

	var review SafetyReview
	if err := json.Unmarshal([]byte(raw), &review); err != nil {
		return SafetyReview{}, fmt.Errorf("could not parse safety review response: %w", err)
	}
	return review, nil
}
