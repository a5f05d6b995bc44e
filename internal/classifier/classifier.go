// ABOUTME: Classifier interface, registry, and routing gate policy
// ABOUTME: Strategies register by name so new classifiers need no call-site changes
package classifier

import (
	"fmt"
	"sort"

	"github.com/careroute/careroute/internal/models"
)

// Classifier decides whether a query belongs to the healthcare domain.
// Classify never returns an error: sub-component failures are folded into
// the result (fail-closed) so a degraded classifier cannot crash routing.
type Classifier interface {
	Classify(query string) models.ClassificationResult
	IsAvailable() bool
	Name() string
}

// ZeroShotPrediction holds candidate labels ordered by descending score
type ZeroShotPrediction struct {
	Labels []string
	Scores []float64
}

// ZeroShotModel is the external zero-shot label classification collaborator
type ZeroShotModel interface {
	ClassifyLabels(text string, candidateLabels []string, hypothesisTemplate string) (ZeroShotPrediction, error)
	IsAvailable() bool
}

// Options configures classifier construction. The ensemble reads the voting
// fields; both sub-classifiers read MinConfidence and Threshold.
type Options struct {
	VotingStrategy string
	SemanticWeight float64
	KeywordWeight  float64
	MinConfidence  float64
	Threshold      float64
	KeywordDir     string
	ZeroShot       ZeroShotModel
}

// Factory constructs a classifier from options
type Factory func(opts Options) (Classifier, error)

var registry = map[string]Factory{}

func init() {
	Register("keyword", func(opts Options) (Classifier, error) {
		return NewKeywordClassifier(opts), nil
	})
	Register("bart_zero_shot", func(opts Options) (Classifier, error) {
		return NewZeroShotClassifier(opts), nil
	})
	Register("ensemble", func(opts Options) (Classifier, error) {
		return NewEnsembleClassifier(opts), nil
	})
}

// Register adds a named classifier factory. Later registrations replace
// earlier ones with the same name.
func Register(name string, f Factory) {
	registry[name] = f
}

// New creates a classifier of the given registered type
func New(classifierType string, opts Options) (Classifier, error) {
	f, ok := registry[classifierType]
	if !ok {
		return nil, fmt.Errorf("unknown classifier type: %q (available: %v)", classifierType, Available())
	}
	return f(opts)
}

// Available returns the registered classifier type names, sorted
func Available() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ShouldRoute is the gate policy: a query proceeds to similarity search only
// when it was classified as healthcare with confidence at or above threshold.
func ShouldRoute(result models.ClassificationResult, threshold float64) bool {
	return result.IsHealthcare && result.Confidence >= threshold
}
