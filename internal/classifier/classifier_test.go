// ABOUTME: Tests for the classifier registry and routing gate policy
// ABOUTME: Verifies registered names, construction, and ShouldRoute thresholds
package classifier

import (
	"testing"

	"github.com/careroute/careroute/internal/models"
)

func TestNew_RegisteredTypes(t *testing.T) {
	for _, name := range []string{"keyword", "bart_zero_shot", "ensemble"} {
		c, err := New(name, Options{})
		if err != nil {
			t.Errorf("New(%q) error: %v", name, err)
			continue
		}
		if c.Name() != name {
			t.Errorf("Name() = %q, want %q", c.Name(), name)
		}
	}
}

func TestNew_UnknownType(t *testing.T) {
	if _, err := New("markov", Options{}); err == nil {
		t.Error("expected error for unknown classifier type")
	}
}

func TestAvailable_SortedNames(t *testing.T) {
	names := Available()
	if len(names) < 3 {
		t.Fatalf("Available() = %v, want at least the three built-ins", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("Available() not sorted: %v", names)
			break
		}
	}
}

func TestShouldRoute(t *testing.T) {
	tests := []struct {
		name      string
		result    models.ClassificationResult
		threshold float64
		want      bool
	}{
		{
			name:      "healthcare above threshold",
			result:    models.ClassificationResult{IsHealthcare: true, Confidence: 0.8},
			threshold: 0.5,
			want:      true,
		},
		{
			name:      "healthcare at threshold",
			result:    models.ClassificationResult{IsHealthcare: true, Confidence: 0.5},
			threshold: 0.5,
			want:      true,
		},
		{
			name:      "healthcare below threshold",
			result:    models.ClassificationResult{IsHealthcare: true, Confidence: 0.4},
			threshold: 0.5,
			want:      false,
		},
		{
			name:      "non-healthcare regardless of confidence",
			result:    models.ClassificationResult{IsHealthcare: false, Confidence: 0.99},
			threshold: 0.5,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldRoute(tt.result, tt.threshold); got != tt.want {
				t.Errorf("ShouldRoute() = %t, want %t", got, tt.want)
			}
		})
	}
}
