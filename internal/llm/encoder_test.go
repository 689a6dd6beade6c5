// ABOUTME: Tests for vector normalization and encoder construction
// ABOUTME: Verifies unit-norm output and the missing-key unavailable error
package llm

import (
	"errors"
	"math"
	"testing"
)

func TestNormalizeVector(t *testing.T) {
	tests := []struct {
		name  string
		input []float64
	}{
		{"simple", []float64{3, 4}},
		{"negative components", []float64{-1, 2, -3}},
		{"already normalized", []float64{1, 0, 0}},
		{"tiny values", []float64{1e-8, 1e-8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeVector(append([]float64(nil), tt.input...))
			var norm float64
			for _, v := range got {
				norm += v * v
			}
			norm = math.Sqrt(norm)
			if math.Abs(norm-1.0) > 1e-9 {
				t.Errorf("norm = %v, want 1.0", norm)
			}
		})
	}
}

func TestNormalizeVector_ZeroVector(t *testing.T) {
	v := []float64{0, 0, 0}
	got := NormalizeVector(v)
	for i, x := range got {
		if x != 0 {
			t.Errorf("component %d = %v, want 0", i, x)
		}
	}
}

func TestNewOpenAIEncoder_RequiresAPIKey(t *testing.T) {
	_, err := NewOpenAIEncoder("")
	if !errors.Is(err, ErrEncoderUnavailable) {
		t.Errorf("expected ErrEncoderUnavailable, got %v", err)
	}
}

func TestNewOpenAIEncoder_DefaultModel(t *testing.T) {
	enc, err := NewOpenAIEncoder("sk-test")
	if err != nil {
		t.Fatalf("NewOpenAIEncoder: %v", err)
	}
	if enc.model != DefaultEmbeddingModel {
		t.Errorf("model = %q, want %q", enc.model, DefaultEmbeddingModel)
	}
}
