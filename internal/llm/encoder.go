// ABOUTME: Encoder interface for mapping text to unit-norm embedding vectors
// ABOUTME: Satisfied by the OpenAI client in production and by fakes in tests
package llm

import (
	"context"
	"errors"
	"math"
)

// ErrEncoderUnavailable signals that no text encoder is configured or
// reachable. Strategies that can degrade to keyword/popularity ranking
// catch it; pure-semantic requests surface it to the caller.
var ErrEncoderUnavailable = errors.New("text encoder unavailable")

// Encoder maps text to fixed-dimension unit-norm vectors. The same
// encoder must be used for corpus items and for queries so cosine
// similarities are meaningful.
type Encoder interface {
	EmbedText(ctx context.Context, text string) ([]float64, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
}

// Unavailable returns an Encoder whose every call fails with
// ErrEncoderUnavailable. It stands in when no API key is configured so
// callers can still run the non-semantic strategies.
func Unavailable() Encoder {
	return unavailableEncoder{}
}

type unavailableEncoder struct{}

func (unavailableEncoder) EmbedText(ctx context.Context, text string) ([]float64, error) {
	return nil, ErrEncoderUnavailable
}

func (unavailableEncoder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	return nil, ErrEncoderUnavailable
}

// NormalizeVector scales v to unit L2 norm in place and returns it.
// A zero vector is returned unchanged.
func NormalizeVector(v []float64) []float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] /= norm
	}
	return v
}
