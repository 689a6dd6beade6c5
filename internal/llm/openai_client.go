// ABOUTME: OpenAI-backed text encoder using the embeddings API
// ABOUTME: Uses text-embedding-3-small by default with retry and L2 normalization
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/moodreel/moodreel/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultEmbeddingModel is the encoder used for corpus and query text
const DefaultEmbeddingModel = openai.SmallEmbedding3

// EmbeddingModel aliases the OpenAI model identifier so callers outside
// this package never import the SDK directly
type EmbeddingModel = openai.EmbeddingModel

// ClientConfig holds configuration for the OpenAI encoder
type ClientConfig struct {
	APIKey         string
	EmbeddingModel openai.EmbeddingModel
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// DefaultConfig returns the default encoder configuration
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:         apiKey,
		EmbeddingModel: DefaultEmbeddingModel,
		Timeout:        30 * time.Second,
		MaxRetries:     3,
		RetryDelay:     2 * time.Second,
	}
}

// OpenAIEncoder wraps the OpenAI API client with retry logic
type OpenAIEncoder struct {
	client     *openai.Client
	model      openai.EmbeddingModel
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
}

// NewOpenAIEncoder creates an encoder with default configuration
func NewOpenAIEncoder(apiKey string) (*OpenAIEncoder, error) {
	return NewOpenAIEncoderWithConfig(DefaultConfig(apiKey))
}

// NewOpenAIEncoderWithConfig creates an encoder with custom configuration
func NewOpenAIEncoderWithConfig(config *ClientConfig) (*OpenAIEncoder, error) {
	if config.APIKey == "" {
		return nil, ErrEncoderUnavailable
	}
	model := config.EmbeddingModel
	if model == "" {
		model = DefaultEmbeddingModel
	}
	return &OpenAIEncoder{
		client:     openai.NewClient(config.APIKey),
		model:      model,
		timeout:    config.Timeout,
		maxRetries: config.MaxRetries,
		retryDelay: config.RetryDelay,
	}, nil
}

// EmbedText encodes a single query string
func (e *OpenAIEncoder) EmbedText(ctx context.Context, text string) ([]float64, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch encodes a batch of texts in one API request. Results are
// L2-normalized and aligned with the input order.
func (e *OpenAIEncoder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var lastErr error
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(util.CalculateBackoff(e.retryDelay, attempt)):
			}
		}

		reqCtx, cancel := context.WithTimeout(ctx, e.timeout)
		resp, err := e.client.CreateEmbeddings(reqCtx, openai.EmbeddingRequestStrings{
			Input: texts,
			Model: e.model,
		})
		cancel()

		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Data) != len(texts) {
			lastErr = fmt.Errorf("attempt %d: got %d embeddings for %d texts", attempt+1, len(resp.Data), len(texts))
			continue
		}

		vectors := make([][]float64, len(texts))
		for _, d := range resp.Data {
			vec := make([]float64, len(d.Embedding))
			for i, v := range d.Embedding {
				vec[i] = float64(v)
			}
			vectors[d.Index] = NormalizeVector(vec)
		}
		return vectors, nil
	}

	return nil, fmt.Errorf("%w: embedding request failed after %d attempts: %v",
		ErrEncoderUnavailable, e.maxRetries+1, lastErr)
}
