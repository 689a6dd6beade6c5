// ABOUTME: OMDb API client for corpus discovery and detail fetches
// ABOUTME: Retries transient failures with exponential backoff, skips permanent ones
package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/moodreel/moodreel/internal/models"
	"github.com/moodreel/moodreel/internal/util"
)

// TransientError marks a failure worth retrying: rate limits, 5xx
// responses, or transport-level errors. The corpus builder skips the
// affected item once retries are exhausted instead of aborting the build.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("omdb %s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// IsTransient reports whether err is a retryable OMDb failure
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// SearchHit is one entry from an OMDb title search page
type SearchHit struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// ClientConfig holds configuration for the OMDb client
type ClientConfig struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// Client is a thin OMDb HTTP client with retry
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
}

// NewClient creates an OMDb client
func NewClient(cfg *ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 12 * time.Second
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://www.omdbapi.com/"
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}
}

// SearchTitles returns one page of title-search hits. OMDb's "no results"
// response is returned as an empty slice, not an error.
func (c *Client) SearchTitles(ctx context.Context, query string, page int, mediaType string) ([]SearchHit, error) {
	params := url.Values{}
	params.Set("s", query)
	params.Set("page", strconv.Itoa(page))
	if mediaType != "" {
		params.Set("type", mediaType)
	}

	var payload struct {
		Search   []SearchHit `json:"Search"`
		Response string      `json:"Response"`
		Error    string      `json:"Error"`
	}
	if err := c.getJSON(ctx, "search", params, &payload); err != nil {
		return nil, err
	}
	if payload.Response == "False" {
		return nil, nil
	}
	return payload.Search, nil
}

// GetByID fetches the full detail record for one IMDb id and parses it
// into a CorpusItem. A "Response":"False" payload yields (nil, nil).
func (c *Client) GetByID(ctx context.Context, imdbID string, fullPlot bool) (*models.CorpusItem, error) {
	params := url.Values{}
	params.Set("i", imdbID)
	if fullPlot {
		params.Set("plot", "full")
	} else {
		params.Set("plot", "short")
	}

	var payload detailPayload
	if err := c.getJSON(ctx, "detail", params, &payload); err != nil {
		return nil, err
	}
	if payload.Response == "False" {
		return nil, nil
	}
	item := payload.toCorpusItem()
	return &item, nil
}

// getJSON performs one GET with bounded retries on transient failures
func (c *Client) getJSON(ctx context.Context, op string, params url.Values, out interface{}) error {
	params.Set("apikey", c.apiKey)
	reqURL := c.baseURL + "?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(util.CalculateBackoff(c.retryDelay, attempt)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return fmt.Errorf("building omdb request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = &TransientError{Op: op, Err: err}
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = &TransientError{Op: op, Err: fmt.Errorf("status %d", resp.StatusCode)}
			continue
		case resp.StatusCode != http.StatusOK:
			return fmt.Errorf("omdb %s: unexpected status %d", op, resp.StatusCode)
		}

		if readErr != nil {
			lastErr = &TransientError{Op: op, Err: readErr}
			continue
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("omdb %s: decoding response: %w", op, err)
		}
		return nil
	}
	return lastErr
}
