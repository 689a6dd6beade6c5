// ABOUTME: Retry utilities for external API calls with exponential backoff
// ABOUTME: Shared by the OMDb client and the embedding encoder
package util

import (
	"math/rand/v2"
	"time"
)

// maxBackoff caps a single sleep so a long retry chain stays responsive
const maxBackoff = 30 * time.Second

// CalculateBackoff returns exponential backoff with jitter.
// Base delay doubles each attempt, with ±25% random jitter so concurrent
// retries against a rate-limited API do not re-synchronize.
func CalculateBackoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	// Cap the shift to avoid overflow for pathological attempt counts
	if attempt > 30 {
		attempt = 30
	}
	backoff := baseDelay * time.Duration(1<<uint(attempt))
	if backoff > maxBackoff {
		backoff = maxBackoff
	}
	jitter := time.Duration(rand.Int64N(int64(backoff)/2)) - backoff/4
	return backoff + jitter
}
