// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package github

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	hfcerrors "github.com/sirseerhq/hacktoberfest-checker/internal/errors"
	"github.com/sirseerhq/hacktoberfest-checker/internal/giterror"
)

// RetryConfig configures the retry behavior for API calls
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts
	MaxRetries int
	// InitialBackoff is the initial backoff duration
	InitialBackoff time.Duration
	// MaxBackoff is the maximum backoff duration
	MaxBackoff time.Duration
	// BackoffMultiplier is the multiplier for exponential backoff
	BackoffMultiplier float64
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:        3,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// RetryClient wraps a GitHub client with retry logic for transient network
// errors using exponential backoff. Rate limit errors are returned as is.
type RetryClient struct {
	client    Client
	config    *RetryConfig
	inspector giterror.Inspector
	log       *zap.SugaredLogger
}

// NewRetryClient creates a new RetryClient with the given configuration.
// A nil config uses DefaultRetryConfig and a nil logger discards output.
func NewRetryClient(client Client, config *RetryConfig, log *zap.SugaredLogger) Client {
	if config == nil {
		config = DefaultRetryConfig()
	}
	if config.BackoffMultiplier <= 0 {
		config.BackoffMultiplier = 2.0
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &RetryClient{
		client:    client,
		config:    config,
		inspector: giterror.NewInspector(),
		log:       log,
	}
}

// SearchPullRequests implements the Client interface with retry logic
func (r *RetryClient) SearchPullRequests(ctx context.Context, query string, opts SearchOptions) (*SearchPage, error) {
	return withRetry(ctx, r, "search", func() (*SearchPage, error) {
		return r.client.SearchPullRequests(ctx, query, opts)
	})
}

// IsMerged implements the Client interface with retry logic
func (r *RetryClient) IsMerged(ctx context.Context, owner, repo string, number int) (bool, error) {
	return withRetry(ctx, r, "merged", func() (bool, error) {
		return r.client.IsMerged(ctx, owner, repo, number)
	})
}

// ListReviews implements the Client interface with retry logic
func (r *RetryClient) ListReviews(ctx context.Context, owner, repo string, number int) ([]Review, error) {
	return withRetry(ctx, r, "reviews", func() ([]Review, error) {
		return r.client.ListReviews(ctx, owner, repo, number)
	})
}

// ListTopics implements the Client interface with retry logic
func (r *RetryClient) ListTopics(ctx context.Context, owner, repo string) ([]string, error) {
	return withRetry(ctx, r, "topics", func() ([]string, error) {
		return r.client.ListTopics(ctx, owner, repo)
	})
}

func withRetry[T any](ctx context.Context, r *RetryClient, call string, fn func() (T, error)) (T, error) {
	var (
		zero    T
		lastErr error
	)

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !r.shouldRetry(err) {
			return zero, err
		}

		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		if attempt == r.config.MaxRetries {
			break
		}

		backoff := r.calculateBackoff(attempt)
		r.log.Warnw("transient GitHub error, retrying",
			"call", call,
			"attempt", attempt+1,
			"max_retries", r.config.MaxRetries,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}

	return zero, fmt.Errorf("failed after %d retries: %w", r.config.MaxRetries, lastErr)
}

// shouldRetry determines if an error is retryable
func (r *RetryClient) shouldRetry(err error) bool {
	if errors.Is(err, hfcerrors.ErrRateLimit) || r.inspector.IsRateLimitError(err) {
		return false
	}
	if errors.Is(err, hfcerrors.ErrNetworkFailure) {
		return true
	}
	return r.inspector.IsNetworkError(err)
}

// calculateBackoff calculates the backoff duration for the given attempt
func (r *RetryClient) calculateBackoff(attempt int) time.Duration {
	backoff := float64(r.config.InitialBackoff) * math.Pow(r.config.BackoffMultiplier, float64(attempt))

	if r.config.MaxBackoff > 0 && backoff > float64(r.config.MaxBackoff) {
		backoff = float64(r.config.MaxBackoff)
	}

	// ±10% jitter
	jitter := backoff * 0.1 * (2*rand.Float64() - 1)
	return time.Duration(backoff + jitter)
}
