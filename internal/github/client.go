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

	hfcerrors "github.com/sirseerhq/hacktoberfest-checker/internal/errors"
	"github.com/sirseerhq/hacktoberfest-checker/internal/giterror"
)

// Client defines the interface for interacting with GitHub's API.
// This interface allows for easy mocking in tests.
type Client interface {
	// SearchPullRequests runs an issue search and returns its first page.
	// Only opts.PageSize is honoured; callers never request later pages.
	SearchPullRequests(ctx context.Context, query string, opts SearchOptions) (*SearchPage, error)

	// IsMerged reports whether the pull request has been merged.
	// The REST API answers 204 for merged and 404 for not merged.
	IsMerged(ctx context.Context, owner, repo string, number int) (bool, error)

	// ListReviews returns the reviews submitted on the pull request.
	ListReviews(ctx context.Context, owner, repo string, number int) ([]Review, error)

	// ListTopics returns the repository's topic names.
	ListTopics(ctx context.Context, owner, repo string) ([]string, error)
}

// mapError maps API errors to our domain errors with actionable messages.
// notFound is the sentinel to use for 404 and 422 answers, or nil to keep
// the raw error.
func mapError(inspector giterror.Inspector, err error, action string, notFound error) error {
	if err == nil {
		return nil
	}

	// The caller gave up; keep the context error so it is not reported as
	// a GitHub failure.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", action, err)
	}

	// Check rate limit first, as 403 can be both auth and rate limit
	if inspector.IsRateLimitError(err) {
		return fmt.Errorf("%s: GitHub API rate limit exceeded: %w", action, hfcerrors.ErrRateLimit)
	}

	if inspector.IsAuthError(err) {
		return fmt.Errorf("%s: GitHub API authentication failed, check the configured token: %w", action, hfcerrors.ErrInvalidToken)
	}

	if notFound != nil && (inspector.IsNotFoundError(err) || inspector.IsValidationError(err)) {
		return fmt.Errorf("%s: %w", action, notFound)
	}

	if inspector.IsNetworkError(err) {
		return fmt.Errorf("%s: network error connecting to GitHub API: %w", action, hfcerrors.ErrNetworkFailure)
	}

	return fmt.Errorf("%s: %w", action, err)
}
