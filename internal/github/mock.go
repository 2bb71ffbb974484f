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
	"fmt"
	"sync"
	"time"

	hfcerrors "github.com/sirseerhq/hacktoberfest-checker/internal/errors"
)

// MockClient is a mock implementation of the GitHub Client interface for
// testing. It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Search results to return
	Items       []SearchItem
	HasNextPage bool

	// Lookup fixtures keyed by PRKey / "owner/repo"
	Merged  map[string]bool
	Reviews map[string][]Review
	Topics  map[string][]string

	// Errors to return per call
	SearchError  error
	MergedError  error
	ReviewsError error
	TopicsError  error

	// Behavior flags
	ShouldFailAuth    bool
	ShouldFailNetwork bool

	// Track calls for verification
	SearchCalls  int
	MergedCalls  int
	ReviewsCalls int
	TopicsCalls  int
	LastQuery    string
	LastOpts     SearchOptions
}

// PRKey returns the fixture key used for per pull request lookups.
func PRKey(owner, repo string, number int) string {
	return fmt.Sprintf("%s/%s#%d", owner, repo, number)
}

// NewMockClient creates a new mock client with default test data
func NewMockClient() *MockClient {
	return &MockClient{
		Items:   generateTestItems(),
		Merged:  make(map[string]bool),
		Reviews: make(map[string][]Review),
		Topics:  make(map[string][]string),
	}
}

func (m *MockClient) fail(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if m.ShouldFailAuth {
		return fmt.Errorf("authentication failed: %w", hfcerrors.ErrInvalidToken)
	}
	if m.ShouldFailNetwork {
		return fmt.Errorf("network timeout: %w", hfcerrors.ErrNetworkFailure)
	}
	return nil
}

// SearchPullRequests implements the Client interface
func (m *MockClient) SearchPullRequests(ctx context.Context, query string, opts SearchOptions) (*SearchPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SearchCalls++
	m.LastQuery = query
	m.LastOpts = opts

	if err := m.fail(ctx); err != nil {
		return nil, err
	}
	if m.SearchError != nil {
		return nil, m.SearchError
	}

	items := make([]SearchItem, len(m.Items))
	copy(items, m.Items)

	return &SearchPage{
		Items:       items,
		TotalCount:  len(items),
		HasNextPage: m.HasNextPage,
	}, nil
}

// IsMerged implements the Client interface
func (m *MockClient) IsMerged(ctx context.Context, owner, repo string, number int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.MergedCalls++
	if err := m.fail(ctx); err != nil {
		return false, err
	}
	if m.MergedError != nil {
		return false, m.MergedError
	}
	return m.Merged[PRKey(owner, repo, number)], nil
}

// ListReviews implements the Client interface
func (m *MockClient) ListReviews(ctx context.Context, owner, repo string, number int) ([]Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ReviewsCalls++
	if err := m.fail(ctx); err != nil {
		return nil, err
	}
	if m.ReviewsError != nil {
		return nil, m.ReviewsError
	}
	return m.Reviews[PRKey(owner, repo, number)], nil
}

// ListTopics implements the Client interface
func (m *MockClient) ListTopics(ctx context.Context, owner, repo string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TopicsCalls++
	if err := m.fail(ctx); err != nil {
		return nil, err
	}
	if m.TopicsError != nil {
		return nil, m.TopicsError
	}
	return m.Topics[owner+"/"+repo], nil
}

// generateTestItems creates sample search data for testing
func generateTestItems() []SearchItem {
	now := time.Now().UTC()

	return []SearchItem{
		{
			Number:    1234,
			Title:     "Add new feature for data processing",
			State:     "open",
			CreatedAt: now.Add(-7 * 24 * time.Hour),
			URL:       "https://github.com/alice/tool/pull/1234",
			Owner:     "alice",
			Repo:      "tool",
			Author:    Author{Login: "octocat", URL: "https://github.com/octocat"},
		},
		{
			Number:    42,
			Title:     "Fix typo in README",
			State:     "closed",
			CreatedAt: now.Add(-24 * time.Hour),
			Labels:    []string{"hacktoberfest-accepted"},
			URL:       "https://github.com/bob/docs/pull/42",
			Owner:     "bob",
			Repo:      "docs",
			Author:    Author{Login: "octocat", URL: "https://github.com/octocat"},
		},
	}
}

// MockClientOption allows configuring the mock client
type MockClientOption func(*MockClient)

// WithItems sets specific search items to return
func WithItems(items ...SearchItem) MockClientOption {
	return func(m *MockClient) {
		m.Items = items
	}
}

// WithMerged marks a pull request as merged
func WithMerged(owner, repo string, number int) MockClientOption {
	return func(m *MockClient) {
		m.Merged[PRKey(owner, repo, number)] = true
	}
}

// WithReviews sets the reviews of a pull request
func WithReviews(owner, repo string, number int, reviews ...Review) MockClientOption {
	return func(m *MockClient) {
		m.Reviews[PRKey(owner, repo, number)] = reviews
	}
}

// WithTopics sets a repository's topics
func WithTopics(owner, repo string, topics ...string) MockClientOption {
	return func(m *MockClient) {
		m.Topics[owner+"/"+repo] = topics
	}
}

// WithAuthFailure makes the client simulate authentication failure
func WithAuthFailure() MockClientOption {
	return func(m *MockClient) {
		m.ShouldFailAuth = true
	}
}

// NewMockClientWithOptions creates a mock client with options
func NewMockClientWithOptions(opts ...MockClientOption) *MockClient {
	mock := NewMockClient()
	for _, opt := range opts {
		opt(mock)
	}
	return mock
}
