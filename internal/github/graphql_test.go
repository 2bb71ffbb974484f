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
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	hfcerrors "github.com/sirseerhq/hacktoberfest-checker/internal/errors"
)

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// newGraphQLServer answers every request with respond(req), wrapped in a
// {"data": ...} envelope.
func newGraphQLServer(t *testing.T, respond func(t *testing.T, req graphQLRequest) interface{}) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var req graphQLRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-RateLimit-Remaining", "4321")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": respond(t, req)})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGraphQLClient_SearchPullRequests(t *testing.T) {
	srv := newGraphQLServer(t, func(t *testing.T, req graphQLRequest) interface{} {
		if !strings.Contains(req.Query, "search(query: $query, type: ISSUE, first: $first)") {
			t.Errorf("unexpected query: %s", req.Query)
		}
		if q, _ := req.Variables["query"].(string); q != "author:octocat is:pr sort:created-desc" {
			t.Errorf("query variable = %q", q)
		}
		if first, _ := req.Variables["first"].(float64); first != 100 {
			t.Errorf("first variable = %v, want 100", first)
		}

		return map[string]interface{}{
			"search": map[string]interface{}{
				"issueCount": 3,
				"pageInfo":   map[string]interface{}{"hasNextPage": true},
				"nodes": []interface{}{
					map[string]interface{}{
						"number":     5,
						"title":      "Improve docs",
						"state":      "MERGED",
						"createdAt":  "2020-10-06T10:00:00Z",
						"url":        "https://github.com/acme/widgets/pull/5",
						"author":     map[string]interface{}{"login": "octocat", "url": "https://github.com/octocat"},
						"repository": map[string]interface{}{"nameWithOwner": "acme/widgets"},
						"labels": map[string]interface{}{
							"nodes": []interface{}{map[string]interface{}{"name": "hacktoberfest-accepted"}},
						},
					},
					// An issue node matches none of the PullRequest fields.
					map[string]interface{}{},
					map[string]interface{}{
						"number":     9,
						"title":      "Draft",
						"state":      "OPEN",
						"createdAt":  "2020-10-01T00:00:00Z",
						"url":        "https://github.com/acme/gadgets/pull/9",
						"author":     map[string]interface{}{"login": "octocat", "url": "https://github.com/octocat"},
						"repository": map[string]interface{}{"nameWithOwner": "acme/gadgets"},
						"labels":     map[string]interface{}{"nodes": []interface{}{}},
					},
				},
			},
		}
	})

	observer := &recordingObserver{}
	client := NewGraphQLClient("token", srv.URL, observer)

	page, err := client.SearchPullRequests(context.Background(), "author:octocat is:pr", SearchOptions{})
	if err != nil {
		t.Fatalf("SearchPullRequests() error = %v", err)
	}

	if !page.HasNextPage {
		t.Error("HasNextPage = false, want true")
	}
	if page.TotalCount != 3 {
		t.Errorf("TotalCount = %d, want 3", page.TotalCount)
	}
	if len(page.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(page.Items))
	}

	first := page.Items[0]
	if first.Number != 5 || first.State != "closed" || first.FullName() != "acme/widgets" {
		t.Errorf("unexpected first item: %+v", first)
	}
	if !first.CreatedAt.Equal(time.Date(2020, 10, 6, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("CreatedAt = %s", first.CreatedAt)
	}
	if len(first.Labels) != 1 || first.Labels[0] != "hacktoberfest-accepted" {
		t.Errorf("Labels = %v", first.Labels)
	}
	if page.Items[1].State != "open" || page.Items[1].Repo != "gadgets" {
		t.Errorf("unexpected second item: %+v", page.Items[1])
	}

	if observer.calls != 1 || observer.remaining[0] != 4321 {
		t.Errorf("observer saw %d calls, remaining %v", observer.calls, observer.remaining)
	}
}

func TestGraphQLClient_Lookups(t *testing.T) {
	srv := newGraphQLServer(t, func(t *testing.T, req graphQLRequest) interface{} {
		if owner, _ := req.Variables["owner"].(string); owner != "acme" {
			t.Errorf("owner variable = %q", owner)
		}

		switch {
		case strings.Contains(req.Query, "merged"):
			return map[string]interface{}{
				"repository": map[string]interface{}{
					"pullRequest": map[string]interface{}{"merged": true},
				},
			}
		case strings.Contains(req.Query, "reviews(first: 100)"):
			return map[string]interface{}{
				"repository": map[string]interface{}{
					"pullRequest": map[string]interface{}{
						"reviews": map[string]interface{}{
							"nodes": []interface{}{
								map[string]interface{}{"state": "COMMENTED", "author": map[string]interface{}{"login": "a"}},
								map[string]interface{}{"state": "APPROVED", "author": map[string]interface{}{"login": "b"}},
							},
						},
					},
				},
			}
		case strings.Contains(req.Query, "repositoryTopics(first: 100)"):
			return map[string]interface{}{
				"repository": map[string]interface{}{
					"repositoryTopics": map[string]interface{}{
						"nodes": []interface{}{
							map[string]interface{}{"topic": map[string]interface{}{"name": "hacktoberfest"}},
						},
					},
				},
			}
		}
		t.Errorf("unexpected query: %s", req.Query)
		return nil
	})

	client := NewGraphQLClient("token", srv.URL, nil)
	ctx := context.Background()

	merged, err := client.IsMerged(ctx, "acme", "widgets", 5)
	if err != nil || !merged {
		t.Errorf("IsMerged() = %v, %v, want true", merged, err)
	}

	reviews, err := client.ListReviews(ctx, "acme", "widgets", 5)
	if err != nil {
		t.Fatalf("ListReviews() error = %v", err)
	}
	if len(reviews) != 2 || reviews[1].State != ReviewStateApproved || reviews[1].Author != "b" {
		t.Errorf("ListReviews() = %+v", reviews)
	}

	topics, err := client.ListTopics(ctx, "acme", "widgets")
	if err != nil || len(topics) != 1 || topics[0] != "hacktoberfest" {
		t.Errorf("ListTopics() = %v, %v", topics, err)
	}
}

func TestGraphQLClient_ErrorHandling(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantErr    error
	}{
		{
			name:       "unauthorized",
			statusCode: http.StatusUnauthorized,
			body:       `{"message":"Bad credentials"}`,
			wantErr:    hfcerrors.ErrInvalidToken,
		},
		{
			name:       "rate limited",
			statusCode: http.StatusOK,
			body:       `{"errors":[{"type":"RATE_LIMITED","message":"API rate limit exceeded for user ID 1."}]}`,
			wantErr:    hfcerrors.ErrRateLimit,
		},
		{
			name:       "gateway timeout",
			statusCode: http.StatusOK,
			body:       `{"errors":[{"message":"timeout while resolving the query"}]}`,
			wantErr:    hfcerrors.ErrNetworkFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewGraphQLClient("token", srv.URL, nil)
			_, err := client.ListTopics(context.Background(), "acme", "widgets")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ListTopics() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRestState(t *testing.T) {
	tests := map[string]string{
		"OPEN":   "open",
		"open":   "open",
		"CLOSED": "closed",
		"MERGED": "closed",
	}
	for in, want := range tests {
		if got := restState(in); got != want {
			t.Errorf("restState(%q) = %q, want %q", in, got, want)
		}
	}
}
