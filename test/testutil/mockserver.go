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

// Package testutil provides common test helpers for hacktoberfest-checker,
// chiefly a fake of the GitHub REST endpoints the checker calls.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
)

// PRFixture describes one pull request served by GitHubServer: the search
// item plus the answers to its merge, review and topic lookups.
type PRFixture struct {
	Number    int
	Title     string
	CreatedAt string
	State     string
	Labels    []string
	Owner     string
	Repo      string
	Author    string
	Merged    bool
	Approved  bool
}

// GitHubServer fakes the subset of the GitHub REST API used by the checker:
//
//	GET /search/issues
//	GET /repos/{owner}/{repo}/pulls/{number}/merge
//	GET /repos/{owner}/{repo}/pulls/{number}/reviews
//	GET /repos/{owner}/{repo}/topics
type GitHubServer struct {
	*httptest.Server

	mu          sync.Mutex
	prs         []PRFixture
	topics      map[string][]string
	hasNextPage bool

	// SearchStatus forces GET /search/issues to fail with this status.
	SearchStatus int
	// RateLimited makes every endpoint answer 403 with an exhausted quota.
	RateLimited bool
	// RateRemaining is reported in X-RateLimit-Remaining.
	RateRemaining int

	requestCount int32
	lastQuery    atomic.Value
}

// NewGitHubServer starts a fake GitHub API. It is closed with the test.
func NewGitHubServer(t *testing.T) *GitHubServer {
	t.Helper()

	s := &GitHubServer{
		topics:        make(map[string][]string),
		RateRemaining: 4999,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /search/issues", s.handleSearch)
	mux.HandleFunc("GET /repos/{owner}/{repo}/pulls/{number}/merge", s.handleMerged)
	mux.HandleFunc("GET /repos/{owner}/{repo}/pulls/{number}/reviews", s.handleReviews)
	mux.HandleFunc("GET /repos/{owner}/{repo}/topics", s.handleTopics)

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.requestCount, 1)

		s.mu.Lock()
		limited, remaining := s.RateLimited, s.RateRemaining
		s.mu.Unlock()

		if limited {
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("X-RateLimit-Limit", "5000")
			w.Header().Set("X-RateLimit-Reset", "1700000000")
			writeJSON(w, http.StatusForbidden, map[string]interface{}{
				"message": "API rate limit exceeded",
			})
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(s.Close)

	return s
}

// AddPR registers a pull request fixture.
func (s *GitHubServer) AddPR(pr PRFixture) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pr.State == "" {
		pr.State = "open"
	}
	if pr.Author == "" {
		pr.Author = "octocat"
	}
	s.prs = append(s.prs, pr)
}

// SetTopics sets the topics of owner/repo.
func (s *GitHubServer) SetTopics(owner, repo string, topics ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics[owner+"/"+repo] = topics
}

// SetHasNextPage makes the search advertise a second page via the Link header.
func (s *GitHubServer) SetHasNextPage(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasNextPage = v
}

// RequestCount returns the number of requests served.
func (s *GitHubServer) RequestCount() int {
	return int(atomic.LoadInt32(&s.requestCount))
}

// LastSearchQuery returns the q parameter of the most recent search.
func (s *GitHubServer) LastSearchQuery() string {
	q, _ := s.lastQuery.Load().(string)
	return q
}

func (s *GitHubServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.lastQuery.Store(r.URL.Query().Get("q"))

	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.SearchStatus {
	case 0:
	case http.StatusUnprocessableEntity:
		writeJSON(w, s.SearchStatus, map[string]interface{}{
			"message": "Validation Failed",
			"errors": []map[string]interface{}{{
				"message":  "The listed users and repositories cannot be searched either because the resources do not exist or you do not have permission to view them.",
				"resource": "Search",
				"field":    "q",
				"code":     "invalid",
			}},
		})
		return
	default:
		writeJSON(w, s.SearchStatus, map[string]interface{}{"message": http.StatusText(s.SearchStatus)})
		return
	}

	items := make([]map[string]interface{}, 0, len(s.prs))
	for _, pr := range s.prs {
		items = append(items, s.issueJSON(pr))
	}

	if s.hasNextPage {
		next := fmt.Sprintf("%s/search/issues?page=2", s.URL)
		w.Header().Set("Link", fmt.Sprintf(`<%s>; rel="next", <%s>; rel="last"`, next, next))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_count":        len(items),
		"incomplete_results": false,
		"items":              items,
	})
}

func (s *GitHubServer) issueJSON(pr PRFixture) map[string]interface{} {
	labels := make([]map[string]interface{}, 0, len(pr.Labels))
	for _, l := range pr.Labels {
		labels = append(labels, map[string]interface{}{"name": l})
	}
	htmlURL := fmt.Sprintf("https://github.com/%s/%s/pull/%d", pr.Owner, pr.Repo, pr.Number)

	return map[string]interface{}{
		"number":         pr.Number,
		"title":          pr.Title,
		"state":          pr.State,
		"created_at":     pr.CreatedAt,
		"labels":         labels,
		"html_url":       htmlURL,
		"repository_url": fmt.Sprintf("%s/repos/%s/%s", s.URL, pr.Owner, pr.Repo),
		"pull_request":   map[string]interface{}{"html_url": htmlURL},
		"user": map[string]interface{}{
			"login":    pr.Author,
			"html_url": "https://github.com/" + pr.Author,
		},
	}
}

func (s *GitHubServer) find(r *http.Request) (PRFixture, bool) {
	number, err := strconv.Atoi(r.PathValue("number"))
	if err != nil {
		return PRFixture{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, pr := range s.prs {
		if pr.Owner == r.PathValue("owner") && pr.Repo == r.PathValue("repo") && pr.Number == number {
			return pr, true
		}
	}
	return PRFixture{}, false
}

func (s *GitHubServer) handleMerged(w http.ResponseWriter, r *http.Request) {
	pr, ok := s.find(r)
	if ok && pr.Merged {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]interface{}{"message": "Not Found"})
}

func (s *GitHubServer) handleReviews(w http.ResponseWriter, r *http.Request) {
	pr, ok := s.find(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{"message": "Not Found"})
		return
	}

	reviews := []map[string]interface{}{}
	if pr.Approved {
		reviews = append(reviews, map[string]interface{}{
			"id":    1,
			"state": "APPROVED",
			"user":  map[string]interface{}{"login": "maintainer"},
		})
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (s *GitHubServer) handleTopics(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	topics, ok := s.topics[r.PathValue("owner")+"/"+r.PathValue("repo")]
	s.mu.Unlock()

	if !ok {
		topics = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"names": topics})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
