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
	"net/url"
	"strings"
	"time"
)

// SearchItem is one pull request returned by the issue search, reduced to
// the fields the eligibility rules look at.
type SearchItem struct {
	Number    int
	Title     string
	State     string
	CreatedAt time.Time
	Labels    []string
	URL       string
	Owner     string
	Repo      string
	Author    Author
}

// FullName returns the repository in "owner/repo" form.
func (i SearchItem) FullName() string {
	if i.Owner == "" || i.Repo == "" {
		return ""
	}
	return i.Owner + "/" + i.Repo
}

// Author represents the author of a pull request.
type Author struct {
	Login string
	URL   string
}

// SearchPage is the first page of a search. HasNextPage is reported but
// never followed.
type SearchPage struct {
	Items       []SearchItem
	TotalCount  int
	HasNextPage bool
}

// SearchOptions configures a search request.
type SearchOptions struct {
	// PageSize controls how many items to fetch.
	// Defaults to 100 if not specified, which is also GitHub's maximum.
	PageSize int
}

// Review is a single pull request review.
type Review struct {
	State  string
	Author string
}

// ReviewStateApproved is the review state GitHub reports for approvals.
const ReviewStateApproved = "APPROVED"

const (
	defaultPageSize = 100
	maxPageSize     = 100
)

func effectivePageSize(size int) int {
	if size <= 0 {
		return defaultPageSize
	}
	if size > maxPageSize {
		return maxPageSize
	}
	return size
}

// splitRepository extracts owner and repository name from either an API
// repository URL (".../repos/owner/repo") or a pull request html URL
// ("https://github.com/owner/repo/pull/1").
func splitRepository(rawURL string) (owner, repo string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", ""
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")

	for i := 0; i+2 < len(parts); i++ {
		if parts[i] == "repos" {
			return parts[i+1], parts[i+2]
		}
	}
	for i := 0; i+2 < len(parts); i++ {
		if parts[i+2] == "pull" || parts[i+2] == "issues" {
			return parts[i], parts[i+1]
		}
	}
	return "", ""
}

// splitFullName splits "owner/repo".
func splitFullName(fullName string) (owner, repo string) {
	owner, repo, ok := strings.Cut(fullName, "/")
	if !ok {
		return "", ""
	}
	return owner, repo
}
