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
	"net/url"
	"strings"

	gh "github.com/google/go-github/v60/github"

	hfcerrors "github.com/sirseerhq/hacktoberfest-checker/internal/errors"
	"github.com/sirseerhq/hacktoberfest-checker/internal/giterror"
	"github.com/sirseerhq/hacktoberfest-checker/pkg/version"
)

// RESTClient implements the Client interface on top of GitHub's REST v3
// API using google/go-github.
type RESTClient struct {
	client    *gh.Client
	inspector giterror.Inspector
}

// NewRESTClient creates a REST client for the given API endpoint, e.g.
// https://api.github.com or https://ghe.example.com/api/v3. observer may be
// nil.
func NewRESTClient(token, endpoint string, observer CallObserver) (*RESTClient, error) {
	client := gh.NewClient(newHTTPClient(token, observer))
	client.UserAgent = "hacktoberfest-checker/" + version.Version

	if endpoint != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(endpoint, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API endpoint %q: %w", endpoint, err)
		}
		client.BaseURL = baseURL
	}

	return &RESTClient{
		client:    client,
		inspector: giterror.NewInspector(),
	}, nil
}

// SearchPullRequests implements Client using GET /search/issues.
func (c *RESTClient) SearchPullRequests(ctx context.Context, query string, opts SearchOptions) (*SearchPage, error) {
	result, resp, err := c.client.Search.Issues(ctx, query, &gh.SearchOptions{
		Sort:  "created",
		Order: "desc",
		ListOptions: gh.ListOptions{
			PerPage: effectivePageSize(opts.PageSize),
		},
	})
	if err != nil {
		return nil, mapError(c.inspector, err, "searching pull requests", hfcerrors.ErrUserNotFound)
	}

	page := &SearchPage{
		TotalCount:  result.GetTotal(),
		HasNextPage: resp != nil && resp.NextPage != 0,
		Items:       make([]SearchItem, 0, len(result.Issues)),
	}

	for _, issue := range result.Issues {
		page.Items = append(page.Items, convertIssue(issue))
	}

	return page, nil
}

// IsMerged implements Client using GET /repos/{owner}/{repo}/pulls/{n}/merge.
func (c *RESTClient) IsMerged(ctx context.Context, owner, repo string, number int) (bool, error) {
	merged, _, err := c.client.PullRequests.IsMerged(ctx, owner, repo, number)
	if err != nil {
		return false, mapError(c.inspector, err, fmt.Sprintf("checking merge status of %s/%s#%d", owner, repo, number), nil)
	}
	return merged, nil
}

// ListReviews implements Client using GET /repos/{owner}/{repo}/pulls/{n}/reviews.
func (c *RESTClient) ListReviews(ctx context.Context, owner, repo string, number int) ([]Review, error) {
	reviews, _, err := c.client.PullRequests.ListReviews(ctx, owner, repo, number, &gh.ListOptions{PerPage: maxPageSize})
	if err != nil {
		return nil, mapError(c.inspector, err, fmt.Sprintf("listing reviews of %s/%s#%d", owner, repo, number), nil)
	}

	out := make([]Review, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, Review{
			State:  r.GetState(),
			Author: r.GetUser().GetLogin(),
		})
	}
	return out, nil
}

// ListTopics implements Client using GET /repos/{owner}/{repo}/topics.
func (c *RESTClient) ListTopics(ctx context.Context, owner, repo string) ([]string, error) {
	topics, _, err := c.client.Repositories.ListAllTopics(ctx, owner, repo)
	if err != nil {
		return nil, mapError(c.inspector, err, fmt.Sprintf("listing topics of %s/%s", owner, repo), nil)
	}
	return topics, nil
}

func convertIssue(issue *gh.Issue) SearchItem {
	owner, repo := splitRepository(issue.GetRepositoryURL())
	if owner == "" {
		owner, repo = splitRepository(issue.GetHTMLURL())
	}

	labels := make([]string, 0, len(issue.Labels))
	for _, l := range issue.Labels {
		labels = append(labels, l.GetName())
	}

	return SearchItem{
		Number:    issue.GetNumber(),
		Title:     issue.GetTitle(),
		State:     issue.GetState(),
		CreatedAt: issue.GetCreatedAt().Time.UTC(),
		Labels:    labels,
		URL:       issue.GetHTMLURL(),
		Owner:     owner,
		Repo:      repo,
		Author: Author{
			Login: issue.GetUser().GetLogin(),
			URL:   issue.GetUser().GetHTMLURL(),
		},
	}
}
