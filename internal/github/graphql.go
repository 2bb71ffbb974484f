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
	"strings"
	"time"

	"github.com/shurcooL/graphql"

	hfcerrors "github.com/sirseerhq/hacktoberfest-checker/internal/errors"
	"github.com/sirseerhq/hacktoberfest-checker/internal/giterror"
)

// GraphQLClient implements the GitHub Client interface using the GraphQL
// API. Each Client method maps to one GraphQL query.
type GraphQLClient struct {
	client    *graphql.Client
	inspector giterror.Inspector
}

// NewGraphQLClient creates a new GitHub GraphQL client with the provided
// token and endpoint (e.g. https://api.github.com/graphql). observer may be
// nil.
func NewGraphQLClient(token, endpoint string, observer CallObserver) *GraphQLClient {
	return &GraphQLClient{
		client:    graphql.NewClient(endpoint, newHTTPClient(token, observer)),
		inspector: giterror.NewInspector(),
	}
}

// SearchPullRequests implements Client with the search connection.
func (c *GraphQLClient) SearchPullRequests(ctx context.Context, query string, opts SearchOptions) (*SearchPage, error) {
	var q struct {
		Search struct {
			IssueCount graphql.Int
			PageInfo   struct {
				HasNextPage graphql.Boolean
			}
			Nodes []struct {
				PullRequest struct {
					Number    graphql.Int
					Title     graphql.String
					State     graphql.String
					CreatedAt time.Time
					URL       graphql.String
					Author    struct {
						Login graphql.String
						URL   graphql.String
					} `graphql:"author"`
					Repository struct {
						NameWithOwner graphql.String
					}
					Labels struct {
						Nodes []struct {
							Name graphql.String
						}
					} `graphql:"labels(first: 100)"`
				} `graphql:"... on PullRequest"`
			}
		} `graphql:"search(query: $query, type: ISSUE, first: $first)"`
	}

	variables := map[string]interface{}{
		"query": graphql.String(query + " sort:created-desc"),
		"first": graphql.Int(int32(effectivePageSize(opts.PageSize))), // #nosec G115 - capped at 100
	}

	if err := c.client.Query(ctx, &q, variables); err != nil {
		return nil, mapError(c.inspector, err, "searching pull requests", hfcerrors.ErrUserNotFound)
	}

	page := &SearchPage{
		TotalCount:  int(q.Search.IssueCount),
		HasNextPage: bool(q.Search.PageInfo.HasNextPage),
		Items:       make([]SearchItem, 0, len(q.Search.Nodes)),
	}

	for _, node := range q.Search.Nodes {
		pr := node.PullRequest
		if pr.Number == 0 {
			// Issues match the fragment with zero values.
			continue
		}

		owner, repo := splitFullName(string(pr.Repository.NameWithOwner))
		labels := make([]string, 0, len(pr.Labels.Nodes))
		for _, l := range pr.Labels.Nodes {
			labels = append(labels, string(l.Name))
		}

		page.Items = append(page.Items, SearchItem{
			Number:    int(pr.Number),
			Title:     string(pr.Title),
			State:     restState(string(pr.State)),
			CreatedAt: pr.CreatedAt.UTC(),
			Labels:    labels,
			URL:       string(pr.URL),
			Owner:     owner,
			Repo:      repo,
			Author: Author{
				Login: string(pr.Author.Login),
				URL:   string(pr.Author.URL),
			},
		})
	}

	return page, nil
}

// IsMerged implements Client with pullRequest.merged.
func (c *GraphQLClient) IsMerged(ctx context.Context, owner, repo string, number int) (bool, error) {
	var q struct {
		Repository struct {
			PullRequest struct {
				Merged graphql.Boolean
			} `graphql:"pullRequest(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $repo)"`
	}

	if err := c.client.Query(ctx, &q, pullRequestVariables(owner, repo, number)); err != nil {
		return false, mapError(c.inspector, err, fmt.Sprintf("checking merge status of %s/%s#%d", owner, repo, number), nil)
	}
	return bool(q.Repository.PullRequest.Merged), nil
}

// ListReviews implements Client with pullRequest.reviews.
func (c *GraphQLClient) ListReviews(ctx context.Context, owner, repo string, number int) ([]Review, error) {
	var q struct {
		Repository struct {
			PullRequest struct {
				Reviews struct {
					Nodes []struct {
						State  graphql.String
						Author struct {
							Login graphql.String
						}
					}
				} `graphql:"reviews(first: 100)"`
			} `graphql:"pullRequest(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $repo)"`
	}

	if err := c.client.Query(ctx, &q, pullRequestVariables(owner, repo, number)); err != nil {
		return nil, mapError(c.inspector, err, fmt.Sprintf("listing reviews of %s/%s#%d", owner, repo, number), nil)
	}

	reviews := make([]Review, 0, len(q.Repository.PullRequest.Reviews.Nodes))
	for _, n := range q.Repository.PullRequest.Reviews.Nodes {
		reviews = append(reviews, Review{
			State:  string(n.State),
			Author: string(n.Author.Login),
		})
	}
	return reviews, nil
}

// ListTopics implements Client with repository.repositoryTopics.
func (c *GraphQLClient) ListTopics(ctx context.Context, owner, repo string) ([]string, error) {
	var q struct {
		Repository struct {
			RepositoryTopics struct {
				Nodes []struct {
					Topic struct {
						Name graphql.String
					}
				}
			} `graphql:"repositoryTopics(first: 100)"`
		} `graphql:"repository(owner: $owner, name: $repo)"`
	}

	variables := map[string]interface{}{
		"owner": graphql.String(owner),
		"repo":  graphql.String(repo),
	}

	if err := c.client.Query(ctx, &q, variables); err != nil {
		return nil, mapError(c.inspector, err, fmt.Sprintf("listing topics of %s/%s", owner, repo), nil)
	}

	topics := make([]string, 0, len(q.Repository.RepositoryTopics.Nodes))
	for _, n := range q.Repository.RepositoryTopics.Nodes {
		topics = append(topics, string(n.Topic.Name))
	}
	return topics, nil
}

func pullRequestVariables(owner, repo string, number int) map[string]interface{} {
	return map[string]interface{}{
		"owner":  graphql.String(owner),
		"repo":   graphql.String(repo),
		"number": graphql.Int(int32(number)), // #nosec G115 - PR numbers fit in int32
	}
}

// restState maps GraphQL PullRequestState values onto the REST "open" /
// "closed" vocabulary; merged pull requests are closed in REST terms.
func restState(state string) string {
	if strings.EqualFold(state, "OPEN") {
		return "open"
	}
	return "closed"
}
