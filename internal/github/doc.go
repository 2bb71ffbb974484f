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

// Package github provides the GitHub API access needed to evaluate a user's
// Hacktoberfest pull requests: one issue search plus per-PR merge, review
// and repository topic lookups.
//
// The package includes:
//   - A Client interface covering the four calls the checker makes
//   - A REST implementation built on google/go-github
//   - A GraphQL implementation using the shurcooL/graphql library
//   - A retrying decorator for transient failures
//   - Mock client for testing
//
// Basic usage:
//
//	client, err := github.NewRESTClient("your-github-token", "https://api.github.com", nil)
//	if err != nil {
//	    // Handle error
//	}
//	query := github.BuildSearchQuery("octocat", start, end)
//	page, err := client.SearchPullRequests(ctx, query, github.SearchOptions{PageSize: 100})
//	for _, item := range page.Items {
//	    merged, err := client.IsMerged(ctx, item.Owner, item.Repo, item.Number)
//	    // ...
//	}
package github
