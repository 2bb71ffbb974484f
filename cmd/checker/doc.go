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

// Package main implements the hacktoberfest-checker command-line interface.
// It lists a GitHub user's Hacktoberfest pull requests that satisfy the
// eligibility rules, either once from the command line or as an HTTP
// service.
//
// Usage:
//
//	hacktoberfest-checker check <username> [flags]
//	hacktoberfest-checker serve [flags]
//
// Example:
//
//	export GITHUB_TOKEN=your_token
//	hacktoberfest-checker check octocat --format json --summary
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Invalid username, unknown user, authentication or rate limit error
//   - 3: Network error
package main
