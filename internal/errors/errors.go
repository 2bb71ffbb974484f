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

// Package errors defines sentinel errors shared by the checker, the CLI and
// the HTTP server. The CLI maps them to exit codes and the server maps them
// to HTTP status codes.
package errors

import "errors"

var (
	// ErrInvalidUsername indicates the requested GitHub login is not a
	// syntactically valid username. No API call is made for such input.
	ErrInvalidUsername = errors.New("invalid github username")

	// ErrUserNotFound indicates GitHub refused to search the user's pull
	// requests, usually because the account does not exist.
	ErrUserNotFound = errors.New("github user not found")

	// ErrInvalidToken indicates GitHub authentication failed.
	ErrInvalidToken = errors.New("invalid github token")

	// ErrRateLimit indicates GitHub API rate limit has been exceeded.
	ErrRateLimit = errors.New("github rate limit exceeded")

	// ErrNetworkFailure indicates a network connection problem.
	ErrNetworkFailure = errors.New("network connection failed")
)
