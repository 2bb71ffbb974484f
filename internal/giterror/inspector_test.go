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

package giterror

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	gh "github.com/google/go-github/v60/github"
)

func newResponse(code int) *http.Response {
	u, _ := url.Parse("https://api.github.com/search/issues")
	return &http.Response{
		StatusCode: code,
		Request:    &http.Request{Method: http.MethodGet, URL: u},
	}
}

func responseErr(code int, msg string) error {
	return &gh.ErrorResponse{Response: newResponse(code), Message: msg}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "error response", err: responseErr(422, "Validation Failed"), want: 422},
		{name: "wrapped error response", err: fmt.Errorf("search: %w", responseErr(404, "Not Found")), want: 404},
		{name: "rate limit error", err: &gh.RateLimitError{Response: newResponse(403), Message: "API rate limit exceeded"}, want: 403},
		{name: "plain error", err: errors.New("boom"), want: 0},
		{name: "nil error", err: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusCode(tt.err); got != tt.want {
				t.Errorf("StatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGitHubErrorInspector_IsAuthError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "401 error response",
			err:  responseErr(http.StatusUnauthorized, "Bad credentials"),
			want: true,
		},
		{
			name: "403 error response",
			err:  responseErr(http.StatusForbidden, "Resource not accessible by integration"),
			want: true,
		},
		{
			name: "403 rate limit is not auth",
			err:  &gh.RateLimitError{Response: newResponse(http.StatusForbidden), Message: "API rate limit exceeded"},
			want: false,
		},
		{
			name: "graphql style message",
			err:  errors.New("non-200 OK status code: 401 Unauthorized body: \"Bad credentials\""),
			want: true,
		},
		{
			name: "404 error response",
			err:  responseErr(http.StatusNotFound, "Not Found"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsAuthError(tt.err); got != tt.want {
				t.Errorf("IsAuthError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGitHubErrorInspector_IsNotFoundError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "404 error response", err: responseErr(http.StatusNotFound, "Not Found"), want: true},
		{name: "graphql could not resolve", err: errors.New("Could not resolve to a Repository with the name 'x/y'."), want: true},
		{name: "422 error response", err: responseErr(http.StatusUnprocessableEntity, "Validation Failed"), want: false},
		{name: "nil error", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsNotFoundError(tt.err); got != tt.want {
				t.Errorf("IsNotFoundError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGitHubErrorInspector_IsValidationError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "422 error response", err: responseErr(http.StatusUnprocessableEntity, "Validation Failed"), want: true},
		{name: "search message", err: errors.New("The listed users cannot be searched"), want: true},
		{name: "500 error response", err: responseErr(http.StatusInternalServerError, "oops"), want: false},
		{name: "nil error", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsValidationError(tt.err); got != tt.want {
				t.Errorf("IsValidationError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGitHubErrorInspector_IsRateLimitError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "typed rate limit", err: &gh.RateLimitError{Response: newResponse(403), Message: "API rate limit exceeded"}, want: true},
		{name: "typed abuse limit", err: &gh.AbuseRateLimitError{Response: newResponse(403), Message: "secondary rate limit"}, want: true},
		{name: "429 error response", err: responseErr(http.StatusTooManyRequests, "Too Many Requests"), want: true},
		{name: "message only", err: errors.New("API rate limit exceeded for 1.2.3.4"), want: true},
		{name: "status wins over message", err: responseErr(http.StatusInternalServerError, "GET http://127.0.0.1:54290/search/issues: 500"), want: false},
		{name: "other error", err: errors.New("something went wrong"), want: false},
		{name: "nil error", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsRateLimitError(tt.err); got != tt.want {
				t.Errorf("IsRateLimitError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGitHubErrorInspector_IsNetworkError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "url error", err: &url.Error{Op: "Get", URL: "https://api.github.com", Err: errors.New("dial tcp: connection refused")}, want: true},
		{name: "deadline exceeded", err: fmt.Errorf("search: %w", context.DeadlineExceeded), want: false},
		{name: "canceled", err: fmt.Errorf("search: %w", context.Canceled), want: false},
		{name: "url error wrapping deadline", err: &url.Error{Op: "Get", URL: "https://api.github.com", Err: context.DeadlineExceeded}, want: false},
		{name: "502 error response", err: responseErr(http.StatusBadGateway, "Bad Gateway"), want: true},
		{name: "message only", err: errors.New("no such host"), want: true},
		{name: "404 error response", err: responseErr(http.StatusNotFound, "Not Found"), want: false},
		{name: "500 error response mentioning timeout", err: responseErr(http.StatusInternalServerError, "upstream timeout"), want: false},
		{name: "nil error", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsNetworkError(tt.err); got != tt.want {
				t.Errorf("IsNetworkError() = %v, want %v", got, tt.want)
			}
		})
	}
}
