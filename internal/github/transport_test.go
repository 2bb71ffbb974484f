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
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestObservingTransport(t *testing.T) {
	tests := []struct {
		name          string
		header        string
		wantRemaining int
	}{
		{"header present", "42", 42},
		{"header absent", "", -1},
		{"header garbled", "lots", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUA, gotAuth string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUA = r.Header.Get("User-Agent")
				gotAuth = r.Header.Get("Authorization")
				if tt.header != "" {
					w.Header().Set("X-RateLimit-Remaining", tt.header)
				}
				w.WriteHeader(http.StatusTeapot)
			}))
			defer srv.Close()

			observer := &recordingObserver{}
			client := newHTTPClient("secret", observer)

			req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)
			if err != nil {
				t.Fatal(err)
			}
			resp, err := client.Do(req)
			if err != nil {
				t.Fatalf("Do() error = %v", err)
			}
			resp.Body.Close()

			if observer.calls != 1 {
				t.Fatalf("observer saw %d calls, want 1", observer.calls)
			}
			if observer.statuses[0] != http.StatusTeapot {
				t.Errorf("status = %d, want %d", observer.statuses[0], http.StatusTeapot)
			}
			if observer.remaining[0] != tt.wantRemaining {
				t.Errorf("remaining = %d, want %d", observer.remaining[0], tt.wantRemaining)
			}
			if !strings.HasPrefix(gotUA, "hacktoberfest-checker/") {
				t.Errorf("User-Agent = %q", gotUA)
			}
			if gotAuth != "Bearer secret" {
				t.Errorf("Authorization = %q, want Bearer secret", gotAuth)
			}
		})
	}
}

func TestNewHTTPClient_NoToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	resp, err := newHTTPClient("", nil).Get(srv.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	resp.Body.Close()

	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}
