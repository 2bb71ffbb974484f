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
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"

	"github.com/sirseerhq/hacktoberfest-checker/pkg/version"
)

const externalHTTPTimeout = 30 * time.Second

// CallObserver is notified after every GitHub API response. rateRemaining
// is the X-RateLimit-Remaining header, or -1 when GitHub did not send one.
// Observers only record; they never throttle.
type CallObserver interface {
	ObserveCall(statusCode, rateRemaining int)
}

type observerKey struct{}

// WithCallObserver returns a context whose GitHub calls are also reported
// to obs. Used to attribute calls to a single check.
func WithCallObserver(ctx context.Context, obs CallObserver) context.Context {
	return context.WithValue(ctx, observerKey{}, obs)
}

func observerFromContext(ctx context.Context) CallObserver {
	obs, _ := ctx.Value(observerKey{}).(CallObserver)
	return obs
}

// observingTransport stamps the User-Agent and reports every response to
// the process-wide observer and to the one attached to the request context.
type observingTransport struct {
	base     http.RoundTripper
	observer CallObserver
}

// RoundTrip implements http.RoundTripper.
func (t *observingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", fmt.Sprintf("hacktoberfest-checker/%s", version.Version))

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	remaining := -1
	if v := resp.Header.Get("X-RateLimit-Remaining"); v != "" {
		if n, convErr := strconv.Atoi(v); convErr == nil {
			remaining = n
		}
	}

	if t.observer != nil {
		t.observer.ObserveCall(resp.StatusCode, remaining)
	}
	if obs := observerFromContext(req.Context()); obs != nil {
		obs.ObserveCall(resp.StatusCode, remaining)
	}

	return resp, nil
}

// newHTTPClient builds the HTTP client shared by both backends. An empty
// token yields unauthenticated requests.
func newHTTPClient(token string, observer CallObserver) *http.Client {
	var base http.RoundTripper = &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	if token != "" {
		base = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   base,
		}
	}

	return &http.Client{
		Timeout: externalHTTPTimeout,
		Transport: &observingTransport{
			base:     base,
			observer: observer,
		},
	}
}
